// Package filter composes predicates over in-memory collections. Filtering
// is stable: matching items keep their original relative order, nothing is
// sorted. Predicates combine with logical AND.
package filter

import (
	"strconv"
	"strings"
)

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// And combines predicates; every predicate must pass. With no predicates
// everything passes.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Apply returns the items matching p, preserving input order. An empty or
// nil input yields an empty slice.
func Apply[T any](items []T, p Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p(item) {
			out = append(out, item)
		}
	}
	return out
}

// Text matches when the query is a case-insensitive substring of any of the
// extracted fields. An empty or blank query matches everything.
func Text[T any](query string, fields ...func(T) string) Predicate[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(item T) bool {
		if query == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), query) {
				return true
			}
		}
		return false
	}
}

// Enum matches the extracted field exactly (case-insensitive). The sentinel
// value, or an empty filter value, matches everything.
func Enum[T any](value, sentinel string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		if value == "" || strings.EqualFold(value, sentinel) {
			return true
		}
		return strings.EqualFold(field(item), value)
	}
}

// MinThreshold passes items whose numeric field is at least the minimum
// parsed from raw. An empty or unparsable raw value, or one that is not
// positive, imposes no constraint.
func MinThreshold[T any](raw string, field func(T) int) Predicate[T] {
	minValue, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minValue <= 0 {
		return func(T) bool { return true }
	}
	return func(item T) bool {
		return field(item) >= minValue
	}
}
