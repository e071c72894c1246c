// Package sanitizer normalizes user-submitted text before validation and
// storage. All functions are idempotent and handle invalid input by
// returning empty values rather than errors.
package sanitizer

import "strings"

// Strategy transforms a string; strategies chain into a Pipeline.
type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeEmail lowercases and trims an address for use as a lookup key.
func NormalizeEmail(email string) string {
	p := Pipeline{trim, lower}
	return p.Apply(email)
}

// NormalizeQuery prepares a free-text search string.
func NormalizeQuery(q string) string {
	p := Pipeline{TrimAndNormalize, lower}
	return p.Apply(q)
}
