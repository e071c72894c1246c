// Package availability decides whether a calendar date is bookable for a
// venue. The rule is pure: "today" is an input, never read from a clock, so
// callers and tests control time.
package availability

import (
	"time"

	"venuebook/pkg/model"
)

// Reason explains why a date is or is not selectable.
type Reason int

const (
	Selectable Reason = iota
	PastDate
	Weekend
	BlockedDate
)

func (r Reason) String() string {
	switch r {
	case Selectable:
		return "selectable"
	case PastDate:
		return "past_date"
	case Weekend:
		return "weekend"
	case BlockedDate:
		return "blocked_date"
	}
	return "unknown"
}

// BlockedSet holds blocked calendar days keyed by day/month/year only, so a
// blocked date matches regardless of the time component it was stored with.
type BlockedSet map[string]struct{}

func NewBlockedSet(dates []time.Time) BlockedSet {
	set := make(BlockedSet, len(dates))
	for _, d := range dates {
		set[dayKey(d)] = struct{}{}
	}
	return set
}

func (s BlockedSet) Contains(date time.Time) bool {
	_, ok := s[dayKey(date)]
	return ok
}

// dayKey compares dates by calendar day, normalized to UTC so a local-time
// "today" and a UTC-parsed candidate land on the same day. The ISO layout
// also orders lexicographically, which Evaluate relies on for the past-date
// check.
func dayKey(t time.Time) string {
	return t.In(time.UTC).Format(model.DateLayout)
}

// Evaluate applies the booking-date policy: a date is unselectable when it
// is strictly before today, falls on a Saturday or Sunday, or appears in the
// blocked set. Checks run in that order and the first violation wins.
func Evaluate(date, today time.Time, blocked BlockedSet) Reason {
	if dayKey(date) < dayKey(today) {
		return PastDate
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Weekend
	}
	if blocked.Contains(date) {
		return BlockedDate
	}
	return Selectable
}

// IsSelectable is Evaluate reduced to a yes/no answer.
func IsSelectable(date, today time.Time, blocked BlockedSet) bool {
	return Evaluate(date, today, blocked) == Selectable
}

// SlotsFor returns the slots offerable on a date: exactly the venue's
// configured slots when the date is selectable, nothing otherwise. There is
// no per-date slot variation.
func SlotsFor(venue *model.Venue, date, today time.Time, blocked BlockedSet) []model.TimeSlot {
	if !IsSelectable(date, today, blocked) {
		return nil
	}
	return venue.Slots
}
