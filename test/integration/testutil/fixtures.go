package testutil

import (
	"time"
)

// BookingBuilder assembles submit-booking payloads for API tests.
type BookingBuilder struct {
	payload map[string]any
}

func NewBookingBuilder(venueID string) *BookingBuilder {
	return &BookingBuilder{
		payload: map[string]any{
			"venue_id":    venueID,
			"date":        NextBookableDate().Format("2006-01-02"),
			"time_slot":   "Morning",
			"title":       "Team Planning Session",
			"description": "Quarterly planning session for the robotics club.",
			"attendees":   10,
		},
	}
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.payload["date"] = date
	return b
}

func (b *BookingBuilder) WithSlot(slot string) *BookingBuilder {
	b.payload["time_slot"] = slot
	return b
}

func (b *BookingBuilder) WithTitle(title string) *BookingBuilder {
	b.payload["title"] = title
	return b
}

func (b *BookingBuilder) WithDescription(description string) *BookingBuilder {
	b.payload["description"] = description
	return b
}

func (b *BookingBuilder) WithAttendees(attendees int) *BookingBuilder {
	b.payload["attendees"] = attendees
	return b
}

func (b *BookingBuilder) Build() map[string]any {
	return b.payload
}

// NextBookableDate returns the nearest future weekday, skipping today.
func NextBookableDate() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func RegisterPayload(name, email, password string) map[string]any {
	return map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}
}

func LoginPayload(email, password string) map[string]any {
	return map[string]any{
		"email":    email,
		"password": password,
	}
}
