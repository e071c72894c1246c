package events

import (
	"context"
	"time"

	"venuebook/pkg/model"
)

// Event types emitted on the booking events topic.
const (
	TypeBookingSubmitted = "booking.submitted"
	TypeBookingApproved  = "booking.approved"
	TypeBookingRejected  = "booking.rejected"
)

// BookingEvent is the payload published on every booking lifecycle change.
// Keyed by venue_id so events for one venue stay ordered.
type BookingEvent struct {
	BookingID  string              `json:"booking_id"`
	VenueID    string              `json:"venue_id"`
	VenueName  string              `json:"venue_name"`
	Date       string              `json:"date"`
	Slot       model.TimeSlot      `json:"time_slot"`
	ActorID    string              `json:"actor_id"`
	Status     model.BookingStatus `json:"status"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publishing is best effort from
// the caller's point of view; the booking write has already committed.
type Publisher interface {
	Publish(ctx context.Context, eventType string, event BookingEvent) error
	Close() error
}

// NopPublisher drops every event. Used by the seeder and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType string, event BookingEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
