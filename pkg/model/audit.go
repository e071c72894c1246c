package model

import "time"

// AuditEntry is one recorded booking lifecycle event, written by the audit
// consumer from the booking events topic.
type AuditEntry struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	EventID    string    `json:"event_id" bson:"event_id"`
	EventType  string    `json:"event_type" bson:"event_type"`
	BookingID  string    `json:"booking_id" bson:"booking_id"`
	VenueID    string    `json:"venue_id" bson:"venue_id"`
	ActorID    string    `json:"actor_id" bson:"actor_id"`
	Status     string    `json:"status" bson:"status"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}
