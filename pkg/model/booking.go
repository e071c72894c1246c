package model

import "time"

// BookingStatus is the lifecycle state of a booking request. Pending is the
// only initial state; Approved and Rejected are terminal.
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// StatusAll is the sentinel filter value that matches every status.
const StatusAll = "all"

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// DateLayout is the wire format for booking dates. Requests are slot-grained,
// so no time-of-day component is carried.
const DateLayout = "2006-01-02"

type BookingRequest struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RequesterID   string        `json:"requester_id" bson:"requester_id" validate:"required,mongodb"`
	RequesterName string        `json:"requester_name" bson:"requester_name" validate:"required,min=2,max=100"`
	VenueID       string        `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	VenueName     string        `json:"venue_name" bson:"venue_name" validate:"required,min=2,max=100"`
	Date          time.Time     `json:"date" bson:"date" validate:"required"`
	Slot          TimeSlot      `json:"time_slot" bson:"time_slot" validate:"required,oneof=Morning Afternoon Evening"`
	Title         string        `json:"title" bson:"title" validate:"required,min=3,max=100"`
	Description   string        `json:"description" bson:"description" validate:"required,min=10,max=2000"`
	Attendees     int           `json:"attendees" bson:"attendees" validate:"required,min=1"`
	Status        BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending approved rejected"`
	DecidedBy     string        `json:"decided_by,omitempty" bson:"decided_by,omitempty" validate:"omitempty,mongodb"`
	DecidedAt     *time.Time    `json:"decided_at,omitempty" bson:"decided_at,omitempty" validate:"omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// SlotKey identifies the (venue, date, slot) triple the double-booking
// invariant is enforced over.
func (b *BookingRequest) SlotKey() string {
	return b.VenueID + ":" + b.Date.Format(DateLayout) + ":" + string(b.Slot)
}
