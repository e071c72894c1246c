package model

import "time"

// SlotLock is an advisory lock keyed by a (venue, date, slot) triple. It
// serializes writers touching the same slot while they check and flip
// booking state, and auto-expires so a crashed holder cannot wedge the slot.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
