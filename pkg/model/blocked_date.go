package model

import "time"

// BlockedDate is a calendar date excluded from booking regardless of weekday
// rules. An empty VenueID blocks the date for every venue.
type BlockedDate struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID   string    `json:"venue_id,omitempty" bson:"venue_id,omitempty" validate:"omitempty,mongodb"`
	Date      time.Time `json:"date" bson:"date" validate:"required"`
	Reason    string    `json:"reason,omitempty" bson:"reason" validate:"omitempty,max=200"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
