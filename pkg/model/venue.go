package model

import "time"

// TimeSlot is one of the fixed day partitions a venue can be booked in.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "Morning"
	SlotAfternoon TimeSlot = "Afternoon"
	SlotEvening   TimeSlot = "Evening"
)

// AllTimeSlots lists every slot in display order.
var AllTimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// CategoryAll is the sentinel category value that matches every venue.
const CategoryAll = "All"

type Venue struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location    string     `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Capacity    int        `json:"capacity" bson:"capacity" validate:"required,min=1,max=10000"`
	Category    string     `json:"category" bson:"category" validate:"required,min=2,max=50"`
	Features    []string   `json:"features" bson:"features" validate:"omitempty,dive,required"`
	Description string     `json:"description,omitempty" bson:"description" validate:"omitempty,max=2000"`
	ImageURLs   []string   `json:"image_urls,omitempty" bson:"image_urls" validate:"omitempty,dive,url"`
	Rules       []string   `json:"rules,omitempty" bson:"rules" validate:"omitempty,dive,required"`
	Slots       []TimeSlot `json:"available_time_slots" bson:"available_time_slots" validate:"required,min=1,max=3,dive,oneof=Morning Afternoon Evening"`
	Active      bool       `json:"active" bson:"active"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// OffersSlot reports whether the venue is configured to be booked in the
// given slot.
func (v *Venue) OffersSlot(slot TimeSlot) bool {
	for _, s := range v.Slots {
		if s == slot {
			return true
		}
	}
	return false
}
