package availability

import (
	"testing"
	"time"

	"venuebook/pkg/model"
)

// Wednesday.
var today = time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluate_PastDatesUnselectable(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{"yesterday", day(2025, 4, 15)},
		{"last month", day(2025, 3, 16)},
		{"last year", day(2024, 4, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.date, today, nil); got != PastDate {
				t.Errorf("Evaluate(%v) = %v, want PastDate", tt.date, got)
			}
		})
	}
}

func TestEvaluate_TodayIsSelectable(t *testing.T) {
	if got := Evaluate(today, today, nil); got != Selectable {
		t.Errorf("Evaluate(today) = %v, want Selectable", got)
	}
}

func TestEvaluate_TimeComponentIgnored(t *testing.T) {
	lateToday := time.Date(2025, 4, 16, 23, 59, 0, 0, time.UTC)
	if got := Evaluate(lateToday, today, nil); got != Selectable {
		t.Errorf("same calendar day should be selectable, got %v", got)
	}
}

func TestEvaluate_LocalMidnightDoesNotShiftDay(t *testing.T) {
	// Shortly after local midnight east of UTC it is still the previous
	// day in UTC; a candidate for that UTC day must not read as past.
	eastOfUTC := time.FixedZone("UTC+3", 3*60*60)
	localToday := time.Date(2025, 4, 17, 1, 0, 0, 0, eastOfUTC) // 2025-04-16 22:00 UTC

	if got := Evaluate(day(2025, 4, 16), localToday, nil); got != Selectable {
		t.Errorf("got %v, want Selectable for the current UTC day", got)
	}
}

func TestEvaluate_WeekendsUnselectable(t *testing.T) {
	saturday := day(2025, 4, 19)
	sunday := day(2025, 4, 20)

	if got := Evaluate(saturday, today, nil); got != Weekend {
		t.Errorf("saturday: got %v, want Weekend", got)
	}
	if got := Evaluate(sunday, today, nil); got != Weekend {
		t.Errorf("sunday: got %v, want Weekend", got)
	}
}

func TestEvaluate_WeekendBeatsBlockedSet(t *testing.T) {
	saturday := day(2025, 4, 19)
	blocked := NewBlockedSet([]time.Time{saturday})

	if got := Evaluate(saturday, today, blocked); got != Weekend {
		t.Errorf("got %v, want Weekend regardless of blocked set", got)
	}
}

func TestEvaluate_BlockedWeekdayUnselectable(t *testing.T) {
	friday := day(2025, 4, 18)
	blocked := NewBlockedSet([]time.Time{friday})

	if got := Evaluate(friday, today, blocked); got != BlockedDate {
		t.Errorf("got %v, want BlockedDate", got)
	}
}

func TestEvaluate_BlockedMatchIgnoresStoredTime(t *testing.T) {
	blocked := NewBlockedSet([]time.Time{
		time.Date(2025, 4, 18, 14, 30, 0, 0, time.UTC),
	})

	if got := Evaluate(day(2025, 4, 18), today, blocked); got != BlockedDate {
		t.Errorf("blocked match must compare by calendar day, got %v", got)
	}
}

func TestEvaluate_PlainWeekdaySelectable(t *testing.T) {
	thursday := day(2025, 4, 17)
	blocked := NewBlockedSet([]time.Time{day(2025, 4, 25)})

	if got := Evaluate(thursday, today, blocked); got != Selectable {
		t.Errorf("got %v, want Selectable", got)
	}
}

func TestSlotsFor(t *testing.T) {
	venue := &model.Venue{
		Name:  "Conference Room A",
		Slots: []model.TimeSlot{model.SlotMorning, model.SlotAfternoon},
	}

	slots := SlotsFor(venue, day(2025, 4, 17), today, nil)
	if len(slots) != 2 || slots[0] != model.SlotMorning || slots[1] != model.SlotAfternoon {
		t.Errorf("selectable date must offer exactly the venue slots, got %v", slots)
	}

	if slots := SlotsFor(venue, day(2025, 4, 19), today, nil); slots != nil {
		t.Errorf("weekend must offer no slots, got %v", slots)
	}
}
