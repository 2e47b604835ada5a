package models

import "time"

type EventKind string

const (
	// EventKindNormal is a regular scheduled range.
	EventKindNormal EventKind = "normal"
	// EventKindRest marks a filler range that keeps its slot free. Rest
	// occurrences are suppressed when a non-daily event claims the slot.
	EventKindRest EventKind = "rest"
)

type RepeatType string

const (
	RepeatNone     RepeatType = "none"
	RepeatDaily    RepeatType = "daily"
	RepeatWeekly   RepeatType = "weekly"
	RepeatMonthly  RepeatType = "monthly"
	RepeatInterval RepeatType = "interval"
	RepeatDates    RepeatType = "dates"
)

// Repeat is the tagged recurrence rule of an event. Only the fields relevant
// to Type are meaningful.
type Repeat struct {
	Type       RepeatType     `json:"type"`
	DaysOfWeek []time.Weekday `json:"days_of_week,omitempty"` // weekly
	DayOfMonth int            `json:"day_of_month,omitempty"` // monthly
	EveryDays  int            `json:"every_days,omitempty"`   // interval
	DateList   []string       `json:"date_list,omitempty"`    // dates, day keys
}

// Event is the durable definition of a range. Occurrences are derived from
// it per calendar day and never persisted on their own.
type Event struct {
	ID          string         `json:"id"`
	Kind        EventKind      `json:"kind"`
	Title       string         `json:"title"`
	Notes       string         `json:"notes,omitempty"`
	RangeOrder  int            `json:"range_order"`
	DurationMin int            `json:"duration_min,omitempty"` // 0 = untimed
	StartOn     string         `json:"start_on"`               // earliest eligible day key
	Repeat      Repeat         `json:"repeat"`
	// WeekdayFilter further restricts eligibility regardless of repeat type.
	WeekdayFilter []time.Weekday `json:"weekday_filter,omitempty"`
	Archived      bool           `json:"archived,omitempty"`
	CreatedAt     time.Time      `json:"created_at,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at,omitempty"`
}

// IsRest reports whether the event is the rest sentinel.
func (e Event) IsRest() bool {
	return e.Kind == EventKindRest
}
