package models

import (
	"fmt"
	"strings"
)

// occurrenceIDSep joins the event id and day key in the wire form of an
// OccurrenceID. Event ids must not contain it.
const occurrenceIDSep = "__"

// OccurrenceID is the stable composite identity of an occurrence:
// (event id, day key). It survives rangeOrder edits; editing startOn or
// deleting the event drops the occurrence instead of renaming it.
type OccurrenceID struct {
	EventID string
	DayKey  string
}

func NewOccurrenceID(eventID, dayKey string) OccurrenceID {
	return OccurrenceID{EventID: eventID, DayKey: dayKey}
}

func (id OccurrenceID) String() string {
	return id.EventID + occurrenceIDSep + id.DayKey
}

func (id OccurrenceID) IsZero() bool {
	return id.EventID == "" && id.DayKey == ""
}

// MarshalText lets OccurrenceID serve directly as a JSON map key.
func (id OccurrenceID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *OccurrenceID) UnmarshalText(text []byte) error {
	parsed, err := ParseOccurrenceID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseOccurrenceID parses the wire form "<eventID>__<dayKey>". Legacy
// records append a rangeOrder segment ("__R<n>"), which is dropped.
func ParseOccurrenceID(s string) (OccurrenceID, error) {
	parts := strings.Split(s, occurrenceIDSep)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return OccurrenceID{}, fmt.Errorf("malformed occurrence id %q", s)
	}
	return OccurrenceID{EventID: parts[0], DayKey: parts[1]}, nil
}

// Occurrence is a concrete calendar-day instantiation of an event. It is a
// snapshot: later edits to the event do not reach into an existing plan
// until a recalculation rebuilds it.
type Occurrence struct {
	ID          OccurrenceID `json:"occurrence_id"`
	EventID     string       `json:"event_id"`
	DayKey      string       `json:"day_key"`
	Kind        EventKind    `json:"kind"`
	Title       string       `json:"title"`
	Notes       string       `json:"notes,omitempty"`
	RangeOrder  int          `json:"range_order"`
	DurationMin int          `json:"duration_min,omitempty"`
	Repeat      Repeat       `json:"repeat"`
}

// IsRest reports whether the occurrence came from the rest sentinel.
func (o Occurrence) IsRest() bool {
	return o.Kind == EventKindRest
}
