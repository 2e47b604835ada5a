package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/utils"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := utils.ParseDayKey(key)
	if err != nil {
		t.Fatalf("bad day key %s: %v", key, err)
	}
	return d
}

func TestMatches_None(t *testing.T) {
	event := models.Event{ID: "a", StartOn: "2026-03-10", Repeat: models.Repeat{Type: models.RepeatNone}}

	if !Matches(event, "2026-03-10") {
		t.Error("Expected a one-off event to match its start day")
	}
	if Matches(event, "2026-03-11") {
		t.Error("Expected a one-off event not to match any other day")
	}
}

func TestMatches_Weekly(t *testing.T) {
	event := models.Event{
		ID:      "a",
		StartOn: "2026-03-01",
		Repeat:  models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{time.Monday, time.Friday}},
	}

	// 2026-03-09 is a Monday, 2026-03-13 a Friday, 2026-03-10 a Tuesday.
	if !Matches(event, "2026-03-09") {
		t.Error("Expected weekly event to match Monday")
	}
	if !Matches(event, "2026-03-13") {
		t.Error("Expected weekly event to match Friday")
	}
	if Matches(event, "2026-03-10") {
		t.Error("Expected weekly event not to match Tuesday")
	}
}

func TestMatches_MonthlySkipsShortMonths(t *testing.T) {
	event := models.Event{
		ID:      "a",
		StartOn: "2026-01-01",
		Repeat:  models.Repeat{Type: models.RepeatMonthly, DayOfMonth: 31},
	}

	if !Matches(event, "2026-01-31") {
		t.Error("Expected monthly event to match January 31st")
	}
	// February 2026 has 28 days: no day of the month matches.
	for d := 1; d <= 28; d++ {
		key := time.Date(2026, 2, d, 0, 0, 0, 0, time.Local).Format("2006-01-02")
		if Matches(event, key) {
			t.Errorf("Expected monthly day-31 event not to match %s", key)
		}
	}
}

func TestMatches_Interval(t *testing.T) {
	event := models.Event{
		ID:      "a",
		StartOn: "2026-03-10",
		Repeat:  models.Repeat{Type: models.RepeatInterval, EveryDays: 3},
	}

	if !Matches(event, "2026-03-10") {
		t.Error("Expected interval event to match its start day")
	}
	if !Matches(event, "2026-03-13") {
		t.Error("Expected interval event to match start+3")
	}
	if Matches(event, "2026-03-12") {
		t.Error("Expected interval event not to match start+2")
	}
}

func TestMatches_Dates(t *testing.T) {
	event := models.Event{
		ID:      "a",
		StartOn: "2026-03-01",
		Repeat:  models.Repeat{Type: models.RepeatDates, DateList: []string{"2026-03-12", "2026-03-20"}},
	}

	if !Matches(event, "2026-03-12") {
		t.Error("Expected dates event to match a listed day")
	}
	if Matches(event, "2026-03-13") {
		t.Error("Expected dates event not to match an unlisted day")
	}
}

func TestMatches_WeekdayFilterOverridesRepeat(t *testing.T) {
	event := models.Event{
		ID:            "a",
		StartOn:       "2026-03-01",
		Repeat:        models.Repeat{Type: models.RepeatDaily},
		WeekdayFilter: []time.Weekday{time.Saturday, time.Sunday},
	}

	// 2026-03-14 is a Saturday, 2026-03-10 a Tuesday.
	if !Matches(event, "2026-03-14") {
		t.Error("Expected filtered daily event to match Saturday")
	}
	if Matches(event, "2026-03-10") {
		t.Error("Expected weekday filter to suppress a weekday the repeat would match")
	}
}

func TestBuildOccurrences_RespectsStartOnAndRange(t *testing.T) {
	events := []models.Event{
		{ID: "a", Title: "Daily", StartOn: "2026-03-12", RangeOrder: 1, Repeat: models.Repeat{Type: models.RepeatDaily}},
	}

	occurrences := BuildOccurrences(events, day(t, "2026-03-10"), day(t, "2026-03-14"))

	if len(occurrences) != 3 {
		t.Fatalf("Expected 3 occurrences (12th-14th), got %d", len(occurrences))
	}
	for _, occ := range occurrences {
		if occ.DayKey < "2026-03-12" || occ.DayKey > "2026-03-14" {
			t.Errorf("Occurrence %s lies outside startOn/range bounds", occ.DayKey)
		}
	}
}

func TestBuildOccurrences_SkipsArchivedEvents(t *testing.T) {
	events := []models.Event{
		{ID: "a", Title: "Gone", StartOn: "2026-03-01", RangeOrder: 1, Archived: true, Repeat: models.Repeat{Type: models.RepeatDaily}},
	}

	occurrences := BuildOccurrences(events, day(t, "2026-03-10"), day(t, "2026-03-10"))
	if len(occurrences) != 0 {
		t.Errorf("Expected archived events to produce no occurrences, got %d", len(occurrences))
	}
}

func TestBuildOccurrences_Ordering(t *testing.T) {
	events := []models.Event{
		{ID: "b", Title: "Second", StartOn: "2026-03-01", RangeOrder: 2, Repeat: models.Repeat{Type: models.RepeatDaily}},
		{ID: "a", Title: "First", StartOn: "2026-03-01", RangeOrder: 1, Repeat: models.Repeat{Type: models.RepeatDaily}},
		{ID: "c", Title: "Tie", StartOn: "2026-03-01", RangeOrder: 1, Repeat: models.Repeat{Type: models.RepeatDaily}},
	}

	occurrences := BuildOccurrences(events, day(t, "2026-03-10"), day(t, "2026-03-11"))

	var got []string
	for _, occ := range occurrences {
		got = append(got, occ.DayKey+"/"+occ.EventID)
	}
	want := []string{
		"2026-03-10/a", "2026-03-10/c", "2026-03-10/b",
		"2026-03-11/a", "2026-03-11/c", "2026-03-11/b",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}
}

func TestBuildOccurrences_Deterministic(t *testing.T) {
	events := []models.Event{
		{ID: "a", Title: "A", StartOn: "2026-03-01", RangeOrder: 1, Repeat: models.Repeat{Type: models.RepeatDaily}},
		{ID: "b", Title: "B", StartOn: "2026-03-01", RangeOrder: 2, Repeat: models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{time.Tuesday}}},
	}

	first := BuildOccurrences(events, day(t, "2026-03-09"), day(t, "2026-03-15"))
	second := BuildOccurrences(events, day(t, "2026-03-09"), day(t, "2026-03-15"))

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical inputs to produce identical occurrence lists")
	}
}

func TestBuildOccurrences_StableIdentity(t *testing.T) {
	event := models.Event{ID: "a", Title: "A", StartOn: "2026-03-01", RangeOrder: 1, Repeat: models.Repeat{Type: models.RepeatDaily}}

	before := BuildOccurrences([]models.Event{event}, day(t, "2026-03-10"), day(t, "2026-03-10"))
	event.RangeOrder = 5
	after := BuildOccurrences([]models.Event{event}, day(t, "2026-03-10"), day(t, "2026-03-10"))

	if before[0].ID != after[0].ID {
		t.Errorf("Expected occurrence id to survive a rangeOrder edit, got %s then %s", before[0].ID, after[0].ID)
	}
}
