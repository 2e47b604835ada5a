package validation

import (
	"testing"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

func validEvent() models.Event {
	return models.Event{
		ID:          "a",
		Title:       "Deep work",
		RangeOrder:  1,
		DurationMin: 45,
		StartOn:     "2026-03-10",
		Repeat:      models.Repeat{Type: models.RepeatDaily},
	}
}

func TestValidateEvent_Valid(t *testing.T) {
	if err := ValidateEvent(validEvent()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidateEvent_RestNeedsNoTitle(t *testing.T) {
	event := validEvent()
	event.Kind = models.EventKindRest
	event.Title = ""
	if err := ValidateEvent(event); err != nil {
		t.Errorf("Expected a title-less rest event to pass, got %v", err)
	}
}

func TestValidateEvent_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Event)
	}{
		{"empty title", func(e *models.Event) { e.Title = "" }},
		{"zero range order", func(e *models.Event) { e.RangeOrder = 0 }},
		{"negative duration", func(e *models.Event) { e.DurationMin = -1 }},
		{"oversized duration", func(e *models.Event) { e.DurationMin = 1441 }},
		{"missing start date", func(e *models.Event) { e.StartOn = "" }},
		{"malformed start date", func(e *models.Event) { e.StartOn = "10/03/2026" }},
		{"bad weekday filter", func(e *models.Event) { e.WeekdayFilter = []time.Weekday{7} }},
	}
	for _, tc := range cases {
		event := validEvent()
		tc.mutate(&event)
		if err := ValidateEvent(event); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestValidateRepeat(t *testing.T) {
	cases := []struct {
		name    string
		repeat  models.Repeat
		wantErr bool
	}{
		{"none", models.Repeat{Type: models.RepeatNone}, false},
		{"daily", models.Repeat{Type: models.RepeatDaily}, false},
		{"weekly with days", models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{time.Monday}}, false},
		{"weekly empty", models.Repeat{Type: models.RepeatWeekly}, true},
		{"weekly bad weekday", models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{9}}, true},
		{"monthly day 31", models.Repeat{Type: models.RepeatMonthly, DayOfMonth: 31}, false},
		{"monthly day 0", models.Repeat{Type: models.RepeatMonthly}, true},
		{"monthly day 32", models.Repeat{Type: models.RepeatMonthly, DayOfMonth: 32}, true},
		{"interval", models.Repeat{Type: models.RepeatInterval, EveryDays: 3}, false},
		{"interval zero", models.Repeat{Type: models.RepeatInterval}, true},
		{"dates", models.Repeat{Type: models.RepeatDates, DateList: []string{"2026-03-12"}}, false},
		{"dates empty", models.Repeat{Type: models.RepeatDates}, true},
		{"dates malformed", models.Repeat{Type: models.RepeatDates, DateList: []string{"tomorrow"}}, true},
		{"unknown type", models.Repeat{Type: "hourly"}, true},
	}
	for _, tc := range cases {
		err := ValidateRepeat(tc.repeat)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: expected no error, got %v", tc.name, err)
		}
	}
}
