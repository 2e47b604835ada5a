package cli

import (
	"reflect"
	"testing"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("fri,Mon, 0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []time.Weekday{time.Sunday, time.Monday, time.Friday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseWeekdays_Invalid(t *testing.T) {
	for _, s := range []string{"funday", "7", "-1"} {
		if _, err := ParseWeekdays(s); err == nil {
			t.Errorf("Expected an error for %q", s)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"45", 45},
		{"45m", 45},
		{"2h", 120},
		{" 90M ", 90},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}

	if _, err := ParseDuration("soon"); err == nil {
		t.Error("Expected an error for a non-numeric duration")
	}
}

func TestSuggestedRangeOrder(t *testing.T) {
	if got := SuggestedRangeOrder(nil); got != 1 {
		t.Errorf("Expected 1 with no events, got %d", got)
	}
	events := []models.Event{{RangeOrder: 2}, {RangeOrder: 5}, {RangeOrder: 1}}
	if got := SuggestedRangeOrder(events); got != 6 {
		t.Errorf("Expected 6, got %d", got)
	}
}

func TestFormatRepeat(t *testing.T) {
	cases := []struct {
		repeat models.Repeat
		want   string
	}{
		{models.Repeat{Type: models.RepeatNone}, "once"},
		{models.Repeat{Type: models.RepeatDaily}, "daily"},
		{models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{time.Monday, time.Friday}}, "weekly on Mon,Fri"},
		{models.Repeat{Type: models.RepeatMonthly, DayOfMonth: 15}, "monthly on day 15"},
		{models.Repeat{Type: models.RepeatInterval, EveryDays: 3}, "every 3 days"},
		{models.Repeat{Type: models.RepeatDates, DateList: []string{"2026-03-12"}}, "on 2026-03-12"},
	}
	for _, tc := range cases {
		if got := FormatRepeat(tc.repeat); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}
