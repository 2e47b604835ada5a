package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

func TestRepeatFromRRule(t *testing.T) {
	cases := []struct {
		rule string
		want models.Repeat
	}{
		{"FREQ=DAILY", models.Repeat{Type: models.RepeatDaily}},
		{"RRULE:FREQ=DAILY", models.Repeat{Type: models.RepeatDaily}},
		{"FREQ=DAILY;INTERVAL=3", models.Repeat{Type: models.RepeatInterval, EveryDays: 3}},
		{"FREQ=WEEKLY;BYDAY=MO,FR", models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{time.Monday, time.Friday}}},
		{"FREQ=WEEKLY;BYDAY=SU", models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: []time.Weekday{time.Sunday}}},
		{"FREQ=MONTHLY;BYMONTHDAY=15", models.Repeat{Type: models.RepeatMonthly, DayOfMonth: 15}},
	}
	for _, tc := range cases {
		got, err := RepeatFromRRule(tc.rule)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.rule, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: expected %+v, got %+v", tc.rule, tc.want, got)
		}
	}
}

func TestRepeatFromRRule_Rejections(t *testing.T) {
	cases := []string{
		"",
		"FREQ=WEEKLY",
		"FREQ=WEEKLY;INTERVAL=2;BYDAY=MO",
		"FREQ=MONTHLY",
		"FREQ=MONTHLY;INTERVAL=2;BYMONTHDAY=1",
		"FREQ=YEARLY",
	}
	for _, rule := range cases {
		if _, err := RepeatFromRRule(rule); err == nil {
			t.Errorf("%s: expected an error", rule)
		}
	}
}
