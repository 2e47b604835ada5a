package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mfigueroa/agendx/internal/models"
)

// RepeatFromRRule translates an RFC 5545 RRULE string into the native
// repeat variant. Only the shapes the engine can represent are accepted:
// FREQ=DAILY (interval 1 or n), FREQ=WEEKLY with BYDAY, and FREQ=MONTHLY
// with BYMONTHDAY.
func RepeatFromRRule(ruleStr string) (models.Repeat, error) {
	ruleStr = strings.TrimPrefix(strings.TrimSpace(ruleStr), "RRULE:")

	opt, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return models.Repeat{}, fmt.Errorf("failed to parse RRULE: %w", err)
	}

	interval := opt.Interval
	if interval < 1 {
		interval = 1
	}

	switch opt.Freq {
	case rrule.DAILY:
		if interval == 1 {
			return models.Repeat{Type: models.RepeatDaily}, nil
		}
		return models.Repeat{Type: models.RepeatInterval, EveryDays: interval}, nil
	case rrule.WEEKLY:
		if len(opt.Byweekday) == 0 {
			return models.Repeat{}, fmt.Errorf("weekly RRULE requires BYDAY")
		}
		if interval != 1 {
			return models.Repeat{}, fmt.Errorf("weekly RRULE with INTERVAL>1 is not supported")
		}
		days := make([]time.Weekday, 0, len(opt.Byweekday))
		for _, wd := range opt.Byweekday {
			// rrule weekdays are Monday-based; time.Weekday is Sunday-based.
			days = append(days, time.Weekday((wd.Day()+1)%7))
		}
		return models.Repeat{Type: models.RepeatWeekly, DaysOfWeek: days}, nil
	case rrule.MONTHLY:
		if len(opt.Bymonthday) != 1 {
			return models.Repeat{}, fmt.Errorf("monthly RRULE requires exactly one BYMONTHDAY")
		}
		if interval != 1 {
			return models.Repeat{}, fmt.Errorf("monthly RRULE with INTERVAL>1 is not supported")
		}
		return models.Repeat{Type: models.RepeatMonthly, DayOfMonth: opt.Bymonthday[0]}, nil
	default:
		return models.Repeat{}, fmt.Errorf("unsupported RRULE frequency %v", opt.Freq)
	}
}
