// Package validation checks event definitions before they reach storage.
package validation

import (
	"fmt"
	"time"

	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/utils"
)

// ValidateEvent checks field bounds and the repeat rule's internal
// consistency.
func ValidateEvent(event models.Event) error {
	if event.Title == "" && !event.IsRest() {
		return fmt.Errorf("title must not be empty")
	}
	if event.RangeOrder < 1 {
		return fmt.Errorf("range order must be a positive integer")
	}
	if event.DurationMin < 0 || event.DurationMin > constants.MaxDurationMin {
		return fmt.Errorf("duration must be between %d and %d minutes", constants.MinDurationMin, constants.MaxDurationMin)
	}
	if event.StartOn == "" {
		return fmt.Errorf("start date is required")
	}
	if _, err := utils.ParseDayKey(event.StartOn); err != nil {
		return err
	}
	for _, wd := range event.WeekdayFilter {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday %d in weekday filter", wd)
		}
	}
	return ValidateRepeat(event.Repeat)
}

// ValidateRepeat checks the fields required by the rule's type.
func ValidateRepeat(repeat models.Repeat) error {
	switch repeat.Type {
	case models.RepeatNone, models.RepeatDaily:
		return nil
	case models.RepeatWeekly:
		if len(repeat.DaysOfWeek) == 0 {
			return fmt.Errorf("weekly repeat requires at least one weekday")
		}
		for _, wd := range repeat.DaysOfWeek {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday %d in weekly repeat", wd)
			}
		}
		return nil
	case models.RepeatMonthly:
		if repeat.DayOfMonth < 1 || repeat.DayOfMonth > 31 {
			return fmt.Errorf("monthly repeat requires a day of month between 1 and 31")
		}
		// Day 31 is allowed: months without it are simply skipped.
		return nil
	case models.RepeatInterval:
		if repeat.EveryDays < 1 {
			return fmt.Errorf("interval repeat requires every-days of at least 1")
		}
		return nil
	case models.RepeatDates:
		if len(repeat.DateList) == 0 {
			return fmt.Errorf("dates repeat requires at least one date")
		}
		for _, d := range repeat.DateList {
			if _, err := utils.ParseDayKey(d); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown repeat type %q", repeat.Type)
	}
}
