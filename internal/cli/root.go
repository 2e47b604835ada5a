package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/session"
	"github.com/mfigueroa/agendx/internal/storage"
)

// Context is handed to every command by kong.
type Context struct {
	Store   storage.Gateway
	Manager *session.Manager
}

// RecalcIfActive recomputes the active plan after an event mutation, the
// caller obligation every CRUD command honors. Prints a notice when the
// recalculation empties the plan and closes the session.
func (c *Context) RecalcIfActive() error {
	closed, err := c.Manager.Recalc()
	if err != nil {
		return err
	}
	if closed {
		fmt.Println("Active plan became empty; day session closed.")
	}
	return nil
}

// SuggestedRangeOrder returns one slot past the highest rangeOrder in use.
func SuggestedRangeOrder(events []models.Event) int {
	max := 0
	for _, e := range events {
		if e.RangeOrder > max {
			max = e.RangeOrder
		}
	}
	if max < 1 {
		return 1
	}
	return max + 1
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday, 6=Saturday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })
	return weekdays, nil
}

// ParseDuration parses a range duration given as minutes ("45", "45m") or
// hours ("2h").
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}
	switch {
	case strings.HasSuffix(s, "h"):
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return hours * 60, nil
	case strings.HasSuffix(s, "m"):
		s = strings.TrimSuffix(s, "m")
		fallthrough
	default:
		min, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return min, nil
	}
}

// FormatRepeat renders a repeat rule as a short human-readable string.
func FormatRepeat(repeat models.Repeat) string {
	switch repeat.Type {
	case models.RepeatNone:
		return "once"
	case models.RepeatDaily:
		return "daily"
	case models.RepeatWeekly:
		var days []string
		for _, wd := range repeat.DaysOfWeek {
			days = append(days, wd.String()[:3])
		}
		return "weekly on " + strings.Join(days, ",")
	case models.RepeatMonthly:
		return fmt.Sprintf("monthly on day %d", repeat.DayOfMonth)
	case models.RepeatInterval:
		return fmt.Sprintf("every %d days", repeat.EveryDays)
	case models.RepeatDates:
		return "on " + strings.Join(repeat.DateList, ",")
	default:
		return "unknown"
	}
}
