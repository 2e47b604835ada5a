// Package recurrence turns durable event definitions into concrete per-day
// occurrences and applies the rest-override rule for a single day's plan.
package recurrence

import (
	"sort"
	"time"

	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/utils"
)

// BuildOccurrences enumerates every local calendar day in the inclusive
// range and emits one occurrence per event that matches the day. The result
// is sorted by day key, then rangeOrder, then event id. The function is pure:
// identical inputs always produce identical output.
func BuildOccurrences(events []models.Event, rangeStart, rangeEnd time.Time) []models.Occurrence {
	var days []string
	for d := midnight(rangeStart); !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, utils.DayKey(d))
	}

	var occurrences []models.Occurrence
	for _, event := range events {
		if event.ID == "" || event.Archived {
			continue
		}
		for _, dayKey := range days {
			if event.StartOn != "" && dayKey < event.StartOn {
				continue
			}
			if !Matches(event, dayKey) {
				continue
			}
			occurrences = append(occurrences, snapshot(event, dayKey))
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if a.DayKey != b.DayKey {
			return a.DayKey < b.DayKey
		}
		if a.RangeOrder != b.RangeOrder {
			return a.RangeOrder < b.RangeOrder
		}
		return a.EventID < b.EventID
	})

	return occurrences
}

// Matches evaluates whether an event recurs on the given day. The weekday
// filter applies before any repeat rule; the startOn lower bound is checked
// by the caller.
func Matches(event models.Event, dayKey string) bool {
	day, err := utils.ParseDayKey(dayKey)
	if err != nil {
		return false
	}

	if len(event.WeekdayFilter) > 0 && !containsWeekday(event.WeekdayFilter, day.Weekday()) {
		return false
	}

	switch event.Repeat.Type {
	case models.RepeatNone:
		return event.StartOn == dayKey
	case models.RepeatDaily:
		return true
	case models.RepeatWeekly:
		return containsWeekday(event.Repeat.DaysOfWeek, day.Weekday())
	case models.RepeatMonthly:
		// Strict equality: months without the configured day are skipped.
		return day.Day() == event.Repeat.DayOfMonth
	case models.RepeatInterval:
		start, err := utils.ParseDayKey(event.StartOn)
		if err != nil {
			return false
		}
		every := event.Repeat.EveryDays
		if every < 1 {
			every = 1
		}
		diff := utils.DaysBetween(start, day)
		return diff >= 0 && diff%every == 0
	case models.RepeatDates:
		for _, d := range event.Repeat.DateList {
			if d == dayKey {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func snapshot(event models.Event, dayKey string) models.Occurrence {
	order := event.RangeOrder
	if order <= 0 {
		order = constants.DefaultRangeOrder
	}
	return models.Occurrence{
		ID:          models.NewOccurrenceID(event.ID, dayKey),
		EventID:     event.ID,
		DayKey:      dayKey,
		Kind:        event.Kind,
		Title:       event.Title,
		Notes:       event.Notes,
		RangeOrder:  order,
		DurationMin: event.DurationMin,
		Repeat:      event.Repeat,
	}
}

func containsWeekday(set []time.Weekday, wd time.Weekday) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
