package recurrence

import (
	"sort"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/utils"
)

// ApplyRestOverride narrows occurrences to the given day and drops rest
// occurrences whose rangeOrder is claimed by a non-daily occurrence that day.
// Rest is a filler for otherwise-empty slots, not a competing appointment;
// daily events coexist with rest and never suppress it.
func ApplyRestOverride(occurrences []models.Occurrence, dayKey string) []models.Occurrence {
	var dayList []models.Occurrence
	for _, occ := range occurrences {
		if occ.DayKey == dayKey {
			dayList = append(dayList, occ)
		}
	}

	claimed := make(map[int]bool)
	for _, occ := range dayList {
		if occ.Repeat.Type != models.RepeatDaily {
			claimed[occ.RangeOrder] = true
		}
	}

	filtered := dayList[:0]
	for _, occ := range dayList {
		if occ.IsRest() && claimed[occ.RangeOrder] {
			continue
		}
		filtered = append(filtered, occ)
	}

	SortPlan(filtered)
	return filtered
}

// BuildDayPlan computes the filtered, ordered plan for a single day.
func BuildDayPlan(events []models.Event, dayKey string) ([]models.Occurrence, error) {
	dayStart, err := utils.ParseDayKey(dayKey)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	occurrences := BuildOccurrences(events, dayStart, dayEnd)
	return ApplyRestOverride(occurrences, dayKey), nil
}

// SortPlan orders a single day's occurrences by rangeOrder, ties broken by
// event id. Also used when adopting persisted plans.
func SortPlan(plan []models.Occurrence) {
	sort.Slice(plan, func(i, j int) bool {
		if plan[i].RangeOrder != plan[j].RangeOrder {
			return plan[i].RangeOrder < plan[j].RangeOrder
		}
		return plan[i].EventID < plan[j].EventID
	})
}
