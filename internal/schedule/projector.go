// Package schedule derives concrete start/end timestamps and live
// remaining-time figures from an active day session's plan. Projections are
// pure: they never mutate the session and are recomputed on every display
// tick.
package schedule

import (
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

// Item is one plan occurrence with its projected time window. The first
// item starts at the session's startedAt; each subsequent item starts where
// the previous one ends. An untimed occurrence (durationMin 0) has
// Start == End and occupies no time.
type Item struct {
	OccurrenceID models.OccurrenceID
	Start        time.Time
	End          time.Time
}

func (it Item) Duration() time.Duration {
	return it.End.Sub(it.Start)
}

// Project walks the plan in order and accumulates the timeline.
func Project(plan []models.Occurrence, startedAt time.Time) []Item {
	items := make([]Item, 0, len(plan))
	cursor := startedAt
	for _, occ := range plan {
		end := cursor.Add(time.Duration(occ.DurationMin) * time.Minute)
		items = append(items, Item{
			OccurrenceID: occ.ID,
			Start:        cursor,
			End:          end,
		})
		cursor = end
	}
	return items
}

// Find returns the projected item for an occurrence id.
func Find(items []Item, id models.OccurrenceID) (Item, bool) {
	for _, it := range items {
		if it.OccurrenceID == id {
			return it, true
		}
	}
	return Item{}, false
}

// RemainingInItem returns how much of the item's window is still ahead of
// now, clamped at zero once the window has passed.
func RemainingInItem(it Item, now time.Time) time.Duration {
	remaining := it.End.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TotalRemaining sums the remaining time of all not-done items. An item the
// user has skipped past without marking done contributes only the part of
// its window still ahead of now, so elapsed time is never counted twice.
func TotalRemaining(items []Item, done map[models.OccurrenceID]bool, now time.Time) time.Duration {
	var total time.Duration
	for _, it := range items {
		if done[it.OccurrenceID] {
			continue
		}
		from := now
		if it.Start.After(from) {
			from = it.Start
		}
		if rem := it.End.Sub(from); rem > 0 {
			total += rem
		}
	}
	return total
}

// Elapsed returns how long the item has been running at now, never negative.
func Elapsed(it Item, now time.Time) time.Duration {
	elapsed := now.Sub(it.Start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
