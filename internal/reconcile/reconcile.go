// Package reconcile restores a consistent view of day-session records at
// boot: expired records are deleted, duplicate actives collapse to the most
// recently started one, and the surviving record's identities are
// recomputed rather than trusted.
package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/logger"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/recurrence"
	"github.com/mfigueroa/agendx/internal/storage"
	"github.com/mfigueroa/agendx/internal/utils"
)

type Service struct {
	gateway storage.Gateway
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the service's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(gateway storage.Gateway, opts ...Option) *Service {
	s := &Service{gateway: gateway, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resume fetches all day-session records, prunes what the retention window
// no longer covers, enforces the at-most-one-active invariant
// (last-started-wins), and adopts the survivor. Returns nil when no active
// session remains.
func (s *Service) Resume() (*models.DaySession, error) {
	records, err := s.gateway.GetSessions()
	if err != nil {
		return nil, err
	}

	now := s.now()
	yesterday := utils.DayKey(now.AddDate(0, 0, -constants.RetentionDays))

	var kept []models.SessionRecord
	for _, rec := range records {
		expired := !rec.KeepUntil.IsZero() && now.After(rec.KeepUntil)
		tooOld := rec.DayKey != "" && rec.DayKey < yesterday
		if expired || tooOld {
			s.safeDelete(rec.ID)
			continue
		}
		kept = append(kept, rec)
	}

	var actives []models.SessionRecord
	for _, rec := range kept {
		if rec.Status == models.SessionActive && rec.DayKey >= yesterday {
			actives = append(actives, rec)
		}
	}
	if len(actives) == 0 {
		return nil, nil
	}

	// Last started wins, not last updated.
	sort.Slice(actives, func(i, j int) bool {
		return actives[i].StartedAt.After(actives[j].StartedAt)
	})
	for _, extra := range actives[1:] {
		logger.Warn("collapsing duplicate active session", "id", extra.ID, "day", extra.DayKey)
		s.safeDelete(extra.ID)
	}

	return Adopt(actives[0]), nil
}

func (s *Service) safeDelete(id string) {
	if err := s.gateway.DeleteSession(id); err != nil {
		logger.Warn("failed to delete stale session record", "id", id, "error", err)
	}
}

// Adopt normalizes a durable record into an in-memory session. Every
// occurrence id is recomputed from (eventId, dayKey) instead of trusting
// the stored id, and progress stored under the legacy
// "<event>__<day>__R<order>" key form is migrated to the stable identity.
func Adopt(rec models.SessionRecord) *models.DaySession {
	plan := make([]models.Occurrence, 0, len(rec.Plan))
	for _, occ := range rec.Plan {
		if occ.EventID == "" {
			occ.EventID = occ.ID.EventID
		}
		if occ.DayKey == "" {
			occ.DayKey = rec.DayKey
		}
		if occ.RangeOrder <= 0 {
			occ.RangeOrder = constants.DefaultRangeOrder
		}
		occ.ID = models.NewOccurrenceID(occ.EventID, occ.DayKey)
		plan = append(plan, occ)
	}
	recurrence.SortPlan(plan)

	done := make(map[models.OccurrenceID]bool, len(plan))
	for _, occ := range plan {
		legacy := legacyProgressKey(occ)
		done[occ.ID] = rec.Progress[occ.ID.String()] || rec.Progress[legacy]
	}

	keepUntil := rec.KeepUntil
	if keepUntil.IsZero() {
		if ku, err := utils.KeepUntil(rec.DayKey); err == nil {
			keepUntil = ku
		}
	}

	index := rec.CurrentIndex
	if index < 0 || index >= len(plan) {
		index = 0
	}

	return &models.DaySession{
		RemoteID:     rec.ID,
		DayKey:       rec.DayKey,
		StartedAt:    rec.StartedAt,
		KeepUntil:    keepUntil,
		Plan:         plan,
		Done:         done,
		CurrentIndex: index,
	}
}

func legacyProgressKey(occ models.Occurrence) string {
	return fmt.Sprintf("%s__R%d", occ.ID, occ.RangeOrder)
}
