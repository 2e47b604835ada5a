package server

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/logger"
	"github.com/mfigueroa/agendx/internal/storage"
	"github.com/mfigueroa/agendx/internal/utils"
)

// StartPurge schedules a periodic sweep of session records past their
// retention window. Returns the started cron so the caller can stop it on
// shutdown.
func StartPurge(gateway storage.Gateway, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		PurgeExpired(gateway, time.Now())
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// PurgeExpired deletes session records whose keepUntil has passed or whose
// day key is older than yesterday.
func PurgeExpired(gateway storage.Gateway, now time.Time) {
	records, err := gateway.GetSessions()
	if err != nil {
		logger.Warn("purge: failed to list sessions", "error", err)
		return
	}

	yesterday := utils.DayKey(now.AddDate(0, 0, -constants.RetentionDays))
	purged := 0
	for _, rec := range records {
		expired := !rec.KeepUntil.IsZero() && now.After(rec.KeepUntil)
		tooOld := rec.DayKey != "" && rec.DayKey < yesterday
		if !expired && !tooOld {
			continue
		}
		if err := gateway.DeleteSession(rec.ID); err != nil {
			logger.Warn("purge: failed to delete session", "id", rec.ID, "error", err)
			continue
		}
		purged++
	}
	if purged > 0 {
		logger.Info("purged expired day sessions", "count", purged)
	}
}
