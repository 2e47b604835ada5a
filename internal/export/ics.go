// Package export renders computed occurrences as an iCalendar document so a
// range plan can be fed into a regular calendar client.
package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/schedule"
	"github.com/mfigueroa/agendx/internal/utils"
)

// dayAnchor is the nominal clock time a day's first range starts at in the
// export. Ranges have no fixed clock times, only order, so the export lays
// each day out the same way the projector lays out a started day.
const dayAnchor = 8 * time.Hour

// WriteICS serializes occurrences into w as an iCalendar document. Within
// each day, occurrences chain from the anchor in rangeOrder succession the
// same way a started day's schedule projects.
func WriteICS(w io.Writer, occurrences []models.Occurrence) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + constants.AppName + "//" + constants.Version + "//EN")

	byDay := make(map[string][]models.Occurrence)
	var dayOrder []string
	for _, occ := range occurrences {
		if _, seen := byDay[occ.DayKey]; !seen {
			dayOrder = append(dayOrder, occ.DayKey)
		}
		byDay[occ.DayKey] = append(byDay[occ.DayKey], occ)
	}

	now := time.Now()
	for _, dayKey := range dayOrder {
		day, err := utils.ParseDayKey(dayKey)
		if err != nil {
			return err
		}
		items := schedule.Project(byDay[dayKey], day.Add(dayAnchor))
		for i, occ := range byDay[dayKey] {
			ev := cal.AddEvent(fmt.Sprintf("%s@%s", occ.ID, constants.AppName))
			ev.SetDtStampTime(now)
			ev.SetStartAt(items[i].Start)
			ev.SetEndAt(items[i].End)
			ev.SetSummary(occ.Title)
			if occ.Notes != "" {
				ev.SetDescription(occ.Notes)
			}
		}
	}

	return cal.SerializeTo(w)
}
