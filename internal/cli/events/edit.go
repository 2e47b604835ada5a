package events

import (
	"fmt"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/recurrence"
	"github.com/mfigueroa/agendx/internal/validation"
)

type EditCmd struct {
	ID         string  `arg:"" help:"Event id."`
	Title      *string `help:"New title."`
	Notes      *string `help:"New notes."`
	Order      *int    `short:"o" help:"New range order."`
	Duration   *string `short:"d" help:"New duration, e.g. 45, 45m or 2h. 0 clears it."`
	StartOn    *string `help:"New earliest eligible day (YYYY-MM-DD)."`
	Repeat     *string `short:"r" help:"New repeat type (none|daily|weekly|monthly|interval|dates)."`
	Weekdays   *string `short:"w" help:"Comma-separated weekdays for weekly repeat."`
	DayOfMonth *int    `help:"Day of month for monthly repeat."`
	Every      *int    `help:"Day interval for interval repeat."`
	Dates      *string `help:"Comma-separated day keys for dates repeat."`
	Filter     *string `help:"New weekday filter; empty string clears it."`
	RRule      *string `help:"RFC 5545 RRULE to derive the repeat rule from."`
	Archive    bool    `help:"Archive the event (it stops producing occurrences)."`
	Unarchive  bool    `help:"Restore an archived event."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	event, err := ctx.Store.GetEvent(c.ID)
	if err != nil {
		return fmt.Errorf("event not found: %s", c.ID)
	}

	if c.Title != nil {
		event.Title = *c.Title
	}
	if c.Notes != nil {
		event.Notes = *c.Notes
	}
	if c.Order != nil {
		event.RangeOrder = *c.Order
	}
	if c.Duration != nil {
		min, err := cli.ParseDuration(*c.Duration)
		if err != nil {
			return err
		}
		event.DurationMin = min
	}
	if c.StartOn != nil {
		event.StartOn = *c.StartOn
	}
	if err := c.applyRepeat(&event); err != nil {
		return err
	}
	if c.Filter != nil {
		if *c.Filter == "" {
			event.WeekdayFilter = nil
		} else {
			filter, err := cli.ParseWeekdays(*c.Filter)
			if err != nil {
				return err
			}
			event.WeekdayFilter = filter
		}
	}
	if c.Archive {
		event.Archived = true
	}
	if c.Unarchive {
		event.Archived = false
	}

	if err := validation.ValidateEvent(event); err != nil {
		return err
	}
	if err := ctx.Store.UpdateEvent(event); err != nil {
		return err
	}
	if err := ctx.RecalcIfActive(); err != nil {
		return err
	}

	fmt.Printf("Updated %q\n", event.Title)
	return nil
}

func (c *EditCmd) applyRepeat(event *models.Event) error {
	if c.RRule != nil {
		repeat, err := recurrence.RepeatFromRRule(*c.RRule)
		if err != nil {
			return err
		}
		event.Repeat = repeat
		return nil
	}
	if c.Repeat != nil {
		event.Repeat = models.Repeat{Type: models.RepeatType(*c.Repeat)}
	}
	if c.Weekdays != nil {
		days, err := cli.ParseWeekdays(*c.Weekdays)
		if err != nil {
			return err
		}
		event.Repeat.DaysOfWeek = days
	}
	if c.DayOfMonth != nil {
		event.Repeat.DayOfMonth = *c.DayOfMonth
	}
	if c.Every != nil {
		event.Repeat.EveryDays = *c.Every
	}
	if c.Dates != nil {
		event.Repeat.DateList = splitList(*c.Dates)
	}
	return nil
}
