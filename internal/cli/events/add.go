package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/recurrence"
	"github.com/mfigueroa/agendx/internal/utils"
	"github.com/mfigueroa/agendx/internal/validation"
)

type AddCmd struct {
	Title      string `arg:"" optional:"" help:"Event title (defaults to 'Rest' for --rest)."`
	Rest       bool   `help:"Create a rest sentinel that keeps its slot free."`
	Order      int    `short:"o" help:"Range order (slot within the day). Defaults to one past the highest in use."`
	Duration   string `short:"d" help:"Duration, e.g. 45, 45m or 2h."`
	Notes      string `short:"n" help:"Notes (markdown)."`
	StartOn    string `help:"Earliest eligible day (YYYY-MM-DD). Defaults to today."`
	Repeat     string `short:"r" help:"Repeat type (none|daily|weekly|monthly|interval|dates)." default:"none"`
	Weekdays   string `short:"w" help:"Comma-separated weekdays for weekly repeat."`
	DayOfMonth int    `help:"Day of month (1-31) for monthly repeat."`
	Every      int    `help:"Day interval for interval repeat." default:"1"`
	Dates      string `help:"Comma-separated day keys for dates repeat."`
	Filter     string `help:"Weekday filter applied regardless of repeat type."`
	RRule      string `help:"RFC 5545 RRULE to derive the repeat rule from (overrides --repeat)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}

	title := c.Title
	if title == "" && c.Rest {
		title = "Rest"
	}
	order := c.Order
	if order == 0 {
		order = cli.SuggestedRangeOrder(existing)
	}
	startOn := c.StartOn
	if startOn == "" {
		startOn = utils.DayKey(time.Now())
	}
	durationMin, err := cli.ParseDuration(c.Duration)
	if err != nil {
		return err
	}

	repeat, err := c.buildRepeat(startOn)
	if err != nil {
		return err
	}

	var filter []time.Weekday
	if c.Filter != "" {
		if filter, err = cli.ParseWeekdays(c.Filter); err != nil {
			return err
		}
	}

	kind := models.EventKindNormal
	if c.Rest {
		kind = models.EventKindRest
	}

	event := models.Event{
		ID:            uuid.NewString(),
		Kind:          kind,
		Title:         title,
		Notes:         c.Notes,
		RangeOrder:    order,
		DurationMin:   durationMin,
		StartOn:       startOn,
		Repeat:        repeat,
		WeekdayFilter: filter,
	}
	if err := validation.ValidateEvent(event); err != nil {
		return err
	}
	if err := ctx.Store.AddEvent(event); err != nil {
		return err
	}
	if err := ctx.RecalcIfActive(); err != nil {
		return err
	}

	fmt.Printf("Added %q (order %d, %s)\n", event.Title, event.RangeOrder, cli.FormatRepeat(event.Repeat))
	return nil
}

func (c *AddCmd) buildRepeat(startOn string) (models.Repeat, error) {
	if c.RRule != "" {
		return recurrence.RepeatFromRRule(c.RRule)
	}

	repeat := models.Repeat{Type: models.RepeatType(c.Repeat)}
	switch repeat.Type {
	case models.RepeatWeekly:
		days, err := cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return models.Repeat{}, err
		}
		repeat.DaysOfWeek = days
	case models.RepeatMonthly:
		repeat.DayOfMonth = c.DayOfMonth
	case models.RepeatInterval:
		repeat.EveryDays = c.Every
	case models.RepeatDates:
		for _, d := range splitList(c.Dates) {
			repeat.DateList = append(repeat.DateList, d)
		}
		if len(repeat.DateList) == 0 && startOn != "" {
			repeat.DateList = []string{startOn}
		}
	}
	return repeat, nil
}
