package day

import (
	"fmt"
	"os"
	"time"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/export"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/recurrence"
	"github.com/mfigueroa/agendx/internal/utils"
)

type ExportCmd struct {
	From   string `help:"Range start (YYYY-MM-DD). Defaults to today."`
	To     string `help:"Range end (YYYY-MM-DD). Defaults to 30 days out."`
	Output string `short:"f" help:"Output file. Defaults to stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	from := c.From
	if from == "" {
		from = utils.DayKey(time.Now())
	}
	to := c.To
	if to == "" {
		var err error
		if to, err = utils.AddDays(from, 30); err != nil {
			return err
		}
	}

	start, err := utils.ParseDayKey(from)
	if err != nil {
		return err
	}
	end, err := utils.ParseDayKey(to)
	if err != nil {
		return err
	}

	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	raw := recurrence.BuildOccurrences(events, start, end)

	var occurrences []models.Occurrence
	var dayOrder []string
	seen := make(map[string]bool)
	for _, occ := range raw {
		if !seen[occ.DayKey] {
			seen[occ.DayKey] = true
			dayOrder = append(dayOrder, occ.DayKey)
		}
	}
	for _, dayKey := range dayOrder {
		occurrences = append(occurrences, recurrence.ApplyRestOverride(raw, dayKey)...)
	}

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := export.WriteICS(out, occurrences); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Printf("Exported %d occurrences to %s\n", len(occurrences), c.Output)
	}
	return nil
}
