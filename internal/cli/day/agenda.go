package day

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/recurrence"
	"github.com/mfigueroa/agendx/internal/utils"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	restStyle      = lipgloss.NewStyle().Faint(true)
	currentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type AgendaCmd struct {
	On   string `help:"Show a single day (YYYY-MM-DD). Defaults to today."`
	Week bool   `help:"Show the current week instead of a single day."`
	From string `help:"Range start (YYYY-MM-DD), requires --to."`
	To   string `help:"Range end (YYYY-MM-DD), requires --from."`
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}

	start, end, single, err := c.resolveRange()
	if err != nil {
		return err
	}

	if single != "" {
		plan, err := recurrence.BuildDayPlan(events, single)
		if err != nil {
			return err
		}
		printDay(ctx, single, plan)
		return nil
	}

	occurrences := recurrence.BuildOccurrences(events, start, end)
	if len(occurrences) == 0 {
		fmt.Println("Nothing scheduled.")
		return nil
	}

	byDay := make(map[string][]models.Occurrence)
	var order []string
	for _, occ := range occurrences {
		if _, seen := byDay[occ.DayKey]; !seen {
			order = append(order, occ.DayKey)
		}
		byDay[occ.DayKey] = append(byDay[occ.DayKey], occ)
	}
	for _, dayKey := range order {
		printDay(ctx, dayKey, recurrence.ApplyRestOverride(byDay[dayKey], dayKey))
		fmt.Println()
	}
	return nil
}

func (c *AgendaCmd) resolveRange() (start, end time.Time, single string, err error) {
	switch {
	case c.From != "" || c.To != "":
		if c.From == "" || c.To == "" {
			return start, end, "", fmt.Errorf("--from and --to must be given together")
		}
		if start, err = utils.ParseDayKey(c.From); err != nil {
			return
		}
		end, err = utils.ParseDayKey(c.To)
		return
	case c.Week:
		now := time.Now()
		// Week starts on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
		return
	case c.On != "":
		return start, end, c.On, nil
	default:
		return start, end, utils.DayKey(time.Now()), nil
	}
}

func printDay(ctx *cli.Context, dayKey string, plan []models.Occurrence) {
	fmt.Println(dayHeaderStyle.Render(dayKey))
	if len(plan) == 0 {
		fmt.Println("  (empty)")
		return
	}

	sess := ctx.Manager.Session()
	var currentID models.OccurrenceID
	if sess != nil && sess.DayKey == dayKey {
		if current := ctx.Manager.CurrentOccurrence(); current != nil {
			currentID = current.ID
		}
	}

	for _, occ := range plan {
		marker := " "
		style := lipgloss.NewStyle()
		if occ.IsRest() {
			style = restStyle
		}
		if sess != nil && sess.DayKey == dayKey {
			if sess.Done[occ.ID] {
				marker = "x"
				style = doneStyle
			} else if occ.ID == currentID {
				marker = ">"
				style = currentStyle
			}
		}
		meta := cli.FormatRepeat(occ.Repeat)
		if occ.DurationMin > 0 {
			meta = fmt.Sprintf("%s · %dmin", meta, occ.DurationMin)
		}
		fmt.Printf("  %s %2d  %s  %s\n", marker, occ.RangeOrder, style.Render(occ.Title), metaStyle.Render(meta))
	}
}
