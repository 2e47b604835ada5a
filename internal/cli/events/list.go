package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	restStyle  = lipgloss.NewStyle().Faint(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type ListCmd struct {
	All bool `help:"Include archived events."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].RangeOrder != events[j].RangeOrder {
			return events[i].RangeOrder < events[j].RangeOrder
		}
		return events[i].ID < events[j].ID
	})

	shown := 0
	for _, event := range events {
		if event.Archived && !c.All {
			continue
		}
		fmt.Println(formatEventLine(event))
		shown++
	}
	if shown == 0 {
		fmt.Println("No events. Add one with 'agendx event add'.")
	}
	return nil
}

func formatEventLine(event models.Event) string {
	style := titleStyle
	if event.IsRest() {
		style = restStyle
	}

	var meta []string
	meta = append(meta, cli.FormatRepeat(event.Repeat))
	if event.DurationMin > 0 {
		meta = append(meta, fmt.Sprintf("%dmin", event.DurationMin))
	}
	if len(event.WeekdayFilter) > 0 {
		var days []string
		for _, wd := range event.WeekdayFilter {
			days = append(days, wd.String()[:3])
		}
		meta = append(meta, "only "+strings.Join(days, ","))
	}
	if event.Archived {
		meta = append(meta, "archived")
	}

	return fmt.Sprintf("%2d  %s  %s  %s",
		event.RangeOrder,
		style.Render(event.Title),
		metaStyle.Render(strings.Join(meta, " · ")),
		metaStyle.Render(event.ID),
	)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
