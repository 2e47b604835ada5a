package day

import (
	"fmt"
	"time"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/utils"
)

type StartCmd struct {
	On string `help:"Day to start (YYYY-MM-DD). Only today is accepted; the flag exists for scripting clarity."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	dayKey := c.On
	if dayKey == "" {
		dayKey = utils.DayKey(time.Now())
	}

	sess, err := ctx.Manager.Start(dayKey)
	if err != nil {
		return err
	}

	fmt.Printf("Day started with %d ranges.\n", len(sess.Plan))
	if current := ctx.Manager.CurrentOccurrence(); current != nil {
		fmt.Printf("Current range: %s\n", current.Title)
	}
	return nil
}
