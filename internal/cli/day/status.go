package day

import (
	"errors"
	"fmt"
	"time"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/session"
	"github.com/mfigueroa/agendx/internal/utils"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	sess := ctx.Manager.Session()
	if sess == nil {
		fmt.Println("No active day session. Start one with 'agendx start'.")
		return nil
	}

	now := time.Now()
	proj, err := ctx.Manager.Project(now)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Println("No active day session.")
			return nil
		}
		return err
	}

	fmt.Printf("Day %s, started at %s\n", sess.DayKey, sess.StartedAt.Format(constants.TimeFormat))
	fmt.Printf("Progress: %d/%d\n", sess.DoneCount(), len(sess.Plan))

	if sess.Completed() {
		fmt.Println("All ranges done. Finalize with 'agendx finalize'.")
		return nil
	}

	if proj.Current != nil {
		fmt.Printf("Current range: %s\n", proj.Current.Title)
		if proj.CurrentItem != nil && proj.Current.DurationMin > 0 {
			fmt.Printf("  ends %s, %s left\n",
				proj.CurrentItem.End.Format(constants.TimeFormat),
				utils.FormatHMS(proj.RemainingInCurrent))
		}
	}
	fmt.Printf("Remaining today: %s\n", utils.FormatHMS(proj.TotalRemaining))
	return nil
}
