package events

import (
	"fmt"

	"github.com/mfigueroa/agendx/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Event id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	event, err := ctx.Store.GetEvent(c.ID)
	if err != nil {
		return fmt.Errorf("event not found: %s", c.ID)
	}
	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return err
	}
	if err := ctx.RecalcIfActive(); err != nil {
		return err
	}

	fmt.Printf("Deleted %q\n", event.Title)
	return nil
}
