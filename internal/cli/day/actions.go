package day

import (
	"fmt"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/models"
)

type DoneCmd struct{}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	marked, err := ctx.Manager.MarkCurrentDone()
	if err != nil {
		return err
	}
	if marked == nil {
		fmt.Println("Nothing pending.")
		return nil
	}

	fmt.Printf("Done: %s\n", marked.Title)
	if next := ctx.Manager.CurrentOccurrence(); next != nil {
		fmt.Printf("Current range: %s\n", next.Title)
	} else {
		fmt.Println("All ranges done. Finalize with 'agendx finalize'.")
	}
	return nil
}

type ToggleCmd struct {
	Occurrence string `arg:"" help:"Occurrence id (<event-id>__<day-key>)."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	id, err := models.ParseOccurrenceID(c.Occurrence)
	if err != nil {
		return err
	}
	if err := ctx.Manager.Toggle(id); err != nil {
		return err
	}

	sess := ctx.Manager.Session()
	state := "pending"
	if sess != nil && sess.Done[id] {
		state = "done"
	}
	fmt.Printf("Toggled %s -> %s\n", id, state)
	return nil
}

type NextCmd struct{}

func (c *NextCmd) Run(ctx *cli.Context) error {
	if err := ctx.Manager.Advance(); err != nil {
		return err
	}
	if current := ctx.Manager.CurrentOccurrence(); current != nil {
		fmt.Printf("Current range: %s\n", current.Title)
	} else {
		fmt.Println("Nothing pending.")
	}
	return nil
}

type FinalizeCmd struct{}

func (c *FinalizeCmd) Run(ctx *cli.Context) error {
	sess := ctx.Manager.Session()
	if sess == nil {
		fmt.Println("No active day session.")
		return nil
	}
	done, total := sess.DoneCount(), len(sess.Plan)
	if err := ctx.Manager.Finalize(); err != nil {
		return err
	}

	fmt.Printf("Day finalized (%d/%d done).\n", done, total)
	return nil
}
