package system

import (
	"fmt"

	"github.com/mfigueroa/agendx/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Storage initialized at %s\n", ctx.Store.GetConfigPath())
	return nil
}
