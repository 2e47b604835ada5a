package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/cli/day"
	"github.com/mfigueroa/agendx/internal/cli/events"
	"github.com/mfigueroa/agendx/internal/cli/system"
	"github.com/mfigueroa/agendx/internal/constants"
	apperrors "github.com/mfigueroa/agendx/internal/errors"
	"github.com/mfigueroa/agendx/internal/logger"
	"github.com/mfigueroa/agendx/internal/reconcile"
	"github.com/mfigueroa/agendx/internal/session"
	"github.com/mfigueroa/agendx/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or agendx server URL." env:"AGENDX_CONFIG" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd  `cmd:"" help:"Initialize local storage."`
	Serve    system.ServeCmd `cmd:"" help:"Serve the REST API for remote clients."`
	Agenda   day.AgendaCmd   `cmd:"" help:"Show planned ranges." default:"1"`
	Start    day.StartCmd    `cmd:"" help:"Start today's day session."`
	Status   day.StatusCmd   `cmd:"" help:"Show the active session and live timers."`
	Done     day.DoneCmd     `cmd:"" help:"Mark the current range done and advance."`
	Toggle   day.ToggleCmd   `cmd:"" help:"Flip the done state of an occurrence."`
	Next     day.NextCmd     `cmd:"" help:"Skip to the next pending range."`
	Finalize day.FinalizeCmd `cmd:"" help:"Close the active day session."`
	Export   day.ExportCmd   `cmd:"" help:"Export occurrences as iCalendar."`
	Event    struct {
		Add    events.AddCmd    `cmd:"" help:"Add a new event."`
		Edit   events.EditCmd   `cmd:"" help:"Edit an existing event."`
		Delete events.DeleteCmd `cmd:"" help:"Delete an event."`
		List   events.ListCmd   `cmd:"" help:"List all events."`
	} `cmd:"" help:"Manage events."`
}

func main() {
	// .env is optional; missing files are fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily planner organized around ordered ranges, not clock times"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	logDir := filepath.Join(filepath.Dir(storage.ExpandPath(constants.DefaultConfigPath)), "logs")
	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store := storage.NewGateway(CLI.Config)
	manager := session.NewManager(store)
	appCtx := &cli.Context{Store: store, Manager: manager}

	command := ""
	if ctx.Selected() != nil {
		command = ctx.Selected().Name
	}

	if command != "init" && command != "serve" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()

		// Boot-time reconciliation: prune stale records, collapse duplicate
		// actives, adopt the survivor.
		sess, err := reconcile.NewService(store).Resume()
		if err != nil {
			logger.Warn("session reconciliation failed", "error", err)
		} else if sess != nil {
			manager.Adopt(sess)
		}
	}

	err := ctx.Run(appCtx)

	// CLI invocations are short-lived: push any debounced session write out
	// before the process exits.
	if flushErr := manager.Flush(); flushErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: session not synced: %v\n", flushErr)
	}

	apperrors.Fatal(err)
}
