package system

import (
	"fmt"

	"github.com/mfigueroa/agendx/internal/cli"
	"github.com/mfigueroa/agendx/internal/config"
	"github.com/mfigueroa/agendx/internal/logger"
	"github.com/mfigueroa/agendx/internal/server"
	"github.com/mfigueroa/agendx/internal/storage"
	"github.com/mfigueroa/agendx/internal/storage/sqlite"
)

type ServeCmd struct {
	Config string `short:"c" help:"YAML server config file."`
	Listen string `help:"Listen address, overrides the config file."`
}

func (c *ServeCmd) Run(_ *cli.Context) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Listen = c.Listen
	}

	store := sqlite.NewStore(storage.ExpandPath(cfg.Database))
	if err := store.Init(); err != nil {
		return err
	}
	defer store.Close()

	if cfg.PurgeCron != "" {
		purge, err := server.StartPurge(store, cfg.PurgeCron)
		if err != nil {
			return fmt.Errorf("invalid purge cron %q: %w", cfg.PurgeCron, err)
		}
		defer purge.Stop()
	}

	router := server.NewRouter(store, cfg.CORSOrigins)
	logger.Info("serving agendx API", "listen", cfg.Listen, "database", cfg.Database)
	fmt.Printf("Serving agendx API on %s\n", cfg.Listen)
	return router.Run(cfg.Listen)
}
