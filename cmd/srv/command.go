package main

import (
	"time"

	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "dawerha"
	s.app.Usage = "Tenant activation scheduler"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a toml config file",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = func(cctx *cli.Context) error {
		if err := s.loadConfig(cctx); err != nil {
			return err
		}

		s.loadLogger()
		return nil
	}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startScheduler,
			Name:        "scheduler",
			Usage:       "Start the activation scheduler",
			Category:    "Worker",
			Description: `Evaluates every enabled activation schedule on a fixed interval and activates the tenants whose start hour has come.`,
		},
		{
			Action:   s.startTick,
			Name:     "tick",
			Usage:    "Run one scheduler pass",
			Category: "Worker",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "dry-run",
					Usage: "report the activations without saving them",
				},
				&cli.TimestampFlag{
					Name:   "at",
					Usage:  "evaluate at this instant instead of now",
					Layout: time.RFC3339,
				},
			},
			Description: `Used to check which schedules would fire at a given instant.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Database",
			Description: `Creates or updates the tenant, schedule and spin tables.`,
		},
	}
}
