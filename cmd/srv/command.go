package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "termwatch"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startEngine,
			Name:        "engine",
			Usage:       "Start tracking engine",
			Flags:       []cli.Flag{},
			Category:    "Engine",
			Description: `Consumes platform message events, counts tracked terms and evaluates achievements.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs the retention sweep and daily summary jobs without the engine loop.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database schema",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Creates or upgrades every table and exits.`,
		},
	}

	s.app = app
}
