// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// commonFlags are accepted by every command that reads configuration.
func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	return append(flags, extra...)
}

// seedCommand runs the seed steps, all of them or one at a time.
func seedCommand(r *Runner) *cli.Command {
	noJournal := &cli.BoolFlag{
		Name:  "no-journal",
		Usage: "Do not record the run in the local journal",
	}

	return &cli.Command{
		Name:   "seed",
		Usage:  "Create the account and insert the user and session fixtures",
		Flags:  commonFlags(noJournal),
		Action: r.Seed,
		Commands: []*cli.Command{
			{
				Name:   "account",
				Usage:  "Create the database account only",
				Flags:  commonFlags(noJournal),
				Action: r.SeedStep,
			},
			{
				Name:   "users",
				Usage:  "Insert the user fixture only",
				Flags:  commonFlags(noJournal),
				Action: r.SeedStep,
			},
			{
				Name:   "sessions",
				Usage:  "Insert the session fixture only",
				Flags:  commonFlags(noJournal),
				Action: r.SeedStep,
			},
		},
	}
}

// verifyCommand checks a seeded store.
func verifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check that the store holds exactly what one seed run writes",
		Flags: commonFlags(
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		),
		Action: r.Verify,
	}
}

// fixturesCommand prints the embedded fixtures without touching the store.
func fixturesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fixtures",
		Usage: "Print the fixture documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, csv, markdown, text)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Fixtures,
	}
}

// setupCommand handles setup operations for configuration and the journal.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write config.toml from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the configuration file",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "journal",
				Usage:  "Initialize the run journal and run migrations",
				Flags:  commonFlags(),
				Action: r.SetupJournal,
			},
		},
	}
}

// historyCommand lists journaled seed runs.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded seed runs, newest first",
		Flags: commonFlags(
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		),
		Action: r.History,
	}
}
