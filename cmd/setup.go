package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the configuration template. An existing file is left untouched.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateConfigFile(path); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			r.logger.Warn("config file already exists, leaving it as is", "path", path)
			return nil
		}
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("%s %s\n", r.palette.OK("✓"), path)
}

// SetupJournal initializes the run journal and runs migrations. It creates the
// journal even when the loaded configuration leaves it disabled.
func (r *Runner) SetupJournal(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if !config.Journal.Enabled {
		r.logger.Info("journal disabled in config, enabling for setup")
		config.Journal.Enabled = true
	}

	r.logger.Info("initializing journal", "path", config.Journal.Path)

	db, err := shared.OpenJournal(config.Journal)
	if err != nil {
		return fmt.Errorf("failed to set up journal: %w", err)
	}
	defer db.Close()

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for journal: %v (schema version %d)", config.Journal.Path, version)
	return nil
}
