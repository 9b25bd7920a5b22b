package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/repositories"
	"github.com/desertthunder/jukeseed/internal/shared"
	"github.com/desertthunder/jukeseed/internal/ui"
	"github.com/urfave/cli/v3"
)

// History lists journaled seed runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("%w: --limit must be positive", shared.ErrInvalidFlag)
	}

	db, err := shared.OpenJournal(config.Journal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	runs, err := repositories.NewRunRepository(db).List(limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}
	return r.writePlain("%s", ui.RenderHistory(r.palette, runs))
}
