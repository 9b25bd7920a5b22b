package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/seeder"
	"github.com/desertthunder/jukeseed/internal/ui"
	"github.com/urfave/cli/v3"
)

type checkView struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type reportView struct {
	OK     bool        `json:"ok"`
	Checks []checkView `json:"checks"`
}

// Verify checks the configured store and prints a report.
//
// A failed check returns [shared.ErrVerificationFailed] so the process exits non-zero.
func (r *Runner) Verify(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	plan, err := newPlan(config)
	if err != nil {
		return err
	}

	backend, disconnect, err := r.connect(ctx, config)
	if err != nil {
		return err
	}
	defer disconnect()

	report, err := seeder.NewVerifier(backend.Accounts, backend.Users, backend.Sessions).Verify(ctx, plan)
	if err != nil {
		return fmt.Errorf("verification aborted: %w", err)
	}

	if cmd.Bool("json") {
		view := reportView{OK: report.OK()}
		for _, c := range report.Checks {
			view.Checks = append(view.Checks, checkView(c))
		}
		if err := r.writeJSON(view, true); err != nil {
			return err
		}
	} else if err := r.writePlain("%s", ui.RenderReport(r.palette, report)); err != nil {
		return err
	}

	return report.Err()
}
