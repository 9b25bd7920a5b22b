package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/fixtures"
	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/repositories"
	"github.com/desertthunder/jukeseed/internal/seeder"
	"github.com/desertthunder/jukeseed/internal/shared"
	"github.com/urfave/cli/v3"
)

// Seed runs every step against the configured store.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	return r.seed(ctx, cmd, seeder.Steps...)
}

// SeedStep runs the single step named by the invoked subcommand.
func (r *Runner) SeedStep(ctx context.Context, cmd *cli.Command) error {
	step, err := seeder.ParseStep(cmd.Name)
	if err != nil {
		return err
	}
	return r.seed(ctx, cmd, step)
}

func (r *Runner) seed(ctx context.Context, cmd *cli.Command, steps ...seeder.Step) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	plan, err := newPlan(config)
	if err != nil {
		return err
	}

	run := models.NewSeedRun(shared.RedactURI(config.Database.URI()), config.Database.Name)
	runs, done := r.openRunJournal(config, cmd.Bool("no-journal"))
	defer done()
	r.record(runs.Create, run)

	backend, disconnect, err := r.connect(ctx, config)
	if err != nil {
		run.Finish("connect", err)
		r.record(runs.Update, run)
		return err
	}
	defer disconnect()

	s := seeder.New(seeder.Opts{
		Accounts: backend.Accounts,
		Users:    backend.Users,
		Sessions: backend.Sessions,
		Logger:   r.logger,
	})

	err = s.RunSteps(ctx, plan, steps...)

	var stepErr *seeder.StepError
	failed := ""
	if errors.As(err, &stepErr) {
		failed = string(stepErr.Step)
	}
	run.Finish(failed, err)
	r.record(runs.Update, run)

	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			r.logger.Warn("store already seeded", "step", failed)
		}
		return err
	}

	for _, step := range steps {
		if err := r.writePlain("%s %s\n", r.palette.OK("✓"), step); err != nil {
			return err
		}
	}
	r.logger.Info("seed complete", "database", config.Database.Name, "steps", len(steps))
	return nil
}

// newPlan builds the seed plan from the configured account and the embedded fixtures.
func newPlan(config *shared.Config) (seeder.Plan, error) {
	set, err := fixtures.Default()
	if err != nil {
		return seeder.Plan{}, err
	}

	account := &models.Account{
		Username: config.Account.Username,
		Password: config.Account.Password,
	}
	for _, rb := range config.Account.Roles {
		account.Roles = append(account.Roles, models.RoleBinding{Role: rb.Role, DB: rb.DB})
	}

	return seeder.Plan{Account: account, Fixtures: set}, nil
}

// runJournal records seed runs. A nil repository makes every write a no-op.
type runJournal struct {
	repo *repositories.RunRepository
}

func (j runJournal) Create(run *models.SeedRun) error {
	if j.repo == nil {
		return nil
	}
	return j.repo.Create(run)
}

func (j runJournal) Update(run *models.SeedRun) error {
	if j.repo == nil {
		return nil
	}
	return j.repo.Update(run)
}

// openRunJournal opens the journal when it is enabled. Failures are logged and
// leave the run unjournaled.
func (r *Runner) openRunJournal(config *shared.Config, skip bool) (runJournal, func()) {
	noop := func() {}
	if skip {
		r.logger.Debug("journal skipped by flag")
		return runJournal{}, noop
	}

	db, err := shared.OpenJournal(config.Journal)
	if errors.Is(err, shared.ErrJournalDisabled) {
		r.logger.Debug("journal disabled")
		return runJournal{}, noop
	}
	if err != nil {
		r.logger.Warn("journal unavailable", "path", config.Journal.Path, "error", err)
		return runJournal{}, noop
	}

	return runJournal{repo: repositories.NewRunRepository(db)}, func() { closeJournal(r, db) }
}

func closeJournal(r *Runner, db *sql.DB) {
	if err := db.Close(); err != nil {
		r.logger.Warn("failed to close journal", "error", err)
	}
}

// record writes run with fn and logs a failure instead of returning it.
func (r *Runner) record(fn func(*models.SeedRun) error, run *models.SeedRun) {
	if err := fn(run); err != nil {
		r.logger.Warn("failed to journal seed run", "error", fmt.Errorf("run %s: %w", run.ID, err))
	}
}
