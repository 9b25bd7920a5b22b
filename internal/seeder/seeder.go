// Package seeder writes the test environment's account and fixtures to the document store.
//
// A run is three unconditional steps in a fixed order: create the account,
// insert the user fixture, insert the session fixture. The first failure ends
// the run. Nothing is retried or undone, so running twice against the same
// store fails on the first step.
package seeder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukeseed/internal/fixtures"
	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
)

// Step names one write of a seed run.
type Step string

const (
	StepAccount  Step = "account"
	StepUsers    Step = "users"
	StepSessions Step = "sessions"
)

// Steps lists every step in execution order.
var Steps = []Step{StepAccount, StepUsers, StepSessions}

// ParseStep returns the step with the given name.
func ParseStep(name string) (Step, error) {
	for _, s := range Steps {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown step %q", shared.ErrInvalidArgument, name)
}

// AccountCreator creates database accounts.
type AccountCreator interface {
	Create(ctx context.Context, account *models.Account) error
}

// Plan is what a seed run writes.
type Plan struct {
	Account  *models.Account
	Fixtures *fixtures.Set
}

// StepError reports the step a run stopped at.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("seed %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Seeder performs the writes of a seed run.
type Seeder struct {
	accounts AccountCreator
	users    models.Repository[*models.User]
	sessions models.Repository[*models.Session]
	logger   *log.Logger
}

// Opts contains the stores a [Seeder] writes to.
type Opts struct {
	Accounts AccountCreator
	Users    models.Repository[*models.User]
	Sessions models.Repository[*models.Session]
	Logger   *log.Logger
}

// New creates a Seeder. A nil Logger defaults to [shared.NewLogger].
func New(opts Opts) *Seeder {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Seeder{
		accounts: opts.Accounts,
		users:    opts.Users,
		sessions: opts.Sessions,
		logger:   opts.Logger,
	}
}

// CreateUser creates the credentialed account with its role bindings.
func (s *Seeder) CreateUser(ctx context.Context, account *models.Account) error {
	s.logger.Info("creating account", "step", StepAccount, "user", account.Username, "roles", len(account.Roles))
	return s.accounts.Create(ctx, account)
}

// InsertUserFixture inserts the user document.
func (s *Seeder) InsertUserFixture(ctx context.Context, user *models.User) error {
	s.logger.Info("inserting fixture", "step", StepUsers, "id", user.ID)
	return s.users.Insert(ctx, user)
}

// InsertSessionFixture inserts the session document.
func (s *Seeder) InsertSessionFixture(ctx context.Context, session *models.Session) error {
	s.logger.Info("inserting fixture", "step", StepSessions, "id", session.ID)
	return s.sessions.Insert(ctx, session)
}

// Run performs every step of plan in order.
func (s *Seeder) Run(ctx context.Context, plan Plan) error {
	return s.RunSteps(ctx, plan, Steps...)
}

// RunSteps performs the given steps in the order given and stops at the first failure, returned as a [*StepError].
func (s *Seeder) RunSteps(ctx context.Context, plan Plan, steps ...Step) error {
	for _, step := range steps {
		if err := s.runStep(ctx, plan, step); err != nil {
			s.logger.Error("seed step failed", "step", step, "error", err)
			return &StepError{Step: step, Err: err}
		}
		s.logger.Debug("seed step done", "step", step)
	}
	return nil
}

func (s *Seeder) runStep(ctx context.Context, plan Plan, step Step) error {
	switch step {
	case StepAccount:
		if plan.Account == nil {
			return fmt.Errorf("%w: no account", shared.ErrMissingArgument)
		}
		return s.CreateUser(ctx, plan.Account)
	case StepUsers:
		if plan.Fixtures == nil || plan.Fixtures.User == nil {
			return fmt.Errorf("%w: no user fixture", shared.ErrMissingArgument)
		}
		return s.InsertUserFixture(ctx, plan.Fixtures.User)
	case StepSessions:
		if plan.Fixtures == nil || plan.Fixtures.Session == nil {
			return fmt.Errorf("%w: no session fixture", shared.ErrMissingArgument)
		}
		return s.InsertSessionFixture(ctx, plan.Fixtures.Session)
	default:
		return fmt.Errorf("%w: unknown step %q", shared.ErrInvalidArgument, step)
	}
}
