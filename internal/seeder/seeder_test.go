package seeder

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/desertthunder/jukeseed/internal/fixtures"
	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
	tu "github.com/desertthunder/jukeseed/internal/testing"
)

type harness struct {
	log      *tu.CallLog
	accounts *tu.FakeAccounts
	users    *tu.FakeRepository[*models.User]
	sessions *tu.FakeRepository[*models.Session]
	seeder   *Seeder
	verifier *Verifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{log: &tu.CallLog{}}
	h.accounts = tu.NewFakeAccounts(h.log)
	h.users = tu.NewFakeRepository[*models.User]("users", h.log)
	h.sessions = tu.NewFakeRepository[*models.Session]("sessions", h.log)
	h.seeder = New(Opts{
		Accounts: h.accounts,
		Users:    h.users,
		Sessions: h.sessions,
		Logger:   shared.NewLogger(io.Discard),
	})
	h.verifier = NewVerifier(h.accounts, h.users, h.sessions)
	return h
}

func defaultPlan(t *testing.T) Plan {
	t.Helper()
	set, err := fixtures.Default()
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	return Plan{
		Account: &models.Account{
			Username: "root",
			Password: "root",
			Roles:    []models.RoleBinding{{Role: "readWrite", DB: "users"}},
		},
		Fixtures: set,
	}
}

func TestSeeder(t *testing.T) {
	ctx := context.Background()

	t.Run("Run writes in order", func(t *testing.T) {
		h := newHarness(t)

		if err := h.seeder.Run(ctx, defaultPlan(t)); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := []string{"create account root", "insert users baumanto@1", "insert sessions 1"}
		if got := h.log.Calls(); !reflect.DeepEqual(got, want) {
			t.Errorf("calls = %v, want %v", got, want)
		}

		if h.users.Len() != 1 || h.sessions.Len() != 1 {
			t.Errorf("expected one user and one session, got %d and %d", h.users.Len(), h.sessions.Len())
		}
	})

	t.Run("second Run fails on the first step", func(t *testing.T) {
		h := newHarness(t)
		plan := defaultPlan(t)

		if err := h.seeder.Run(ctx, plan); err != nil {
			t.Fatalf("first Run() error = %v", err)
		}

		err := h.seeder.Run(ctx, plan)
		if !errors.Is(err, shared.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}

		var stepErr *StepError
		if !errors.As(err, &stepErr) || stepErr.Step != StepAccount {
			t.Errorf("expected failure at account step, got %v", err)
		}
	})

	t.Run("duplicate user document aborts before sessions", func(t *testing.T) {
		h := newHarness(t)
		plan := defaultPlan(t)
		h.users.Put(plan.Fixtures.User)

		err := h.seeder.Run(ctx, plan)

		var stepErr *StepError
		if !errors.As(err, &stepErr) || stepErr.Step != StepUsers {
			t.Fatalf("expected failure at users step, got %v", err)
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
		if h.sessions.Len() != 0 {
			t.Error("sessions step should not run after a failure")
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		h := newHarness(t)
		cause := errors.New("connection reset")
		h.sessions.Err = cause

		err := h.seeder.Run(ctx, defaultPlan(t))
		if !errors.Is(err, cause) {
			t.Errorf("expected cause in chain, got %v", err)
		}
		if h.users.Len() != 1 {
			t.Error("earlier steps are not undone")
		}
	})

	t.Run("RunSteps runs only the given steps", func(t *testing.T) {
		h := newHarness(t)

		if err := h.seeder.RunSteps(ctx, defaultPlan(t), StepSessions); err != nil {
			t.Fatalf("RunSteps() error = %v", err)
		}

		want := []string{"insert sessions 1"}
		if got := h.log.Calls(); !reflect.DeepEqual(got, want) {
			t.Errorf("calls = %v, want %v", got, want)
		}
	})

	t.Run("missing plan parts", func(t *testing.T) {
		tc := []struct {
			name string
			plan Plan
			step Step
		}{
			{"no account", Plan{}, StepAccount},
			{"no user", Plan{Fixtures: &fixtures.Set{}}, StepUsers},
			{"no session", Plan{}, StepSessions},
			{"unknown step", Plan{}, Step("players")},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				h := newHarness(t)
				err := h.seeder.RunSteps(ctx, tt.plan, tt.step)

				var stepErr *StepError
				if !errors.As(err, &stepErr) || stepErr.Step != tt.step {
					t.Errorf("expected StepError at %s, got %v", tt.step, err)
				}
			})
		}
	})
}

func TestParseStep(t *testing.T) {
	for _, s := range Steps {
		got, err := ParseStep(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStep(%q) = %q, %v", s, got, err)
		}
	}

	if _, err := ParseStep("players"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestStepError(t *testing.T) {
	cause := errors.New("boom")
	err := &StepError{Step: StepUsers, Err: cause}

	if err.Error() != "seed users: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}
