package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
)

// AccountReader reads database accounts.
type AccountReader interface {
	Get(ctx context.Context, username string) (*models.Account, error)
	Count(ctx context.Context, username string) (int, error)
}

// Check is the result of one verification.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects the checks of a verification pass.
type Report struct {
	Checks []Check
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Err returns [shared.ErrVerificationFailed] naming the failed checks, or nil.
func (r *Report) Err() error {
	var failed []string
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c.Name)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", shared.ErrVerificationFailed, strings.Join(failed, ", "))
}

func (r *Report) add(name string, passed bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Detail: fmt.Sprintf(format, args...)})
}

// Verifier checks that a store holds exactly what one seed run writes.
type Verifier struct {
	accounts AccountReader
	users    models.Repository[*models.User]
	sessions models.Repository[*models.Session]
}

// NewVerifier creates a Verifier reading from the given stores.
func NewVerifier(accounts AccountReader, users models.Repository[*models.User], sessions models.Repository[*models.Session]) *Verifier {
	return &Verifier{accounts: accounts, users: users, sessions: sessions}
}

// Verify runs every check against plan. Failed checks land in the report;
// only store errors other than "not found" are returned.
func (v *Verifier) Verify(ctx context.Context, plan Plan) (*Report, error) {
	if plan.Account == nil || plan.Fixtures == nil || plan.Fixtures.User == nil || plan.Fixtures.Session == nil {
		return nil, fmt.Errorf("%w: verification needs an account and both fixtures", shared.ErrMissingArgument)
	}

	report := &Report{}

	if err := v.checkAccount(ctx, report, plan.Account); err != nil {
		return report, err
	}

	user, err := v.checkUser(ctx, report, plan.Fixtures.User)
	if err != nil {
		return report, err
	}

	session, err := v.checkSession(ctx, report, plan.Fixtures.Session)
	if err != nil {
		return report, err
	}

	switch {
	case user == nil || session == nil:
		report.add("link", false, "user or session missing")
	case user.BelongsTo(session):
		report.add("link", true, "user session_id %q matches session _id", user.SessionID)
	default:
		report.add("link", false, "user session_id %q, session _id %q", user.SessionID, session.ID)
	}

	return report, nil
}

func (v *Verifier) checkAccount(ctx context.Context, report *Report, want *models.Account) error {
	n, err := v.accounts.Count(ctx, want.Username)
	if err != nil {
		return err
	}
	if n != 1 {
		report.add("account", false, "found %d accounts named %q", n, want.Username)
		return nil
	}

	got, err := v.accounts.Get(ctx, want.Username)
	if err != nil {
		return err
	}

	var missing []string
	for _, rb := range want.Roles {
		if !got.HasRole(rb) {
			missing = append(missing, rb.String())
		}
	}
	if len(missing) > 0 {
		report.add("account", false, "%q is missing %s", want.Username, strings.Join(missing, ", "))
		return nil
	}

	report.add("account", true, "%q holds %d role binding(s)", want.Username, len(want.Roles))
	return nil
}

func (v *Verifier) checkUser(ctx context.Context, report *Report, want *models.User) (*models.User, error) {
	n, err := v.users.CountByID(ctx, want.ID)
	if err != nil {
		return nil, err
	}
	if n != 1 {
		report.add("user", false, "found %d users with _id %q", n, want.ID)
		return nil, nil
	}

	got, err := v.users.Get(ctx, want.ID)
	if errors.Is(err, shared.ErrNotFound) {
		report.add("user", false, "user %q vanished during verification", want.ID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report.add("user", true, "one user with _id %q", want.ID)
	return got, nil
}

func (v *Verifier) checkSession(ctx context.Context, report *Report, want *models.Session) (*models.Session, error) {
	n, err := v.sessions.CountByID(ctx, want.ID)
	if err != nil {
		return nil, err
	}
	if n != 1 {
		report.add("session", false, "found %d sessions with _id %q", n, want.ID)
		return nil, nil
	}

	got, err := v.sessions.Get(ctx, want.ID)
	if errors.Is(err, shared.ErrNotFound) {
		report.add("session", false, "session %q vanished during verification", want.ID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(got.SongList) != 0 {
		report.add("session", false, "session %q has %d songs, want 0", want.ID, len(got.SongList))
		return got, nil
	}

	report.add("session", true, "one session with _id %q and an empty song list", want.ID)
	return got, nil
}
