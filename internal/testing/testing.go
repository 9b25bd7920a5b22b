// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
)

// CallLog records store calls in order across several fakes.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *CallLog) add(format string, args ...any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded calls.
func (c *CallLog) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// FakeAccounts is an in-memory test double for the account repository.
//
// Create fails with [shared.ErrAlreadyExists] for a taken username, like the store does.
type FakeAccounts struct {
	Log      *CallLog
	Err      error // returned by every call when set
	accounts map[string]models.Account
}

func NewFakeAccounts(log *CallLog) *FakeAccounts {
	return &FakeAccounts{Log: log, accounts: map[string]models.Account{}}
}

func (f *FakeAccounts) Create(ctx context.Context, account *models.Account) error {
	f.Log.add("create account %s", account.Username)
	if f.Err != nil {
		return f.Err
	}
	if _, ok := f.accounts[account.Username]; ok {
		return fmt.Errorf("create account %q: %w", account.Username, shared.ErrAlreadyExists)
	}
	stored := *account
	stored.Password = ""
	stored.Roles = append([]models.RoleBinding(nil), account.Roles...)
	f.accounts[account.Username] = stored
	return nil
}

func (f *FakeAccounts) Get(ctx context.Context, username string) (*models.Account, error) {
	f.Log.add("get account %s", username)
	if f.Err != nil {
		return nil, f.Err
	}
	a, ok := f.accounts[username]
	if !ok {
		return nil, fmt.Errorf("get account %q: %w", username, shared.ErrNotFound)
	}
	return &a, nil
}

func (f *FakeAccounts) Count(ctx context.Context, username string) (int, error) {
	f.Log.add("count account %s", username)
	if f.Err != nil {
		return 0, f.Err
	}
	if _, ok := f.accounts[username]; ok {
		return 1, nil
	}
	return 0, nil
}

// FakeRepository is an in-memory test double for [models.Repository].
type FakeRepository[T models.Document] struct {
	Name string
	Log  *CallLog
	Err  error // returned by every call when set
	docs map[string]T
}

func NewFakeRepository[T models.Document](name string, log *CallLog) *FakeRepository[T] {
	return &FakeRepository[T]{Name: name, Log: log, docs: map[string]T{}}
}

func (f *FakeRepository[T]) Insert(ctx context.Context, doc T) error {
	f.Log.add("insert %s %s", f.Name, doc.DocumentID())
	if f.Err != nil {
		return f.Err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, ok := f.docs[doc.DocumentID()]; ok {
		return fmt.Errorf("insert %s %q: %w", f.Name, doc.DocumentID(), shared.ErrAlreadyExists)
	}
	f.docs[doc.DocumentID()] = doc
	return nil
}

func (f *FakeRepository[T]) Get(ctx context.Context, id string) (T, error) {
	f.Log.add("get %s %s", f.Name, id)
	var zero T
	if f.Err != nil {
		return zero, f.Err
	}
	doc, ok := f.docs[id]
	if !ok {
		return zero, fmt.Errorf("get %s %q: %w", f.Name, id, shared.ErrNotFound)
	}
	return doc, nil
}

func (f *FakeRepository[T]) CountByID(ctx context.Context, id string) (int64, error) {
	f.Log.add("count %s %s", f.Name, id)
	if f.Err != nil {
		return 0, f.Err
	}
	if _, ok := f.docs[id]; ok {
		return 1, nil
	}
	return 0, nil
}

// Put stores doc without validation or duplicate checks.
func (f *FakeRepository[T]) Put(doc T) {
	f.docs[doc.DocumentID()] = doc
}

// Len returns the number of stored documents.
func (f *FakeRepository[T]) Len() int {
	return len(f.docs)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
