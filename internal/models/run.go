package models

import "time"

// RunStatus is the outcome of a [SeedRun].
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// SeedRun is one journaled attempt to seed a store.
type SeedRun struct {
	ID         string
	Sequence   int
	Target     string // connection string with the password redacted
	Database   string
	Status     RunStatus
	FailedStep string
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// NewSeedRun returns a running SeedRun started now.
func NewSeedRun(target, database string) *SeedRun {
	return &SeedRun{
		Target:    target,
		Database:  database,
		Status:    RunRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Finish records the outcome. A nil err marks the run as succeeded.
func (r *SeedRun) Finish(step string, err error) {
	now := time.Now().UTC()
	r.FinishedAt = &now
	if err != nil {
		r.Status = RunFailed
		r.FailedStep = step
		r.Error = err.Error()
		return
	}
	r.Status = RunSucceeded
}

// Duration returns how long the run took, or zero while it is running.
func (r *SeedRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
