package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
)

// RunRepository persists [models.SeedRun] entries in the sqlite journal.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new [RunRepository] with the given journal connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run with generated ID and sequence
func (r *RunRepository) Create(run *models.SeedRun) error {
	sequence, err := NextSequence(r.db, "seed_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.ID = shared.GenerateID()
	run.Sequence = sequence

	query := `
		INSERT INTO seed_runs (id, sequence, target, database_name, status, failed_step, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, run.ID, run.Sequence, run.Target, run.Database, string(run.Status),
		run.FailedStep, run.Error, run.StartedAt, nullTime(run.FinishedAt))
	if err != nil {
		return fmt.Errorf("failed to insert seed run: %w", err)
	}

	return nil
}

// Update writes the outcome fields of an existing run
func (r *RunRepository) Update(run *models.SeedRun) error {
	query := `
		UPDATE seed_runs
		SET status = ?, failed_step = ?, error = ?, finished_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, string(run.Status), run.FailedStep, run.Error, nullTime(run.FinishedAt), run.ID)
	if err != nil {
		return fmt.Errorf("failed to update seed run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("seed run %s: %w", run.ID, shared.ErrNotFound)
	}

	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(id string) (*models.SeedRun, error) {
	query := `
		SELECT id, sequence, target, database_name, status, failed_step, error, started_at, finished_at
		FROM seed_runs
		WHERE id = ?
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seed run %s: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query seed run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A limit <= 0 returns every run.
func (r *RunRepository) List(limit int) ([]*models.SeedRun, error) {
	query := `
		SELECT id, sequence, target, database_name, status, failed_step, error, started_at, finished_at
		FROM seed_runs
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query seed runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.SeedRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seed run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.SeedRun, error) {
	var (
		run        models.SeedRun
		status     string
		finishedAt sql.NullTime
	)

	err := s.Scan(&run.ID, &run.Sequence, &run.Target, &run.Database, &status,
		&run.FailedStep, &run.Error, &run.StartedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	run.Status = models.RunStatus(status)
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
