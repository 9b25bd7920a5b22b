// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/shared"
	"go.mongodb.org/mongo-driver/mongo"
)

// codeUserAlreadyExists is returned by createUser when the account exists.
const codeUserAlreadyExists = 51003

// Classify wraps store errors with the matching shared sentinel.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	switch {
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %w", op, shared.ErrAlreadyExists, err)
	case errors.As(err, &cmdErr) && cmdErr.Code == codeUserAlreadyExists:
		return fmt.Errorf("%s: %w: %w", op, shared.ErrAlreadyExists, err)
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w: %w", op, shared.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers give journal entries a stable, human-readable order (run #1, run #2).
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	_, err = tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}
