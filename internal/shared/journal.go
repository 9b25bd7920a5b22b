package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewJournal opens the sqlite run journal at the specified path.
// The path can be ":memory:" for an in-memory database.
func NewJournal(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	// A single writer keeps :memory: journals on one connection.
	db.SetMaxOpenConns(1)

	return db, nil
}

// OpenJournal opens the journal described by cfg and applies pending migrations.
func OpenJournal(cfg JournalConfig) (*sql.DB, error) {
	if !cfg.Enabled {
		return nil, ErrJournalDisabled
	}

	db, err := NewJournal(cfg.Path)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	return db, nil
}
