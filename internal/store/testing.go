package store

import (
	"database/sql"
	"fmt"
)

// NewTestStore creates a Store over an in-memory database with all
// migrations applied. This is only intended for use in tests.
func NewTestStore() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db}, nil
}
