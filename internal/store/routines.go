package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SaveRoutine inserts or updates a workout plan
func (s *Store) SaveRoutine(r *Routine) error {
	exercises, err := json.Marshal(r.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO routines (id, name, exercises, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			exercises = excluded.exercises
	`, r.ID, r.Name, string(exercises), r.CreatedAt.Format(time.RFC3339))
	return err
}

// GetRoutine retrieves a routine by ID
func (s *Store) GetRoutine(id string) (*Routine, error) {
	row := s.db.QueryRow(`
		SELECT id, name, exercises, created_at FROM routines WHERE id = ?
	`, id)

	r, err := scanRoutine(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoutineNotFound
	}
	return r, err
}

// ListRoutines returns all routines, oldest first
func (s *Store) ListRoutines() ([]Routine, error) {
	rows, err := s.db.Query(`
		SELECT id, name, exercises, created_at
		FROM routines
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []Routine
	for rows.Next() {
		r, err := scanRoutine(rows.Scan)
		if err != nil {
			return nil, err
		}
		routines = append(routines, *r)
	}
	return routines, rows.Err()
}

// DeleteRoutine removes a routine. Workout history keeps its own copy of
// the routine name, so deletion never orphans history rows.
func (s *Store) DeleteRoutine(id string) error {
	result, err := s.db.Exec(`DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func scanRoutine(scan func(...any) error) (*Routine, error) {
	var r Routine
	var exercises, createdAt string

	if err := scan(&r.ID, &r.Name, &exercises, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	if err := json.Unmarshal([]byte(exercises), &r.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}
	return &r, nil
}
