package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// SaveWorkout inserts a completed workout. Records are immutable.
func (s *Store) SaveWorkout(w *Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO workouts (
			id, routine_id, routine_name, exercises,
			started_at, completed_at, total_sets, total_reps
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		w.ID, w.RoutineID, w.RoutineName, string(exercises),
		w.StartedAt.Format(time.RFC3339), w.CompletedAt.Format(time.RFC3339),
		w.TotalSets, w.TotalReps,
	)
	return err
}

// GetWorkout retrieves a workout by ID
func (s *Store) GetWorkout(id string) (*Workout, error) {
	row := s.db.QueryRow(`
		SELECT id, routine_id, routine_name, exercises,
			started_at, completed_at, total_sets, total_reps
		FROM workouts
		WHERE id = ?
	`, id)

	w, err := scanWorkout(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	return w, err
}

// ListWorkouts returns workouts newest first. limit <= 0 returns the whole
// history.
func (s *Store) ListWorkouts(limit int) ([]Workout, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT id, routine_id, routine_name, exercises,
			started_at, completed_at, total_sets, total_reps
		FROM workouts
		ORDER BY completed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows.Scan)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// ListWorkoutsBetween returns workouts completed within [from, to), newest
// first. Used to split history into adjacent periods for strength trends.
func (s *Store) ListWorkoutsBetween(from, to time.Time) ([]Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, routine_id, routine_name, exercises,
			started_at, completed_at, total_sets, total_reps
		FROM workouts
		WHERE completed_at >= ? AND completed_at < ?
		ORDER BY completed_at DESC
	`, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows.Scan)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// CountWorkouts returns the total number of workouts
func (s *Store) CountWorkouts() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&count)
	return count, err
}

// UnsyncedWorkouts returns workouts not yet pushed to the backend, oldest
// first.
func (s *Store) UnsyncedWorkouts(limit int) ([]Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, routine_id, routine_name, exercises,
			started_at, completed_at, total_sets, total_reps
		FROM workouts
		WHERE synced = 0
		ORDER BY completed_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows.Scan)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// MarkWorkoutSynced marks a workout as pushed to the backend
func (s *Store) MarkWorkoutSynced(id string) error {
	result, err := s.db.Exec(`UPDATE workouts SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func scanWorkout(scan func(...any) error) (*Workout, error) {
	var w Workout
	var exercises, startedAt, completedAt string

	err := scan(
		&w.ID, &w.RoutineID, &w.RoutineName, &exercises,
		&startedAt, &completedAt, &w.TotalSets, &w.TotalReps,
	)
	if err != nil {
		return nil, err
	}

	if w.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
	}
	if w.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return nil, fmt.Errorf("parsing completed_at %q: %w", completedAt, err)
	}
	if err := json.Unmarshal([]byte(exercises), &w.Exercises); err != nil {
		// A corrupt exercises column degrades to the stored totals only.
		log.WithFields(log.Fields{
			"workout": w.ID,
			"error":   err,
		}).Warn("discarding corrupt exercise data")
		w.Exercises = []WorkoutExercise{}
	}

	return &w, nil
}
