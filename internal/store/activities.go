package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// SaveActivity inserts a completed cardio activity. Records are immutable,
// so there is no update path; inserting an existing ID is an error.
func (s *Store) SaveActivity(a *Activity) error {
	route, err := json.Marshal(a.Route)
	if err != nil {
		return fmt.Errorf("encoding route: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO activities (
			id, type, started_at, completed_at, duration_ms, distance_meters,
			average_speed_kmh, average_pace_min_per_km, route,
			paused_duration_ms, steps
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, string(a.Type),
		a.StartedAt.Format(time.RFC3339), a.CompletedAt.Format(time.RFC3339),
		a.DurationMs, a.DistanceMeters,
		a.AverageSpeedKmh, a.AveragePaceMinPerKm, string(route),
		a.PausedDurationMs, a.Steps,
	)
	return err
}

// GetActivity retrieves a cardio activity by ID
func (s *Store) GetActivity(id string) (*Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, type, started_at, completed_at, duration_ms, distance_meters,
			average_speed_kmh, average_pace_min_per_km, route,
			paused_duration_ms, steps
		FROM activities
		WHERE id = ?
	`, id)

	a, err := scanActivity(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	return a, err
}

// ListActivities returns activities newest first. limit <= 0 returns the
// whole history.
func (s *Store) ListActivities(limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = -1 // no LIMIT in SQLite
	}
	rows, err := s.db.Query(`
		SELECT id, type, started_at, completed_at, duration_ms, distance_meters,
			average_speed_kmh, average_pace_min_per_km, route,
			paused_duration_ms, steps
		FROM activities
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// ListActivitiesBetween returns activities started within [from, to),
// newest first.
func (s *Store) ListActivitiesBetween(from, to time.Time) ([]Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, type, started_at, completed_at, duration_ms, distance_meters,
			average_speed_kmh, average_pace_min_per_km, route,
			paused_duration_ms, steps
		FROM activities
		WHERE started_at >= ? AND started_at < ?
		ORDER BY started_at DESC
	`, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// CountActivities returns the total number of cardio activities
func (s *Store) CountActivities() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count)
	return count, err
}

// UnsyncedActivities returns activities not yet pushed to the backend,
// oldest first so the push replays history in order.
func (s *Store) UnsyncedActivities(limit int) ([]Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, type, started_at, completed_at, duration_ms, distance_meters,
			average_speed_kmh, average_pace_min_per_km, route,
			paused_duration_ms, steps
		FROM activities
		WHERE synced = 0
		ORDER BY started_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// MarkActivitySynced marks an activity as pushed to the backend
func (s *Store) MarkActivitySynced(id string) error {
	result, err := s.db.Exec(`UPDATE activities SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// scanActivity scans one activity via the given Scan function, shared
// between QueryRow and Query rows.
func scanActivity(scan func(...any) error) (*Activity, error) {
	var a Activity
	var activityType, startedAt, completedAt, route string

	err := scan(
		&a.ID, &activityType, &startedAt, &completedAt, &a.DurationMs,
		&a.DistanceMeters, &a.AverageSpeedKmh, &a.AveragePaceMinPerKm,
		&route, &a.PausedDurationMs, &a.Steps,
	)
	if err != nil {
		return nil, err
	}

	a.Type = ActivityType(activityType)
	if a.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
	}
	if a.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return nil, fmt.Errorf("parsing completed_at %q: %w", completedAt, err)
	}
	if err := json.Unmarshal([]byte(route), &a.Route); err != nil {
		// A corrupt route column loses the map trace, not the activity.
		log.WithFields(log.Fields{
			"activity": a.ID,
			"error":    err,
		}).Warn("discarding corrupt route data")
		a.Route = []RoutePoint{}
	}

	return &a, nil
}
