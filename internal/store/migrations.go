package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Completed cardio activities. The route is an append-only list of
		// accepted GPS fixes, stored as a JSON array.
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			started_at TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			distance_meters REAL NOT NULL,
			average_speed_kmh REAL NOT NULL,
			average_pace_min_per_km REAL NOT NULL,
			route TEXT NOT NULL,
			paused_duration_ms INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			synced INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_started_at ON activities(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type)`,

		// Completed strength workouts. Exercises with their sets are stored
		// as a JSON array; analytics deserialize and fold over them.
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			routine_id TEXT NOT NULL,
			routine_name TEXT NOT NULL,
			exercises TEXT NOT NULL,
			started_at TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			total_sets INTEGER NOT NULL,
			total_reps INTEGER NOT NULL,
			synced INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_completed_at ON workouts(completed_at)`,

		// Reusable workout plans.
		`CREATE TABLE IF NOT EXISTS routines (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			exercises TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		// Nutrition log.
		`CREATE TABLE IF NOT EXISTS meals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			meal_type TEXT NOT NULL,
			calories REAL NOT NULL,
			protein_g REAL NOT NULL,
			carbs_g REAL NOT NULL,
			fat_g REAL NOT NULL,
			logged_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_meals_logged_at ON meals(logged_at)`,

		`CREATE TABLE IF NOT EXISTS water_intake (
			id TEXT PRIMARY KEY,
			amount_ml INTEGER NOT NULL,
			logged_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_water_logged_at ON water_intake(logged_at)`,

		// App State (key-value JSON documents: goals, session checkpoints,
		// sync cursors)
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
