package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveMeal inserts or updates a meal entry
func (s *Store) SaveMeal(m *Meal) error {
	_, err := s.db.Exec(`
		INSERT INTO meals (id, name, meal_type, calories, protein_g, carbs_g, fat_g, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			meal_type = excluded.meal_type,
			calories = excluded.calories,
			protein_g = excluded.protein_g,
			carbs_g = excluded.carbs_g,
			fat_g = excluded.fat_g,
			logged_at = excluded.logged_at
	`, m.ID, m.Name, m.MealType, m.Calories, m.ProteinG, m.CarbsG, m.FatG,
		m.LoggedAt.Format(time.RFC3339))
	return err
}

// ListMealsBetween returns meals logged within [from, to), oldest first
func (s *Store) ListMealsBetween(from, to time.Time) ([]Meal, error) {
	rows, err := s.db.Query(`
		SELECT id, name, meal_type, calories, protein_g, carbs_g, fat_g, logged_at
		FROM meals
		WHERE logged_at >= ? AND logged_at < ?
		ORDER BY logged_at ASC
	`, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []Meal
	for rows.Next() {
		var m Meal
		var loggedAt string
		if err := rows.Scan(&m.ID, &m.Name, &m.MealType, &m.Calories,
			&m.ProteinG, &m.CarbsG, &m.FatG, &loggedAt); err != nil {
			return nil, err
		}
		if m.LoggedAt, err = time.Parse(time.RFC3339, loggedAt); err != nil {
			return nil, fmt.Errorf("parsing logged_at %q: %w", loggedAt, err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// DeleteMeal removes a meal entry
func (s *Store) DeleteMeal(id string) error {
	result, err := s.db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMealNotFound
	}
	return nil
}

// AddWater inserts a water intake entry
func (s *Store) AddWater(w *WaterEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO water_intake (id, amount_ml, logged_at)
		VALUES (?, ?, ?)
	`, w.ID, w.AmountMl, w.LoggedAt.Format(time.RFC3339))
	return err
}

// WaterBetween returns the total milliliters logged within [from, to)
func (s *Store) WaterBetween(from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(amount_ml) FROM water_intake
		WHERE logged_at >= ? AND logged_at < ?
	`, from.Format(time.RFC3339), to.Format(time.RFC3339)).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
