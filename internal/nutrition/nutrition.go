// Package nutrition is the diet-logging service: meals, water intake, and
// daily targets. It is thin CRUD over the store plus one daily rollup.
package nutrition

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fitlog/internal/store"
)

// ErrInvalidMeal is returned when a meal entry fails validation
var ErrInvalidMeal = errors.New("invalid meal entry")

// Meal type labels accepted by LogMeal.
var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// DefaultGoals are applied until the user sets their own.
var DefaultGoals = store.Goals{
	Calories: 2200,
	ProteinG: 120,
	CarbsG:   250,
	FatG:     70,
	WaterMl:  2500,
}

// Service wraps the store's nutrition tables.
type Service struct {
	store *store.Store

	now func() time.Time
}

func New(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// LogMeal validates and persists a meal entry, assigning it an ID and the
// current timestamp when missing.
func (s *Service) LogMeal(m store.Meal) (store.Meal, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return store.Meal{}, ErrInvalidMeal
	}
	if !mealTypes[m.MealType] {
		return store.Meal{}, ErrInvalidMeal
	}
	if m.Calories < 0 || m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 {
		return store.Meal{}, ErrInvalidMeal
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.LoggedAt.IsZero() {
		m.LoggedAt = s.now()
	}

	if err := s.store.SaveMeal(&m); err != nil {
		return store.Meal{}, err
	}

	log.WithFields(log.Fields{
		"meal":     m.Name,
		"type":     m.MealType,
		"calories": m.Calories,
	}).Debug("meal logged")

	return m, nil
}

// DeleteMeal removes a meal entry
func (s *Service) DeleteMeal(id string) error {
	return s.store.DeleteMeal(id)
}

// LogWater records a water intake entry. Non-positive amounts are ignored.
func (s *Service) LogWater(amountMl int) error {
	if amountMl <= 0 {
		return nil
	}
	return s.store.AddWater(&store.WaterEntry{
		ID:       uuid.NewString(),
		AmountMl: amountMl,
		LoggedAt: s.now(),
	})
}

// Goals returns the stored daily targets, falling back to defaults when
// none are set (or the stored document is corrupt).
func (s *Service) Goals() (store.Goals, error) {
	var goals store.Goals
	ok, err := s.store.GetState(store.StateKeyGoals, &goals)
	if err != nil {
		return store.Goals{}, err
	}
	if !ok {
		return DefaultGoals, nil
	}
	return goals, nil
}

// SetGoals stores the daily targets
func (s *Service) SetGoals(goals store.Goals) error {
	return s.store.SetState(store.StateKeyGoals, goals)
}

// DaySummary is one day's intake against its targets.
type DaySummary struct {
	Date     time.Time
	Meals    []store.Meal
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	WaterMl  int
	Goals    store.Goals
}

// Day aggregates intake for the calendar day containing the given instant,
// in that instant's location.
func (s *Service) Day(at time.Time) (DaySummary, error) {
	from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	to := from.AddDate(0, 0, 1)

	meals, err := s.store.ListMealsBetween(from, to)
	if err != nil {
		return DaySummary{}, err
	}
	water, err := s.store.WaterBetween(from, to)
	if err != nil {
		return DaySummary{}, err
	}
	goals, err := s.Goals()
	if err != nil {
		return DaySummary{}, err
	}

	summary := DaySummary{Date: from, Meals: meals, WaterMl: water, Goals: goals}
	for _, m := range meals {
		summary.Calories += m.Calories
		summary.ProteinG += m.ProteinG
		summary.CarbsG += m.CarbsG
		summary.FatG += m.FatG
	}
	return summary, nil
}
