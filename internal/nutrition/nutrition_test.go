package nutrition

import (
	"errors"
	"testing"
	"time"

	"fitlog/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewTestStore()
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func TestLogMealValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		meal    store.Meal
		wantErr bool
	}{
		{"valid meal", store.Meal{Name: "Oatmeal", MealType: "breakfast", Calories: 350}, false},
		{"blank name", store.Meal{Name: "   ", MealType: "lunch"}, true},
		{"unknown meal type", store.Meal{Name: "Oatmeal", MealType: "brunch"}, true},
		{"negative calories", store.Meal{Name: "Oatmeal", MealType: "snack", Calories: -10}, true},
		{"negative protein", store.Meal{Name: "Oatmeal", MealType: "snack", ProteinG: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.LogMeal(tt.meal)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMeal) {
					t.Errorf("LogMeal = %v, want ErrInvalidMeal", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LogMeal: %v", err)
			}
			if got.ID == "" {
				t.Error("meal should be assigned an ID")
			}
			if got.LoggedAt.IsZero() {
				t.Error("meal should be assigned a timestamp")
			}
		})
	}
}

func TestGoalsDefaultUntilSet(t *testing.T) {
	svc := newTestService(t)

	goals, err := svc.Goals()
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if goals != DefaultGoals {
		t.Errorf("goals = %+v, want defaults", goals)
	}

	custom := store.Goals{Calories: 2800, ProteinG: 160, CarbsG: 300, FatG: 80, WaterMl: 3000}
	if err := svc.SetGoals(custom); err != nil {
		t.Fatalf("SetGoals: %v", err)
	}
	goals, err = svc.Goals()
	if err != nil {
		t.Fatalf("Goals after set: %v", err)
	}
	if goals != custom {
		t.Errorf("goals = %+v, want %+v", goals, custom)
	}
}

func TestDaySummary(t *testing.T) {
	svc := newTestService(t)
	day := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	for _, m := range []store.Meal{
		{Name: "Oatmeal", MealType: "breakfast", Calories: 350, ProteinG: 12, CarbsG: 60, FatG: 6, LoggedAt: day.Add(-6 * time.Hour)},
		{Name: "Chicken Bowl", MealType: "lunch", Calories: 650, ProteinG: 45, CarbsG: 70, FatG: 18, LoggedAt: day.Add(-time.Hour)},
		{Name: "Yesterday Dinner", MealType: "dinner", Calories: 700, LoggedAt: day.AddDate(0, 0, -1)},
	} {
		if _, err := svc.LogMeal(m); err != nil {
			t.Fatalf("LogMeal(%s): %v", m.Name, err)
		}
	}

	if err := svc.LogWater(500); err != nil {
		t.Fatalf("LogWater: %v", err)
	}
	if err := svc.LogWater(250); err != nil {
		t.Fatalf("LogWater: %v", err)
	}
	// Ignored, not an error.
	if err := svc.LogWater(0); err != nil {
		t.Fatalf("LogWater(0): %v", err)
	}

	summary, err := svc.Day(day)
	if err != nil {
		t.Fatalf("Day: %v", err)
	}

	if len(summary.Meals) != 2 {
		t.Fatalf("got %d meals, want 2 (yesterday excluded)", len(summary.Meals))
	}
	if summary.Calories != 1000 {
		t.Errorf("Calories = %v, want 1000", summary.Calories)
	}
	if summary.ProteinG != 57 || summary.CarbsG != 130 || summary.FatG != 24 {
		t.Errorf("macros = %v/%v/%v", summary.ProteinG, summary.CarbsG, summary.FatG)
	}
	if summary.WaterMl != 750 {
		t.Errorf("WaterMl = %d, want 750", summary.WaterMl)
	}
	if summary.Goals != DefaultGoals {
		t.Errorf("Goals = %+v, want defaults", summary.Goals)
	}
}

func TestDaySummaryEmptyDay(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.Day(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(summary.Meals) != 0 || summary.Calories != 0 || summary.WaterMl != 0 {
		t.Errorf("empty day summary = %+v", summary)
	}
}
