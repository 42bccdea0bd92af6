package analysis

import (
	"math"
	"testing"
	"time"

	"fitlog/internal/store"
)

func TestStrengthProgress(t *testing.T) {
	prevDay := time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC)
	curDay := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)

	previous := []store.Workout{
		workoutOn(prevDay,
			store.WorkoutExercise{Name: "Bench Press", Sets: []store.ExerciseSet{set(90, 5), set(85, 8)}},
			store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(120, 5)}},
			store.WorkoutExercise{Name: "Overhead Press", Sets: []store.ExerciseSet{set(50, 5)}},
		),
	}
	current := []store.Workout{
		workoutOn(curDay,
			store.WorkoutExercise{Name: "Bench Press", Sets: []store.ExerciseSet{set(100, 3)}},
			store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(120, 5)}},
			store.WorkoutExercise{Name: "Deadlift", Sets: []store.ExerciseSet{set(140, 5)}},
			// Overhead Press dropped this period.
		),
	}

	progress := StrengthProgress(current, previous)
	byName := map[string]ExerciseProgress{}
	for _, p := range progress {
		byName[p.Exercise] = p
	}

	bench, ok := byName["Bench Press"]
	if !ok {
		t.Fatal("Bench Press missing from progress")
	}
	if bench.CurrentMax != 100 || bench.PreviousMax != 90 || bench.Change != 10 {
		t.Errorf("bench = %+v", bench)
	}
	if math.Abs(bench.ChangePercent-11.1) > 0.1 {
		t.Errorf("bench ChangePercent = %v, want ~11.1", bench.ChangePercent)
	}
	if bench.Trend != TrendUp {
		t.Errorf("bench Trend = %s, want up", bench.Trend)
	}

	squat := byName["Squat"]
	if squat.Change != 0 || squat.Trend != TrendStable {
		t.Errorf("squat = %+v, want stable", squat)
	}

	// New this period: no baseline, so no percent.
	deadlift := byName["Deadlift"]
	if deadlift.PreviousMax != 0 || deadlift.ChangePercent != 0 || deadlift.Trend != TrendUp {
		t.Errorf("deadlift = %+v", deadlift)
	}

	// Abandoned exercises are dropped.
	if _, ok := byName["Overhead Press"]; ok {
		t.Error("Overhead Press should be dropped (no current max)")
	}
}

func TestStrengthProgressDownTrend(t *testing.T) {
	prevDay := time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC)
	curDay := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)

	previous := []store.Workout{
		workoutOn(prevDay, store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(120, 5)}}),
	}
	current := []store.Workout{
		workoutOn(curDay, store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(110, 5)}}),
	}

	progress := StrengthProgress(current, previous)
	if len(progress) != 1 {
		t.Fatalf("got %d entries, want 1", len(progress))
	}
	p := progress[0]
	if p.Change != -10 || p.Trend != TrendDown {
		t.Errorf("progress = %+v, want change -10 down", p)
	}
}

func TestStrengthProgressIgnoresIncompleteAndUnweighted(t *testing.T) {
	day := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)
	current := []store.Workout{
		workoutOn(day, store.WorkoutExercise{Name: "Bench Press", Sets: []store.ExerciseSet{
			{Weight: floatPtr(200), Reps: intPtr(1), Completed: false},
			{Reps: intPtr(20), Completed: true},
		}}),
	}

	if progress := StrengthProgress(current, nil); len(progress) != 0 {
		t.Errorf("got %d entries, want 0", len(progress))
	}
}

func TestStrengthProgressEmpty(t *testing.T) {
	if got := StrengthProgress(nil, nil); len(got) != 0 {
		t.Errorf("empty input produced %d entries", len(got))
	}
}

func TestTopExercises(t *testing.T) {
	day := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	history := []store.Workout{
		workoutOn(day,
			store.WorkoutExercise{Name: "Squat"},
			store.WorkoutExercise{Name: "Bench Press"},
		),
		workoutOn(day.AddDate(0, 0, 2),
			store.WorkoutExercise{Name: "Squat"},
			store.WorkoutExercise{Name: "Deadlift"},
		),
		workoutOn(day.AddDate(0, 0, 4),
			store.WorkoutExercise{Name: "Squat"},
			store.WorkoutExercise{Name: "Bench Press"},
		),
	}

	top := TopExercises(history, 2)
	if len(top) != 2 {
		t.Fatalf("got %d entries, want 2", len(top))
	}
	if top[0].Exercise != "Squat" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want Squat x3", top[0])
	}
	if top[1].Exercise != "Bench Press" || top[1].Count != 2 {
		t.Errorf("top[1] = %+v, want Bench Press x2", top[1])
	}

	if all := TopExercises(history, 10); len(all) != 3 {
		t.Errorf("limit beyond size returned %d entries, want 3", len(all))
	}
	if none := TopExercises(nil, 5); len(none) != 0 {
		t.Errorf("empty history returned %d entries", len(none))
	}
}
