package store

import (
	"errors"
	"testing"
	"time"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewTestStore()
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleActivity(id string, startedAt time.Time) *Activity {
	return &Activity{
		ID:                  id,
		Type:                ActivityRunning,
		StartedAt:           startedAt,
		CompletedAt:         startedAt.Add(30 * time.Minute),
		DurationMs:          1700000,
		DistanceMeters:      5000,
		AverageSpeedKmh:     10.6,
		AveragePaceMinPerKm: 5.66,
		Route: []RoutePoint{
			{Latitude: 52.52, Longitude: 13.405, TimestampMs: startedAt.UnixMilli(), AccuracyMeters: floatPtr(8)},
			{Latitude: 52.521, Longitude: 13.406, TimestampMs: startedAt.Add(time.Minute).UnixMilli(), SpeedMetersPerSec: floatPtr(3.1)},
		},
		PausedDurationMs: 100000,
		Steps:            4200,
	}
}

func TestActivityRoundTrip(t *testing.T) {
	s := newTestStore(t)
	started := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)

	want := sampleActivity("a1", started)
	if err := s.SaveActivity(want); err != nil {
		t.Fatalf("SaveActivity: %v", err)
	}

	got, err := s.GetActivity("a1")
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if got.Type != ActivityRunning || got.DistanceMeters != 5000 || got.PausedDurationMs != 100000 {
		t.Errorf("activity fields = %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if len(got.Route) != 2 {
		t.Fatalf("route length = %d, want 2", len(got.Route))
	}
	if got.Route[0].AccuracyMeters == nil || *got.Route[0].AccuracyMeters != 8 {
		t.Errorf("route accuracy not preserved: %+v", got.Route[0])
	}
	if got.Route[1].SpeedMetersPerSec == nil || *got.Route[1].SpeedMetersPerSec != 3.1 {
		t.Errorf("route speed not preserved: %+v", got.Route[1])
	}

	if _, err := s.GetActivity("missing"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("GetActivity(missing) = %v, want ErrActivityNotFound", err)
	}
}

func TestListActivitiesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	for i, id := range []string{"a1", "a2", "a3"} {
		if err := s.SaveActivity(sampleActivity(id, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("SaveActivity(%s): %v", id, err)
		}
	}

	list, err := s.ListActivities(0)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d activities, want 3", len(list))
	}
	// Newest completion is at the head, like a prepend.
	for i, want := range []string{"a3", "a2", "a1"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}

	limited, err := s.ListActivities(2)
	if err != nil {
		t.Fatalf("ListActivities(2): %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "a3" {
		t.Errorf("limited = %+v", limited)
	}

	count, err := s.CountActivities()
	if err != nil || count != 3 {
		t.Errorf("CountActivities = %d, %v", count, err)
	}
}

func TestActivitySyncFlags(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	s.SaveActivity(sampleActivity("a1", base))
	s.SaveActivity(sampleActivity("a2", base.AddDate(0, 0, 1)))

	unsynced, err := s.UnsyncedActivities(10)
	if err != nil {
		t.Fatalf("UnsyncedActivities: %v", err)
	}
	// Oldest first, so the backend replays history in order.
	if len(unsynced) != 2 || unsynced[0].ID != "a1" {
		t.Fatalf("unsynced = %+v", unsynced)
	}

	if err := s.MarkActivitySynced("a1"); err != nil {
		t.Fatalf("MarkActivitySynced: %v", err)
	}
	unsynced, _ = s.UnsyncedActivities(10)
	if len(unsynced) != 1 || unsynced[0].ID != "a2" {
		t.Errorf("unsynced after mark = %+v", unsynced)
	}

	if err := s.MarkActivitySynced("missing"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("MarkActivitySynced(missing) = %v, want ErrActivityNotFound", err)
	}
}

func TestWorkoutRoundTrip(t *testing.T) {
	s := newTestStore(t)
	started := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	want := &Workout{
		ID:          "w1",
		RoutineID:   "r1",
		RoutineName: "Push Day",
		Exercises: []WorkoutExercise{
			{Name: "Bench Press", Sets: []ExerciseSet{
				{Reps: intPtr(5), Weight: floatPtr(80), Completed: true},
				{Reps: intPtr(3), Weight: floatPtr(82.5), Completed: true},
			}},
			{Name: "Plank", MuscleGroup: "core", Sets: []ExerciseSet{
				{TimeSeconds: intPtr(60), Completed: true},
			}},
		},
		StartedAt:   started,
		CompletedAt: started.Add(time.Hour),
		TotalSets:   3,
		TotalReps:   8,
	}
	if err := s.SaveWorkout(want); err != nil {
		t.Fatalf("SaveWorkout: %v", err)
	}

	got, err := s.GetWorkout("w1")
	if err != nil {
		t.Fatalf("GetWorkout: %v", err)
	}
	if got.RoutineName != "Push Day" || got.TotalSets != 3 || got.TotalReps != 8 {
		t.Errorf("workout fields = %+v", got)
	}
	if len(got.Exercises) != 2 || len(got.Exercises[0].Sets) != 2 {
		t.Fatalf("exercises not preserved: %+v", got.Exercises)
	}
	bench := got.Exercises[0].Sets[1]
	if bench.Weight == nil || *bench.Weight != 82.5 || bench.Reps == nil || *bench.Reps != 3 {
		t.Errorf("set not preserved: %+v", bench)
	}
	plank := got.Exercises[1].Sets[0]
	if plank.TimeSeconds == nil || *plank.TimeSeconds != 60 || plank.Reps != nil {
		t.Errorf("timed set not preserved: %+v", plank)
	}

	if _, err := s.GetWorkout("missing"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("GetWorkout(missing) = %v, want ErrWorkoutNotFound", err)
	}
}

func TestListWorkoutsBetween(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	for i, id := range []string{"w1", "w2", "w3"} {
		day := base.AddDate(0, 0, i*7)
		s.SaveWorkout(&Workout{
			ID: id, RoutineID: "r1", RoutineName: "Push Day",
			Exercises: []WorkoutExercise{}, StartedAt: day, CompletedAt: day.Add(time.Hour),
		})
	}

	// [w1, w2) boundary: from inclusive, to exclusive.
	got, err := s.ListWorkoutsBetween(base, base.AddDate(0, 0, 7).Add(time.Hour))
	if err != nil {
		t.Fatalf("ListWorkoutsBetween: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w1" {
		t.Errorf("got %+v, want only w1", got)
	}

	all, _ := s.ListWorkouts(0)
	if len(all) != 3 || all[0].ID != "w3" {
		t.Errorf("ListWorkouts = %+v, want newest first", all)
	}
}

func TestRoutineCRUD(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	r := &Routine{
		ID:   "r1",
		Name: "Push Day",
		Exercises: []RoutineExercise{
			{Name: "Bench Press", Sets: 3, TargetReps: intPtr(8), TargetWeight: floatPtr(60)},
		},
		CreatedAt: created,
	}
	if err := s.SaveRoutine(r); err != nil {
		t.Fatalf("SaveRoutine: %v", err)
	}

	r.Name = "Push Day v2"
	if err := s.SaveRoutine(r); err != nil {
		t.Fatalf("SaveRoutine update: %v", err)
	}

	got, err := s.GetRoutine("r1")
	if err != nil {
		t.Fatalf("GetRoutine: %v", err)
	}
	if got.Name != "Push Day v2" {
		t.Errorf("Name = %q, want updated name", got.Name)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].TargetWeight == nil || *got.Exercises[0].TargetWeight != 60 {
		t.Errorf("exercises = %+v", got.Exercises)
	}

	list, _ := s.ListRoutines()
	if len(list) != 1 {
		t.Errorf("ListRoutines = %d entries, want 1", len(list))
	}

	if err := s.DeleteRoutine("r1"); err != nil {
		t.Fatalf("DeleteRoutine: %v", err)
	}
	if _, err := s.GetRoutine("r1"); !errors.Is(err, ErrRoutineNotFound) {
		t.Errorf("GetRoutine after delete = %v, want ErrRoutineNotFound", err)
	}
	if err := s.DeleteRoutine("r1"); !errors.Is(err, ErrRoutineNotFound) {
		t.Errorf("second DeleteRoutine = %v, want ErrRoutineNotFound", err)
	}
}

func TestMealsAndWater(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	meals := []*Meal{
		{ID: "m1", Name: "Oatmeal", MealType: "breakfast", Calories: 350, ProteinG: 12, CarbsG: 60, FatG: 6, LoggedAt: day.Add(8 * time.Hour)},
		{ID: "m2", Name: "Chicken Bowl", MealType: "lunch", Calories: 650, ProteinG: 45, CarbsG: 70, FatG: 18, LoggedAt: day.Add(13 * time.Hour)},
		{ID: "m3", Name: "Late Snack", MealType: "snack", Calories: 200, ProteinG: 5, CarbsG: 25, FatG: 9, LoggedAt: day.Add(25 * time.Hour)}, // next day
	}
	for _, m := range meals {
		if err := s.SaveMeal(m); err != nil {
			t.Fatalf("SaveMeal(%s): %v", m.ID, err)
		}
	}

	got, err := s.ListMealsBetween(day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListMealsBetween: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Errorf("meals = %+v, want m1 then m2", got)
	}

	if err := s.DeleteMeal("m1"); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}
	if err := s.DeleteMeal("m1"); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("second DeleteMeal = %v, want ErrMealNotFound", err)
	}

	s.AddWater(&WaterEntry{ID: "h1", AmountMl: 250, LoggedAt: day.Add(9 * time.Hour)})
	s.AddWater(&WaterEntry{ID: "h2", AmountMl: 500, LoggedAt: day.Add(15 * time.Hour)})
	s.AddWater(&WaterEntry{ID: "h3", AmountMl: 300, LoggedAt: day.Add(26 * time.Hour)})

	total, err := s.WaterBetween(day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("WaterBetween: %v", err)
	}
	if total != 750 {
		t.Errorf("WaterBetween = %d, want 750", total)
	}

	empty, err := s.WaterBetween(day.AddDate(0, -1, 0), day)
	if err != nil || empty != 0 {
		t.Errorf("WaterBetween(empty window) = %d, %v", empty, err)
	}
}

func TestAppState(t *testing.T) {
	s := newTestStore(t)

	goals := Goals{Calories: 2400, ProteinG: 150, WaterMl: 2500}
	if err := s.SetState(StateKeyGoals, goals); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	var got Goals
	ok, err := s.GetState(StateKeyGoals, &got)
	if err != nil || !ok {
		t.Fatalf("GetState = %v, %v", ok, err)
	}
	if got.Calories != 2400 || got.WaterMl != 2500 {
		t.Errorf("goals = %+v", got)
	}

	ok, err = s.GetState("missing", &got)
	if err != nil || ok {
		t.Errorf("GetState(missing) = %v, %v, want absent", ok, err)
	}

	if err := s.ClearState(StateKeyGoals); err != nil {
		t.Fatalf("ClearState: %v", err)
	}
	ok, _ = s.GetState(StateKeyGoals, &got)
	if ok {
		t.Error("cleared key still present")
	}
	if err := s.ClearState(StateKeyGoals); err != nil {
		t.Errorf("clearing an absent key: %v", err)
	}
}

func TestAppStateCorruptPayloadClearedNotPropagated(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.db.Exec(
		`INSERT INTO app_state (key, value) VALUES (?, ?)`,
		StateKeyGoals, "{not json",
	); err != nil {
		t.Fatalf("seeding corrupt row: %v", err)
	}

	var got Goals
	ok, err := s.GetState(StateKeyGoals, &got)
	if err != nil {
		t.Fatalf("GetState on corrupt payload returned error: %v", err)
	}
	if ok {
		t.Error("corrupt payload reported as present")
	}

	// The key must have been cleared, so a re-read is a clean absence.
	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM app_state WHERE key = ?`, StateKeyGoals).Scan(&count)
	if count != 0 {
		t.Error("corrupt key was not cleared")
	}
}
