package analysis

import (
	"testing"
	"time"

	"fitlog/internal/store"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

// set builds a completed weighted set.
func set(weight float64, reps int) store.ExerciseSet {
	return store.ExerciseSet{Weight: floatPtr(weight), Reps: intPtr(reps), Completed: true}
}

func workoutOn(day time.Time, exercises ...store.WorkoutExercise) store.Workout {
	return store.Workout{
		ID:          day.Format("20060102"),
		Exercises:   exercises,
		StartedAt:   day,
		CompletedAt: day.Add(time.Hour),
	}
}

func TestPersonalBestsRanksByVolume(t *testing.T) {
	day := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	history := []store.Workout{
		workoutOn(day, store.WorkoutExercise{
			Name: "Bench Press",
			Sets: []store.ExerciseSet{
				set(80, 5),   // volume 400
				set(82.5, 3), // volume 247.5, heavier but lower volume
			},
		}),
	}

	bests := PersonalBests(history)
	if len(bests) != 1 {
		t.Fatalf("got %d bests, want 1", len(bests))
	}
	pb := bests[0]
	if pb.Weight != 80 || pb.Reps != 5 || pb.Volume != 400 {
		t.Errorf("best = %.1fkg x %d (volume %.1f), want 80kg x 5 (volume 400)", pb.Weight, pb.Reps, pb.Volume)
	}
}

func TestPersonalBestsTieBreaks(t *testing.T) {
	older := time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		history    []store.Workout
		wantWeight float64
		wantReps   int
		wantDate   time.Time
	}{
		{
			name: "equal volume goes to higher weight",
			history: []store.Workout{
				workoutOn(older, store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{
					set(100, 4), // 400
					set(80, 5),  // 400
				}}),
			},
			wantWeight: 100,
			wantReps:   4,
			wantDate:   older.Add(time.Hour),
		},
		{
			name: "equal volume and weight goes to most recent",
			history: []store.Workout{
				workoutOn(older, store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(100, 4)}}),
				workoutOn(newer, store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(100, 4)}}),
			},
			wantWeight: 100,
			wantReps:   4,
			wantDate:   newer.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bests := PersonalBests(tt.history)
			if len(bests) != 1 {
				t.Fatalf("got %d bests, want 1", len(bests))
			}
			pb := bests[0]
			if pb.Weight != tt.wantWeight || pb.Reps != tt.wantReps || !pb.Date.Equal(tt.wantDate) {
				t.Errorf("best = %.1fkg x %d at %v, want %.1fkg x %d at %v",
					pb.Weight, pb.Reps, pb.Date, tt.wantWeight, tt.wantReps, tt.wantDate)
			}
		})
	}
}

func TestPersonalBestsFilters(t *testing.T) {
	day := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	history := []store.Workout{
		workoutOn(day,
			store.WorkoutExercise{Name: "Bench Press", Sets: []store.ExerciseSet{
				{Weight: floatPtr(120), Reps: intPtr(1), Completed: false}, // not completed
				{Weight: floatPtr(60), Completed: true},                    // no reps
				{Reps: intPtr(10), Completed: true},                        // no weight
			}},
			store.WorkoutExercise{Name: "Plank", Sets: []store.ExerciseSet{
				{TimeSeconds: intPtr(60), Completed: true}, // timed, never a PB
			}},
			store.WorkoutExercise{Name: "Deadlift", Sets: []store.ExerciseSet{set(140, 3)}},
		),
	}

	bests := PersonalBests(history)
	if len(bests) != 1 || bests[0].Exercise != "Deadlift" {
		t.Fatalf("bests = %+v, want only Deadlift", bests)
	}
}

func TestPersonalBestsSortedDescending(t *testing.T) {
	day := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	history := []store.Workout{
		workoutOn(day,
			store.WorkoutExercise{Name: "Curl", Sets: []store.ExerciseSet{set(20, 10)}},     // 200
			store.WorkoutExercise{Name: "Deadlift", Sets: []store.ExerciseSet{set(140, 5)}}, // 700
			store.WorkoutExercise{Name: "Squat", Sets: []store.ExerciseSet{set(100, 5)}},    // 500
		),
	}

	bests := PersonalBests(history)
	want := []string{"Deadlift", "Squat", "Curl"}
	if len(bests) != len(want) {
		t.Fatalf("got %d bests, want %d", len(bests), len(want))
	}
	for i, name := range want {
		if bests[i].Exercise != name {
			t.Errorf("bests[%d] = %s, want %s", i, bests[i].Exercise, name)
		}
	}
}

func TestPersonalBestsEmptyHistory(t *testing.T) {
	if got := PersonalBests(nil); len(got) != 0 {
		t.Errorf("empty history produced %d bests", len(got))
	}
}
