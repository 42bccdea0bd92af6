package analysis

import (
	"testing"
	"time"

	"fitlog/internal/store"
)

func TestInferMuscleGroup(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		tag      string
		want     string
	}{
		// "press" without a shoulder phrase classifies as chest. Regression
		// guard for the press keyword appearing in both chest and shoulder
		// rules.
		{"incline press is chest", "Incline Dumbbell Press", "", GroupChest},
		{"bench press is chest", "Bench Press", "", GroupChest},
		{"shoulder press phrase wins", "Shoulder Press", "", GroupShoulders},
		{"overhead press phrase wins", "Overhead Press", "", GroupShoulders},
		{"military press phrase wins", "Seated Military Press", "", GroupShoulders},
		{"arnold press phrase wins", "Arnold Press", "", GroupShoulders},

		{"explicit tag wins", "Bench Press", "Back", GroupBack},
		{"row is back", "Barbell Row", "", GroupBack},
		{"pulldown is back", "Lat Pulldown", "", GroupBack},
		{"deadlift is back", "Romanian Deadlift", "", GroupBack},
		{"lateral raise is shoulders", "Cable Lateral Raise", "", GroupShoulders},
		{"curl is arms", "Hammer Curl", "", GroupArms},
		{"tricep is arms", "Tricep Pushdown", "", GroupArms},
		{"back squat matches back keyword first", "Back Squat", "", GroupBack},
		{"front squat is legs", "Front Squat", "", GroupLegs},
		{"lunge is legs", "Walking Lunge", "", GroupLegs},
		{"plank is core", "Side Plank", "", GroupCore},
		{"crunch is core", "Cable Crunch", "", GroupCore},
		{"hip thrust is glutes", "Barbell Hip Thrust", "", GroupGlutes},
		{"calf raise is calves", "Standing Calf Raise", "", GroupCalves},
		{"unknown is other", "Farmer Carry", "", GroupOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferMuscleGroup(tt.exercise, tt.tag); got != tt.want {
				t.Errorf("InferMuscleGroup(%q, %q) = %q, want %q", tt.exercise, tt.tag, got, tt.want)
			}
		})
	}
}

func TestMuscleGroupStatsAlwaysHasCanonicalGroups(t *testing.T) {
	stats := MuscleGroupStats(nil)
	if len(stats) != len(CanonicalGroups) {
		t.Fatalf("got %d groups, want %d", len(stats), len(CanonicalGroups))
	}
	for i, g := range CanonicalGroups {
		if stats[i].Group != g {
			t.Errorf("stats[%d] = %s, want %s", i, stats[i].Group, g)
		}
		if stats[i].TotalSets != 0 || stats[i].TotalVolume != 0 || stats[i].Frequency != 0 {
			t.Errorf("unworked group %s has non-zero stats: %+v", g, stats[i])
		}
	}
}

func TestMuscleGroupStatsAggregation(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

	history := []store.Workout{
		workoutOn(day1, store.WorkoutExercise{
			Name: "Bench Press",
			Sets: []store.ExerciseSet{
				set(80, 5), // 400
				set(80, 5), // 400
				{Weight: floatPtr(85), Reps: intPtr(3), Completed: false}, // skipped
			},
		}),
		workoutOn(day2,
			store.WorkoutExercise{Name: "Incline Dumbbell Press", Sets: []store.ExerciseSet{set(30, 10)}}, // 300
			store.WorkoutExercise{Name: "Barbell Row", Sets: []store.ExerciseSet{set(70, 8)}},             // 560
		),
	}

	stats := MuscleGroupStats(history)
	byGroup := map[string]GroupStats{}
	for _, s := range stats {
		byGroup[s.Group] = s
	}

	chest := byGroup[GroupChest]
	if chest.TotalSets != 3 {
		t.Errorf("chest TotalSets = %d, want 3", chest.TotalSets)
	}
	if chest.TotalVolume != 1100 {
		t.Errorf("chest TotalVolume = %v, want 1100", chest.TotalVolume)
	}
	if chest.ExerciseCount != 2 {
		t.Errorf("chest ExerciseCount = %d, want 2", chest.ExerciseCount)
	}
	if chest.Frequency != 2 {
		t.Errorf("chest Frequency = %d, want 2 distinct days", chest.Frequency)
	}
	if !chest.LastWorked.Equal(day2.Add(time.Hour)) {
		t.Errorf("chest LastWorked = %v, want %v", chest.LastWorked, day2.Add(time.Hour))
	}

	back := byGroup[GroupBack]
	if back.TotalSets != 1 || back.TotalVolume != 560 || back.Frequency != 1 {
		t.Errorf("back stats = %+v", back)
	}

	if legs := byGroup[GroupLegs]; legs.TotalSets != 0 {
		t.Errorf("legs should be zero-valued, got %+v", legs)
	}
}

func TestMuscleGroupStatsOtherOnlyWhenPresent(t *testing.T) {
	day := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	history := []store.Workout{
		workoutOn(day, store.WorkoutExercise{Name: "Farmer Carry", Sets: []store.ExerciseSet{set(40, 1)}}),
	}

	stats := MuscleGroupStats(history)
	if len(stats) != len(CanonicalGroups)+1 {
		t.Fatalf("got %d groups, want %d", len(stats), len(CanonicalGroups)+1)
	}
	other := stats[len(stats)-1]
	if other.Group != GroupOther || other.TotalSets != 1 {
		t.Errorf("other = %+v", other)
	}
}

func TestMuscleGroupInsights(t *testing.T) {
	mk := func(group string, volume float64, frequency, sets int) GroupStats {
		return GroupStats{Group: group, TotalVolume: volume, Frequency: frequency, TotalSets: sets}
	}

	tests := []struct {
		name          string
		stats         []GroupStats
		wantStrong    []string
		wantNeedsWork []string
		wantBalanced  bool
	}{
		{
			name:         "no work at all is trivially balanced",
			stats:        MuscleGroupStats(nil),
			wantBalanced: true,
		},
		{
			name: "dominant chest and unworked groups",
			stats: []GroupStats{
				// Worked groups: mean volume (3000+1000+1000+1000)/4 = 1500,
				// mean frequency (3+2+2+1)/4 = 2.
				mk(GroupChest, 3000, 3, 30), // volume > 1.3 * 1500
				mk(GroupBack, 1000, 2, 10),
				mk(GroupShoulders, 1000, 2, 10),
				mk(GroupArms, 1000, 1, 10),
				mk(GroupLegs, 0, 0, 0), // unworked
				mk(GroupCore, 0, 0, 0),
				mk(GroupGlutes, 0, 0, 0),
				mk(GroupCalves, 0, 0, 0),
			},
			wantStrong:    []string{GroupChest},
			wantNeedsWork: []string{GroupLegs, GroupCore, GroupGlutes}, // top 3 of 4
			wantBalanced:  false,
		},
		{
			name: "even training is balanced",
			stats: []GroupStats{
				mk(GroupChest, 1000, 2, 10),
				mk(GroupBack, 1100, 2, 10),
				mk(GroupShoulders, 900, 2, 10),
				mk(GroupArms, 1000, 2, 10),
				mk(GroupLegs, 1050, 2, 10),
				mk(GroupCore, 950, 2, 10),
				mk(GroupGlutes, 1000, 2, 10),
				mk(GroupCalves, 1000, 2, 10),
			},
			wantBalanced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MuscleGroupInsights(tt.stats)

			if len(got.Strong) != len(tt.wantStrong) {
				t.Fatalf("strong = %+v, want %v", got.Strong, tt.wantStrong)
			}
			for i, name := range tt.wantStrong {
				if got.Strong[i].Group != name {
					t.Errorf("strong[%d] = %s, want %s", i, got.Strong[i].Group, name)
				}
			}
			if len(got.NeedsWork) != len(tt.wantNeedsWork) {
				t.Fatalf("needsWork = %+v, want %v", got.NeedsWork, tt.wantNeedsWork)
			}
			if got.Balanced != tt.wantBalanced {
				t.Errorf("balanced = %v, want %v", got.Balanced, tt.wantBalanced)
			}
		})
	}
}
