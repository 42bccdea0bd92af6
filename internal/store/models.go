package store

import "time"

// ActivityType is the category of a cardio activity. It determines whether
// distance comes from GPS or from the step counter.
type ActivityType string

const (
	ActivityRunning    ActivityType = "running"
	ActivityWalking    ActivityType = "walking"
	ActivityCycling    ActivityType = "cycling"
	ActivityHiking     ActivityType = "hiking"
	ActivityIndoorRun  ActivityType = "indoor_run"
	ActivityIndoorWalk ActivityType = "indoor_walk"
)

// Indoor reports whether the activity type has no GPS signal by definition.
// Indoor activities derive distance from the step counter instead.
func (t ActivityType) Indoor() bool {
	return t == ActivityIndoorRun || t == ActivityIndoorWalk
}

// Label returns a human-readable name for display.
func (t ActivityType) Label() string {
	switch t {
	case ActivityRunning:
		return "Running"
	case ActivityWalking:
		return "Walking"
	case ActivityCycling:
		return "Cycling"
	case ActivityHiking:
		return "Hiking"
	case ActivityIndoorRun:
		return "Indoor Run"
	case ActivityIndoorWalk:
		return "Indoor Walk"
	}
	return string(t)
}

// RoutePoint is a single accepted GPS fix on an activity's route.
// Immutable once appended.
type RoutePoint struct {
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	TimestampMs       int64    `json:"timestampMs"`
	SpeedMetersPerSec *float64 `json:"speedMetersPerSec,omitempty"`
	AccuracyMeters    *float64 `json:"accuracyMeters,omitempty"`
}

// Activity is a finalized cardio activity record. Created exactly once when
// a session completes and never mutated afterwards.
type Activity struct {
	ID                  string       `json:"id"`
	Type                ActivityType `json:"type"`
	StartedAt           time.Time    `json:"startedAt"`
	CompletedAt         time.Time    `json:"completedAt"`
	DurationMs          int64        `json:"durationMs"` // active time, excludes pauses
	DistanceMeters      float64      `json:"distanceMeters"`
	AverageSpeedKmh     float64      `json:"averageSpeedKmh"`
	AveragePaceMinPerKm float64      `json:"averagePaceMinPerKm"`
	Route               []RoutePoint `json:"route"`
	PausedDurationMs    int64        `json:"pausedDurationMs"`
	Steps               int          `json:"steps"`
}

// ExerciseSet is one set within a workout exercise. Reps, time, and weight
// are all optional: a plank has time but no reps, a bodyweight squat has reps
// but no weight.
type ExerciseSet struct {
	Reps        *int     `json:"reps,omitempty"`
	TimeSeconds *int     `json:"time,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Completed   bool     `json:"completed"`
}

// WorkoutExercise is an exercise performed during a workout, with its sets.
// MuscleGroup is an optional explicit tag; when empty the analytics layer
// infers a group from the exercise name.
type WorkoutExercise struct {
	Name        string        `json:"name"`
	MuscleGroup string        `json:"muscleGroup,omitempty"`
	Sets        []ExerciseSet `json:"sets"`
}

// Workout is a completed strength workout. Immutable once created.
type Workout struct {
	ID          string            `json:"id"`
	RoutineID   string            `json:"routineId"`
	RoutineName string            `json:"routineName"`
	Exercises   []WorkoutExercise `json:"exercises"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt time.Time         `json:"completedAt"`
	TotalSets   int               `json:"totalSets"`
	TotalReps   int               `json:"totalReps"`
}

// RoutineExercise is the plan for one exercise within a routine.
type RoutineExercise struct {
	Name         string   `json:"name"`
	MuscleGroup  string   `json:"muscleGroup,omitempty"`
	Sets         int      `json:"sets"`
	TargetReps   *int     `json:"targetReps,omitempty"`
	TargetTime   *int     `json:"targetTime,omitempty"`
	TargetWeight *float64 `json:"targetWeight,omitempty"`
}

// Routine is a reusable workout plan.
type Routine struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []RoutineExercise `json:"exercises"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Meal is a logged meal entry.
type Meal struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	MealType string    `json:"mealType"` // breakfast, lunch, dinner, snack
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"proteinG"`
	CarbsG   float64   `json:"carbsG"`
	FatG     float64   `json:"fatG"`
	LoggedAt time.Time `json:"loggedAt"`
}

// WaterEntry is a single logged water intake.
type WaterEntry struct {
	ID       string    `json:"id"`
	AmountMl int       `json:"amountMl"`
	LoggedAt time.Time `json:"loggedAt"`
}

// Goals holds the daily nutrition targets. Stored as a JSON document in
// app_state.
type Goals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
	WaterMl  int     `json:"waterMl"`
}
