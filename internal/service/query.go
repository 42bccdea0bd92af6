package service

import (
	"time"

	"fitlog/internal/analysis"
	"fitlog/internal/config"
	"fitlog/internal/store"
)

// QueryService is the read side: it assembles screen-ready aggregates from
// the store and the analysis package. It holds no state beyond its
// dependencies and recomputes on every call; history is hundreds of rows.
type QueryService struct {
	store   *store.Store
	athlete config.AthleteConfig

	now func() time.Time
}

// NewQueryService creates a new query service
func NewQueryService(s *store.Store, athlete config.AthleteConfig) *QueryService {
	return &QueryService{store: s, athlete: athlete, now: time.Now}
}

// Journey summarizes the full cardio history for the dashboard.
type Journey struct {
	TotalActivities   int
	TotalDistanceKm   float64
	TotalDuration     time.Duration
	TotalSteps        int
	EstimatedCalories float64
	Recent            []store.Activity
}

// Journey aggregates lifetime cardio totals plus the most recent
// activities.
func (q *QueryService) Journey(recentLimit int) (*Journey, error) {
	activities, err := q.store.ListActivities(0)
	if err != nil {
		return nil, err
	}

	j := &Journey{TotalActivities: len(activities)}
	for _, a := range activities {
		j.TotalDistanceKm += a.DistanceMeters / 1000
		j.TotalDuration += time.Duration(a.DurationMs) * time.Millisecond
		j.TotalSteps += a.Steps
		j.EstimatedCalories += analysis.EstimateCalories(a, q.athlete.WeightKg)
	}

	if recentLimit > 0 && len(activities) > recentLimit {
		activities = activities[:recentLimit]
	}
	j.Recent = activities
	return j, nil
}

// Records returns the personal bests over the full workout history, best
// volume first.
func (q *QueryService) Records() ([]analysis.PersonalBest, error) {
	history, err := q.store.ListWorkouts(0)
	if err != nil {
		return nil, err
	}
	return analysis.PersonalBests(history), nil
}

// Balance is the muscle-group view: per-group stats plus the strong /
// needs-work classification.
type Balance struct {
	Stats    []analysis.GroupStats
	Insights analysis.Insights
}

// Balance computes muscle-group stats and insights over the full workout
// history.
func (q *QueryService) Balance() (*Balance, error) {
	history, err := q.store.ListWorkouts(0)
	if err != nil {
		return nil, err
	}
	stats := analysis.MuscleGroupStats(history)
	return &Balance{
		Stats:    stats,
		Insights: analysis.MuscleGroupInsights(stats),
	}, nil
}

// Trends is the strength-trend view: per-exercise progress between the two
// most recent periods, plus the most trained exercises overall.
type Trends struct {
	PeriodDays int
	Progress   []analysis.ExerciseProgress
	Top        []analysis.ExerciseCount
}

// Trends compares the last periodDays of workouts against the equal-length
// period before it. periodDays <= 0 uses the default window.
func (q *QueryService) Trends(periodDays, topLimit int) (*Trends, error) {
	if periodDays <= 0 {
		periodDays = TrendPeriodDays
	}

	now := q.now()
	currentFrom := now.AddDate(0, 0, -periodDays)
	previousFrom := now.AddDate(0, 0, -2*periodDays)

	current, err := q.store.ListWorkoutsBetween(currentFrom, now)
	if err != nil {
		return nil, err
	}
	previous, err := q.store.ListWorkoutsBetween(previousFrom, currentFrom)
	if err != nil {
		return nil, err
	}
	history, err := q.store.ListWorkouts(0)
	if err != nil {
		return nil, err
	}

	return &Trends{
		PeriodDays: periodDays,
		Progress:   analysis.StrengthProgress(current, previous),
		Top:        analysis.TopExercises(history, topLimit),
	}, nil
}

// WeekSummary aggregates the rolling last seven days for the dashboard.
type WeekSummary struct {
	Activities int
	DistanceKm float64
	Workouts   int
	SetsDone   int
}

// Week aggregates the last seven days of training.
func (q *QueryService) Week() (*WeekSummary, error) {
	now := q.now()
	from := now.AddDate(0, 0, -7)

	activities, err := q.store.ListActivitiesBetween(from, now)
	if err != nil {
		return nil, err
	}
	workouts, err := q.store.ListWorkoutsBetween(from, now)
	if err != nil {
		return nil, err
	}

	week := &WeekSummary{Activities: len(activities), Workouts: len(workouts)}
	for _, a := range activities {
		week.DistanceKm += a.DistanceMeters / 1000
	}
	for _, w := range workouts {
		week.SetsDone += w.TotalSets
	}
	return week, nil
}

// Activities returns recent activities, newest first. limit <= 0 returns
// everything.
func (q *QueryService) Activities(limit int) ([]store.Activity, error) {
	return q.store.ListActivities(limit)
}

// WorkoutHistory returns recent workouts, newest first.
func (q *QueryService) WorkoutHistory(limit int) ([]store.Workout, error) {
	return q.store.ListWorkouts(limit)
}

// Routines returns all stored workout plans.
func (q *QueryService) Routines() ([]store.Routine, error) {
	return q.store.ListRoutines()
}
