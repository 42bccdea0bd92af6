// Package workout owns the lifecycle of one in-progress strength workout.
// It is a simpler sibling of the cardio tracker: no sensors, just a routine
// plan turned into checkable sets and finalized into an immutable history
// record.
package workout

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fitlog/internal/store"
)

// ErrWorkoutActive is returned when Start is called while a workout is
// already in progress.
var ErrWorkoutActive = errors.New("a workout is already active")

// ErrNoWorkout is returned by operations that need an active workout,
// including a second Finish on an already-finalized workout.
var ErrNoWorkout = errors.New("no active workout")

// ErrSetOutOfRange is returned when an exercise or set index does not exist
// in the active workout.
var ErrSetOutOfRange = errors.New("exercise or set index out of range")

// Session is a snapshot of the in-progress workout. JSON tags support
// checkpointing alongside the cardio session.
type Session struct {
	RoutineID   string                  `json:"routineId"`
	RoutineName string                  `json:"routineName"`
	Exercises   []store.WorkoutExercise `json:"exercises"`
	StartedAt   time.Time               `json:"startedAt"`
}

// Tracker is the strength workout state machine. At most one workout is
// active per Tracker.
type Tracker struct {
	mu      sync.Mutex
	active  bool
	session Session

	now func() time.Time
}

func New() *Tracker {
	return &Tracker{now: time.Now}
}

// Start begins a workout from a routine. Each planned exercise expands into
// its planned number of sets, pre-filled with the routine's targets and
// marked not completed. A routine exercise with a non-positive set count
// still gets one set, so it stays visible and checkable.
func (t *Tracker) Start(routine store.Routine) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return ErrWorkoutActive
	}

	exercises := make([]store.WorkoutExercise, 0, len(routine.Exercises))
	for _, planned := range routine.Exercises {
		count := planned.Sets
		if count < 1 {
			count = 1
		}
		sets := make([]store.ExerciseSet, count)
		for i := range sets {
			sets[i] = store.ExerciseSet{
				Reps:        copyIntPtr(planned.TargetReps),
				TimeSeconds: copyIntPtr(planned.TargetTime),
				Weight:      copyFloatPtr(planned.TargetWeight),
			}
		}
		exercises = append(exercises, store.WorkoutExercise{
			Name:        planned.Name,
			MuscleGroup: planned.MuscleGroup,
			Sets:        sets,
		})
	}

	t.session = Session{
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		Exercises:   exercises,
		StartedAt:   t.now(),
	}
	t.active = true

	log.WithFields(log.Fields{
		"routine":   routine.Name,
		"exercises": len(exercises),
	}).Info("workout started")

	return nil
}

// ToggleSet flips the completed flag of one set.
func (t *Tracker) ToggleSet(exercise, set int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.setAt(exercise, set)
	if err != nil {
		return err
	}
	s.Completed = !s.Completed
	return nil
}

// UpdateSet overwrites the reps, time, and weight of one set, keeping its
// completed flag.
func (t *Tracker) UpdateSet(exercise, set int, reps *int, timeSeconds *int, weight *float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.setAt(exercise, set)
	if err != nil {
		return err
	}
	s.Reps = copyIntPtr(reps)
	s.TimeSeconds = copyIntPtr(timeSeconds)
	s.Weight = copyFloatPtr(weight)
	return nil
}

// AddSet appends one more set to an exercise, cloned from the exercise's
// last set but not completed. Useful when the plan underestimated.
func (t *Tracker) AddSet(exercise int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return ErrNoWorkout
	}
	if exercise < 0 || exercise >= len(t.session.Exercises) {
		return ErrSetOutOfRange
	}

	ex := &t.session.Exercises[exercise]
	var next store.ExerciseSet
	if n := len(ex.Sets); n > 0 {
		last := ex.Sets[n-1]
		next = store.ExerciseSet{
			Reps:        copyIntPtr(last.Reps),
			TimeSeconds: copyIntPtr(last.TimeSeconds),
			Weight:      copyFloatPtr(last.Weight),
		}
	}
	ex.Sets = append(ex.Sets, next)
	return nil
}

// Finish finalizes the workout into an immutable history record and destroys
// the session. Totals count completed sets only; a planned set that was
// never checked off contributes nothing.
func (t *Tracker) Finish() (store.Workout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return store.Workout{}, ErrNoWorkout
	}

	var totalSets, totalReps int
	for _, ex := range t.session.Exercises {
		for _, s := range ex.Sets {
			if !s.Completed {
				continue
			}
			totalSets++
			if s.Reps != nil {
				totalReps += *s.Reps
			}
		}
	}

	w := store.Workout{
		ID:          uuid.NewString(),
		RoutineID:   t.session.RoutineID,
		RoutineName: t.session.RoutineName,
		Exercises:   t.session.Exercises,
		StartedAt:   t.session.StartedAt,
		CompletedAt: t.now(),
		TotalSets:   totalSets,
		TotalReps:   totalReps,
	}

	t.session = Session{}
	t.active = false

	log.WithFields(log.Fields{
		"id":        w.ID,
		"routine":   w.RoutineName,
		"totalSets": w.TotalSets,
	}).Info("workout completed")

	return w, nil
}

// Discard drops the in-progress workout without persisting anything.
func (t *Tracker) Discard() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}
	t.session = Session{}
	t.active = false

	log.Info("workout discarded")
}

// Snapshot returns a deep copy of the current workout. The second return
// value is false when no workout is active.
func (t *Tracker) Snapshot() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return Session{}, false
	}

	snap := t.session
	snap.Exercises = make([]store.WorkoutExercise, len(t.session.Exercises))
	for i, ex := range t.session.Exercises {
		sets := make([]store.ExerciseSet, len(ex.Sets))
		for j, s := range ex.Sets {
			sets[j] = store.ExerciseSet{
				Reps:        copyIntPtr(s.Reps),
				TimeSeconds: copyIntPtr(s.TimeSeconds),
				Weight:      copyFloatPtr(s.Weight),
				Completed:   s.Completed,
			}
		}
		snap.Exercises[i] = store.WorkoutExercise{
			Name:        ex.Name,
			MuscleGroup: ex.MuscleGroup,
			Sets:        sets,
		}
	}
	return snap, true
}

// Restore re-establishes a checkpointed workout, e.g. after a crash.
func (t *Tracker) Restore(session Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return ErrWorkoutActive
	}
	t.session = session
	t.active = true
	return nil
}

// setAt returns a pointer into the live session. Callers must hold the
// mutex.
func (t *Tracker) setAt(exercise, set int) (*store.ExerciseSet, error) {
	if !t.active {
		return nil, ErrNoWorkout
	}
	if exercise < 0 || exercise >= len(t.session.Exercises) {
		return nil, ErrSetOutOfRange
	}
	ex := &t.session.Exercises[exercise]
	if set < 0 || set >= len(ex.Sets) {
		return nil, ErrSetOutOfRange
	}
	return &ex.Sets[set], nil
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
