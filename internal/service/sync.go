package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"fitlog/internal/store"
)

// Pusher is the slice of the backend client the sync service needs.
type Pusher interface {
	PushActivity(ctx context.Context, a *store.Activity) error
	PushWorkout(ctx context.Context, w *store.Workout) error
}

// SyncService pushes completed records to the sync backend. Push-only: the
// device store is the source of truth, so nothing is ever pulled back.
type SyncService struct {
	client Pusher
	store  *store.Store
}

// NewSyncService creates a new sync service
func NewSyncService(client Pusher, s *store.Store) *SyncService {
	return &SyncService{client: client, store: s}
}

// SyncResult contains the results of a sync pass
type SyncResult struct {
	ActivitiesPushed int
	WorkoutsPushed   int
	Errors           []error
}

// Push uploads all unsynced activities and workouts, oldest first. A failed
// record is recorded and skipped; the pass keeps going so one bad record
// cannot wedge the queue behind it.
func (s *SyncService) Push(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	activities, err := s.store.UnsyncedActivities(SyncBatchSize)
	if err != nil {
		return result, fmt.Errorf("listing unsynced activities: %w", err)
	}
	for i := range activities {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		a := &activities[i]
		if err := s.client.PushActivity(ctx, a); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("pushing activity %s: %w", a.ID, err))
			continue
		}
		if err := s.store.MarkActivitySynced(a.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("marking activity %s: %w", a.ID, err))
			continue
		}
		result.ActivitiesPushed++
	}

	workouts, err := s.store.UnsyncedWorkouts(SyncBatchSize)
	if err != nil {
		return result, fmt.Errorf("listing unsynced workouts: %w", err)
	}
	for i := range workouts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		w := &workouts[i]
		if err := s.client.PushWorkout(ctx, w); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("pushing workout %s: %w", w.ID, err))
			continue
		}
		if err := s.store.MarkWorkoutSynced(w.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("marking workout %s: %w", w.ID, err))
			continue
		}
		result.WorkoutsPushed++
	}

	log.WithFields(log.Fields{
		"activities": result.ActivitiesPushed,
		"workouts":   result.WorkoutsPushed,
		"errors":     len(result.Errors),
	}).Info("sync pass finished")

	if err := s.store.SetState(store.StateKeySyncCursor, time.Now()); err != nil {
		log.WithField("error", err).Warn("recording sync cursor")
	}

	return result, nil
}

// LastSync returns the time of the last completed push pass. The zero time
// means no pass has run yet.
func (s *SyncService) LastSync() (time.Time, error) {
	var at time.Time
	ok, err := s.store.GetState(store.StateKeySyncCursor, &at)
	if err != nil || !ok {
		return time.Time{}, err
	}
	return at, nil
}

// PendingCounts reports how many records await a push.
func (s *SyncService) PendingCounts() (activities, workouts int, err error) {
	a, err := s.store.UnsyncedActivities(SyncBatchSize)
	if err != nil {
		return 0, 0, err
	}
	w, err := s.store.UnsyncedWorkouts(SyncBatchSize)
	if err != nil {
		return 0, 0, err
	}
	return len(a), len(w), nil
}
