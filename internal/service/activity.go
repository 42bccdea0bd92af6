package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"fitlog/internal/sensor"
	"fitlog/internal/store"
	"fitlog/internal/tracker"
)

// ActivityService coordinates one live cardio session: it owns the tracker,
// routes all sensor events through a single dispatch loop, checkpoints the
// session, and persists the finalized record. UI layers read snapshots and
// issue commands; they never touch the tracker directly.
type ActivityService struct {
	tracker  *tracker.Tracker
	store    *store.Store
	location sensor.LocationSource
	steps    sensor.StepCounter

	// onUpdate is called after every applied sensor event so the UI can
	// re-render. May be nil.
	onUpdate func()

	mu     sync.Mutex
	cancel context.CancelFunc

	// initialSteps is the pedometer's cumulative total at session start;
	// polls are windowed against it before they reach the tracker.
	initialSteps int

	stepPollInterval   time.Duration
	checkpointInterval time.Duration
}

// NewActivityService creates the live-session coordinator.
func NewActivityService(s *store.Store, location sensor.LocationSource, steps sensor.StepCounter) *ActivityService {
	return &ActivityService{
		tracker:            tracker.New(),
		store:              s,
		location:           location,
		steps:              steps,
		stepPollInterval:   StepPollInterval,
		checkpointInterval: CheckpointInterval,
	}
}

// OnUpdate registers the UI notification callback.
func (s *ActivityService) OnUpdate(fn func()) {
	s.onUpdate = fn
}

// Start begins a session and launches the sensor dispatch loop.
func (s *ActivityService) Start(ctx context.Context, activityType store.ActivityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	initialSteps, err := s.steps.Steps(ctx)
	if err != nil {
		// No pedometer is a degraded mode, not a failure: step fields
		// stay zero.
		log.WithField("error", err).Warn("pedometer unavailable, steps disabled")
		initialSteps = 0
	}

	if err := s.tracker.Start(activityType, initialSteps); err != nil {
		return err
	}
	s.initialSteps = initialSteps

	return s.launchDispatch(ctx)
}

// RestoreCheckpoint resumes a checkpointed session after a crash. Returns
// false when no checkpoint exists.
func (s *ActivityService) RestoreCheckpoint(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session tracker.Session
	ok, err := s.store.GetState(store.StateKeyCardioCheckpoint, &session)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.tracker.Restore(session); err != nil {
		return false, err
	}
	s.initialSteps = session.InitialSteps

	log.WithFields(log.Fields{
		"type":     session.ActivityType,
		"distance": session.DistanceMeters,
	}).Info("restored checkpointed cardio session")

	return true, s.launchDispatch(ctx)
}

// launchDispatch starts the single goroutine that serializes all sensor
// events into the tracker. Callers must hold the mutex.
func (s *ActivityService) launchDispatch(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(ctx)

	fixes, err := s.location.Watch(loopCtx)
	if err != nil {
		cancel()
		s.tracker.Cancel()
		return fmt.Errorf("watching location: %w", err)
	}
	s.cancel = cancel

	go s.dispatch(loopCtx, fixes)
	return nil
}

// dispatch is the only writer into the tracker while a session runs. One
// goroutine selecting over all event sources means a fix and a pause can
// never interleave mid-update.
func (s *ActivityService) dispatch(ctx context.Context, fixes <-chan sensor.Fix) {
	stepTick := time.NewTicker(s.stepPollInterval)
	defer stepTick.Stop()
	checkpointTick := time.NewTicker(s.checkpointInterval)
	defer checkpointTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case fix, ok := <-fixes:
			if !ok {
				return
			}
			s.tracker.IngestFix(fix)
			s.notify()

		case <-stepTick.C:
			total, err := s.steps.Steps(ctx)
			if err != nil {
				continue
			}
			if windowed := total - s.initialSteps; windowed >= 0 {
				s.tracker.IngestSteps(windowed)
			}
			s.notify()

		case <-checkpointTick.C:
			s.checkpoint()
		}
	}
}

// Pause suspends the live session.
func (s *ActivityService) Pause() {
	s.tracker.Pause()
	s.checkpoint()
	s.notify()
}

// Resume continues a paused session.
func (s *ActivityService) Resume() {
	s.tracker.Resume()
	s.notify()
}

// Complete finalizes the session, persists the activity record, and stops
// the dispatch loop.
func (s *ActivityService) Complete() (*store.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, err := s.tracker.Complete()
	if err != nil {
		return nil, err
	}
	s.stopDispatch()

	if err := s.store.SaveActivity(&activity); err != nil {
		return nil, fmt.Errorf("persisting activity: %w", err)
	}
	if err := s.store.ClearState(store.StateKeyCardioCheckpoint); err != nil {
		log.WithField("error", err).Warn("clearing session checkpoint")
	}
	s.notify()

	return &activity, nil
}

// Cancel discards the live session without persisting anything.
func (s *ActivityService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Cancel()
	s.stopDispatch()
	if err := s.store.ClearState(store.StateKeyCardioCheckpoint); err != nil {
		log.WithField("error", err).Warn("clearing session checkpoint")
	}
	s.notify()
}

// Snapshot returns a consistent copy of the live session.
func (s *ActivityService) Snapshot() (tracker.Session, bool) {
	return s.tracker.Snapshot()
}

// State returns the tracker's lifecycle state.
func (s *ActivityService) State() tracker.State {
	return s.tracker.State()
}

// stopDispatch cancels the dispatch loop. Callers must hold the mutex.
func (s *ActivityService) stopDispatch() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *ActivityService) checkpoint() {
	session, ok := s.tracker.Snapshot()
	if !ok {
		return
	}
	if err := s.store.SetState(store.StateKeyCardioCheckpoint, session); err != nil {
		log.WithField("error", err).Warn("checkpointing session")
	}
}

func (s *ActivityService) notify() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
