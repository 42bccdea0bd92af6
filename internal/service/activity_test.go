package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitlog/internal/sensor"
	"fitlog/internal/store"
	"fitlog/internal/tracker"
)

// fakeLocation hands the test a channel to push fixes through.
type fakeLocation struct {
	ch chan sensor.Fix
}

func newFakeLocation() *fakeLocation {
	return &fakeLocation{ch: make(chan sensor.Fix, 16)}
}

func (f *fakeLocation) Watch(ctx context.Context) (<-chan sensor.Fix, error) {
	return f.ch, nil
}

// fakeSteps returns a scripted cumulative total.
type fakeSteps struct {
	mu    sync.Mutex
	total int
	err   error
}

func (f *fakeSteps) Steps(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total, f.err
}

func (f *fakeSteps) set(total int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total = total
}

func newActivityService(t *testing.T, loc sensor.LocationSource, steps sensor.StepCounter) (*ActivityService, *store.Store) {
	t.Helper()
	s, err := store.NewTestStore()
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := NewActivityService(s, loc, steps)
	svc.stepPollInterval = 10 * time.Millisecond
	svc.checkpointInterval = 10 * time.Millisecond
	return svc, s
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestStartDispatchesFixes(t *testing.T) {
	loc := newFakeLocation()
	svc, _ := newActivityService(t, loc, &fakeSteps{})

	if err := svc.Start(context.Background(), store.ActivityRunning); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Cancel()

	now := time.Now()
	acc := 10.0
	loc.ch <- sensor.Fix{Latitude: 52.52, Longitude: 13.405, TimestampMs: now.UnixMilli(), AccuracyMeters: &acc}

	waitFor(t, "fix to reach the tracker", func() bool {
		snap, ok := svc.Snapshot()
		return ok && len(snap.Route) == 1
	})
}

func TestStepsAreWindowedFromSessionStart(t *testing.T) {
	steps := &fakeSteps{total: 5000}
	svc, _ := newActivityService(t, newFakeLocation(), steps)

	if err := svc.Start(context.Background(), store.ActivityWalking); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Cancel()

	// The pedometer reports a lifetime total; the session must only see
	// the delta since start.
	steps.set(5300)
	waitFor(t, "windowed step count", func() bool {
		snap, ok := svc.Snapshot()
		return ok && snap.Steps == 300
	})
}

func TestPedometerFailureDegradesToZeroSteps(t *testing.T) {
	svc, _ := newActivityService(t, newFakeLocation(), &fakeSteps{err: errors.New("no hardware")})

	if err := svc.Start(context.Background(), store.ActivityRunning); err != nil {
		t.Fatalf("Start with broken pedometer: %v", err)
	}
	defer svc.Cancel()

	snap, ok := svc.Snapshot()
	if !ok || snap.Steps != 0 {
		t.Errorf("snapshot = %+v, want zero steps", snap)
	}
}

func TestCompletePersistsAndClearsCheckpoint(t *testing.T) {
	svc, st := newActivityService(t, newFakeLocation(), &fakeSteps{})

	if err := svc.Start(context.Background(), store.ActivityRunning); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Let at least one checkpoint land.
	waitFor(t, "checkpoint", func() bool {
		var s tracker.Session
		ok, _ := st.GetState(store.StateKeyCardioCheckpoint, &s)
		return ok
	})

	activity, err := svc.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	saved, err := st.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("activity not persisted: %v", err)
	}
	if saved.Type != store.ActivityRunning {
		t.Errorf("persisted type = %v", saved.Type)
	}

	var leftover tracker.Session
	if ok, _ := st.GetState(store.StateKeyCardioCheckpoint, &leftover); ok {
		t.Error("checkpoint not cleared after Complete")
	}

	if _, err := svc.Complete(); !errors.Is(err, tracker.ErrNoSession) {
		t.Errorf("second Complete = %v, want ErrNoSession", err)
	}
	count, _ := st.CountActivities()
	if count != 1 {
		t.Errorf("activities persisted = %d, want 1", count)
	}
}

func TestCancelPersistsNothing(t *testing.T) {
	svc, st := newActivityService(t, newFakeLocation(), &fakeSteps{})

	if err := svc.Start(context.Background(), store.ActivityCycling); err != nil {
		t.Fatalf("Start: %v", err)
	}
	svc.Cancel()

	count, _ := st.CountActivities()
	if count != 0 {
		t.Errorf("Cancel persisted %d activities", count)
	}
	if _, ok := svc.Snapshot(); ok {
		t.Error("session still visible after Cancel")
	}
}

func TestRestoreCheckpoint(t *testing.T) {
	svc, st := newActivityService(t, newFakeLocation(), &fakeSteps{})

	session := tracker.Session{
		ActivityType:   store.ActivityRunning,
		StartedAt:      time.Now().Add(-20 * time.Minute),
		DistanceMeters: 3200,
		IsTracking:     true,
		Steps:          2500,
		InitialSteps:   100,
	}
	if err := st.SetState(store.StateKeyCardioCheckpoint, session); err != nil {
		t.Fatalf("seeding checkpoint: %v", err)
	}

	ok, err := svc.RestoreCheckpoint(context.Background())
	if err != nil {
		t.Fatalf("RestoreCheckpoint: %v", err)
	}
	if !ok {
		t.Fatal("checkpoint not found")
	}
	defer svc.Cancel()

	snap, active := svc.Snapshot()
	if !active || snap.DistanceMeters != 3200 || snap.Steps != 2500 {
		t.Errorf("restored snapshot = %+v", snap)
	}
}

func TestRestoreCheckpointAbsent(t *testing.T) {
	svc, _ := newActivityService(t, newFakeLocation(), &fakeSteps{})

	ok, err := svc.RestoreCheckpoint(context.Background())
	if err != nil {
		t.Fatalf("RestoreCheckpoint: %v", err)
	}
	if ok {
		t.Error("reported a checkpoint where none exists")
	}
}
