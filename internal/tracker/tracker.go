// Package tracker owns the lifecycle of one in-progress cardio activity:
// start, pause, resume, GPS fix ingestion, step ingestion, complete, cancel.
// Raw phone GPS is noisy at low speed and near buildings, so fixes pass a
// rejection chain (accuracy, debounce, minimum displacement, maximum
// plausible speed) before they may advance the distance total.
package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fitlog/internal/geo"
	"fitlog/internal/sensor"
	"fitlog/internal/store"
	"fitlog/internal/stride"
)

// GPS fix rejection thresholds.
const (
	// MaxAccuracyMeters drops fixes with worse reported accuracy.
	MaxAccuracyMeters = 30.0

	// MinFixIntervalSec debounces fixes arriving too soon after the
	// reference fix.
	MinFixIntervalSec = 0.5

	// MinDisplacementMeters treats smaller deltas as stationary jitter.
	MinDisplacementMeters = 1.0

	// MaxPlausibleSpeedKmh guards against GPS jumps. Nobody runs, walks,
	// hikes, or commuter-cycles faster than this.
	MaxPlausibleSpeedKmh = 50.0
)

// refPoint is the authoritative reference fix that distance deltas are
// measured against. It only advances when a fix survives the whole
// rejection chain, and it resets on resume so the first post-pause fix
// cannot synthesize a teleport across the paused gap.
type refPoint struct {
	lat, lon    float64
	timestampMs int64
}

// Tracker is the cardio activity state machine. Exactly zero or one
// non-terminal session exists per Tracker; all mutations go through one
// mutex so a concurrent reader can never observe distance and route out of
// step.
type Tracker struct {
	mu      sync.Mutex
	state   State
	session Session
	ref     *refPoint

	now func() time.Time
}

// New returns an idle Tracker.
func New() *Tracker {
	return &Tracker{
		state: StateIdle,
		now:   time.Now,
	}
}

// Start begins a new session. initialSteps is the pedometer's cumulative
// total at session start; callers subtract it when feeding step polls so the
// session sees a session-relative count.
func (t *Tracker) Start(activityType store.ActivityType, initialSteps int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateTracking || t.state == StatePaused {
		return ErrSessionActive
	}

	t.session = Session{
		ActivityType: activityType,
		StartedAt:    t.now(),
		IsTracking:   true,
		InitialSteps: initialSteps,
	}
	t.ref = nil
	t.state = StateTracking

	log.WithFields(log.Fields{
		"type":         activityType,
		"initialSteps": initialSteps,
	}).Info("cardio session started")

	return nil
}

// IngestFix feeds one GPS fix through the rejection chain. Rejected fixes
// are dropped silently (a no-op, never an error); only the snapshot tells
// the caller whether anything changed. Fixes arriving while paused, with no
// session, or for an indoor activity are dropped outright.
func (t *Tracker) IngestFix(fix sensor.Fix) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() || !t.session.IsTracking {
		return
	}
	if t.session.ActivityType.Indoor() {
		return
	}
	if fix.AccuracyMeters != nil && *fix.AccuracyMeters > MaxAccuracyMeters {
		return
	}

	point := store.RoutePoint{
		Latitude:          fix.Latitude,
		Longitude:         fix.Longitude,
		TimestampMs:       fix.TimestampMs,
		SpeedMetersPerSec: fix.SpeedMetersPerSec,
		AccuracyMeters:    fix.AccuracyMeters,
	}

	// First accepted fix of the session: nothing to measure from yet.
	if t.ref == nil {
		t.ref = &refPoint{lat: fix.Latitude, lon: fix.Longitude, timestampMs: fix.TimestampMs}
		t.session.Route = append(t.session.Route, point)
		return
	}

	timeDiffSec := float64(fix.TimestampMs-t.ref.timestampMs) / 1000
	if timeDiffSec < MinFixIntervalSec {
		return
	}

	delta := geo.Distance(t.ref.lat, t.ref.lon, fix.Latitude, fix.Longitude)

	// Below the displacement floor the device is effectively stationary:
	// zero the displayed speed without polluting the track or advancing the
	// reference.
	if delta < MinDisplacementMeters {
		t.session.CurrentSpeedMetersPerSec = 0
		if fix.SpeedMetersPerSec != nil && *fix.SpeedMetersPerSec > 0 {
			t.session.CurrentSpeedMetersPerSec = *fix.SpeedMetersPerSec
		}
		return
	}

	impliedKmh := (delta / 1000) / (timeDiffSec / 3600)
	if impliedKmh > MaxPlausibleSpeedKmh {
		log.WithFields(log.Fields{
			"impliedKmh":  impliedKmh,
			"deltaMeters": delta,
		}).Warn("rejecting implausible GPS jump")
		return
	}

	t.ref = &refPoint{lat: fix.Latitude, lon: fix.Longitude, timestampMs: fix.TimestampMs}
	t.session.Route = append(t.session.Route, point)
	t.session.DistanceMeters += delta

	if fix.SpeedMetersPerSec != nil && *fix.SpeedMetersPerSec >= 0 {
		t.session.CurrentSpeedMetersPerSec = *fix.SpeedMetersPerSec
	} else {
		t.session.CurrentSpeedMetersPerSec = delta / timeDiffSec
	}
}

// IngestSteps records the session-relative step count. For indoor activity
// types, distance is derived (not accumulated): it is recomputed from
// scratch as steps times the current stride length, and the current speed
// re-derived from elapsed active time.
func (t *Tracker) IngestSteps(steps int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() || !t.session.IsTracking {
		return
	}
	if steps < 0 {
		steps = 0
	}

	t.session.Steps = steps

	if !t.session.ActivityType.Indoor() {
		return
	}

	speedKmh := t.session.CurrentSpeedMetersPerSec * 3.6
	t.session.DistanceMeters = stride.EstimateDistance(t.session.ActivityType, steps, speedKmh)

	activeSec := t.session.ElapsedActive(t.now()).Seconds()
	if activeSec > 0 {
		t.session.CurrentSpeedMetersPerSec = t.session.DistanceMeters / activeSec
	}
}

// Pause suspends tracking. Idempotent: pausing a paused or missing session
// is a no-op, because UI event handlers may double-fire.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateTracking {
		return
	}

	now := t.now()
	t.session.PausedAt = &now
	t.session.IsTracking = false
	t.session.CurrentSpeedMetersPerSec = 0
	t.state = StatePaused

	log.Debug("cardio session paused")
}

// Resume continues a paused session. The paused interval is added to the
// pause total and the GPS reference point is discarded, so the first fix
// after resume contributes zero distance no matter how far the device moved
// during the pause.
func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePaused || t.session.PausedAt == nil {
		return
	}

	t.session.TotalPausedMs += t.now().Sub(*t.session.PausedAt).Milliseconds()
	t.session.PausedAt = nil
	t.session.IsTracking = true
	t.ref = nil
	t.state = StateTracking

	log.Debug("cardio session resumed")
}

// Complete finalizes the session into an immutable Activity record and
// destroys the session. A second Complete fails with ErrNoSession and can
// never produce a second record. Completing while paused folds the open
// pause interval into the pause total first.
func (t *Tracker) Complete() (store.Activity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return store.Activity{}, ErrNoSession
	}

	now := t.now()

	pausedMs := t.session.TotalPausedMs
	if t.session.PausedAt != nil {
		pausedMs += now.Sub(*t.session.PausedAt).Milliseconds()
	}

	activeMs := now.Sub(t.session.StartedAt).Milliseconds() - pausedMs
	if activeMs < 0 {
		activeMs = 0
	}

	var avgSpeedKmh, avgPaceMinPerKm float64
	if activeMs > 0 && t.session.DistanceMeters > 0 {
		avgSpeedKmh = (t.session.DistanceMeters / 1000) / (float64(activeMs) / 3600000)
	}
	if avgSpeedKmh > 0 {
		avgPaceMinPerKm = 60 / avgSpeedKmh
	}

	activity := store.Activity{
		ID:                  uuid.NewString(),
		Type:                t.session.ActivityType,
		StartedAt:           t.session.StartedAt,
		CompletedAt:         now,
		DurationMs:          activeMs,
		DistanceMeters:      t.session.DistanceMeters,
		AverageSpeedKmh:     avgSpeedKmh,
		AveragePaceMinPerKm: avgPaceMinPerKm,
		Route:               t.session.Route,
		PausedDurationMs:    pausedMs,
		Steps:               t.session.Steps,
	}

	t.session = Session{}
	t.ref = nil
	t.state = StateCompleted

	log.WithFields(log.Fields{
		"id":       activity.ID,
		"distance": activity.DistanceMeters,
		"duration": activity.DurationMs,
	}).Info("cardio session completed")

	return activity, nil
}

// Cancel destroys the session without persisting anything. No-op when no
// session is active.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return
	}

	t.session = Session{}
	t.ref = nil
	t.state = StateCancelled

	log.Info("cardio session cancelled")
}

// Snapshot returns a consistent copy of the current session. The second
// return value is false when no session is active.
func (t *Tracker) Snapshot() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return Session{}, false
	}

	snap := t.session
	snap.Route = make([]store.RoutePoint, len(t.session.Route))
	copy(snap.Route, t.session.Route)
	if t.session.PausedAt != nil {
		pausedAt := *t.session.PausedAt
		snap.PausedAt = &pausedAt
	}
	return snap, true
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Restore re-establishes a checkpointed session, e.g. after a crash during
// a live activity. It fails if a session is already active. The GPS
// reference is left unset, so the first fix after restore contributes zero
// distance, same as after a resume.
func (t *Tracker) Restore(session Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateTracking || t.state == StatePaused {
		return ErrSessionActive
	}

	t.session = session
	t.ref = nil
	if session.IsTracking {
		t.state = StateTracking
	} else {
		t.state = StatePaused
	}
	return nil
}

// active reports whether a non-terminal session exists. Callers must hold
// the mutex.
func (t *Tracker) active() bool {
	return t.state == StateTracking || t.state == StatePaused
}
