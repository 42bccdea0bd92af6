package tracker

import (
	"errors"
	"time"

	"fitlog/internal/store"
)

// ErrSessionActive is returned when Start is called while a session is
// already in progress. The caller must complete or cancel first.
var ErrSessionActive = errors.New("a cardio session is already active")

// ErrNoSession is returned when Complete is called with no active session,
// including a second Complete on an already-finalized session.
var ErrNoSession = errors.New("no active cardio session")

// State is the lifecycle state of the tracker.
type State int

const (
	StateIdle State = iota
	StateTracking
	StatePaused
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Session is a snapshot of the in-progress cardio activity. Snapshot()
// returns a copy, so readers never observe distance and route out of step.
type Session struct {
	ActivityType store.ActivityType `json:"activityType"`
	StartedAt    time.Time          `json:"startedAt"`
	PausedAt     *time.Time         `json:"pausedAt,omitempty"`

	// TotalPausedMs accumulates closed pause intervals; it only grows, and
	// only at Resume.
	TotalPausedMs int64 `json:"totalPausedDurationMs"`

	// DistanceMeters never decreases for outdoor sessions. Indoor sessions
	// derive it from the step count instead of accumulating GPS deltas.
	DistanceMeters float64            `json:"distanceMeters"`
	Route          []store.RoutePoint `json:"route"`

	IsTracking   bool `json:"isTracking"`
	Steps        int  `json:"steps"`
	InitialSteps int  `json:"initialSteps"`

	CurrentSpeedMetersPerSec float64 `json:"currentSpeedMetersPerSec"`
}

// ElapsedActive returns the active (unpaused) duration of the session as of
// the given instant.
func (s Session) ElapsedActive(now time.Time) time.Duration {
	elapsed := now.Sub(s.StartedAt) - time.Duration(s.TotalPausedMs)*time.Millisecond
	if s.PausedAt != nil {
		elapsed -= now.Sub(*s.PausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
