// Package sensor defines the boundary to platform location and pedometer
// hardware. The tracker consumes these interfaces; platforms without a given
// sensor plug in the Nop implementations and the app degrades to zero-valued
// fields instead of failing.
package sensor

import "context"

// Fix is a single GPS location sample. Speed and accuracy are optional
// metadata; not every platform reports them.
type Fix struct {
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	TimestampMs       int64    `json:"timestampMs"`
	SpeedMetersPerSec *float64 `json:"speedMetersPerSec,omitempty"`
	AccuracyMeters    *float64 `json:"accuracyMeters,omitempty"`
}

// LocationSource yields a stream of GPS fixes. Watch returns a channel that
// is closed when the context is cancelled or the source runs out of data.
type LocationSource interface {
	Watch(ctx context.Context) (<-chan Fix, error)
}

// StepCounter reports a cumulative step total that is monotonically
// non-decreasing for the life of the process. Callers window it themselves
// by remembering the total at session start.
type StepCounter interface {
	Steps(ctx context.Context) (int, error)
}

// NopLocationSource stands in when the platform has no location capability.
// Its channel never yields and closes with the context.
type NopLocationSource struct{}

func (NopLocationSource) Watch(ctx context.Context) (<-chan Fix, error) {
	ch := make(chan Fix)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

// NopStepCounter stands in when the platform has no pedometer. It always
// reports zero steps.
type NopStepCounter struct{}

func (NopStepCounter) Steps(ctx context.Context) (int, error) {
	return 0, nil
}
