package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Replay feeds recorded fixes back at their original cadence. It drives the
// tracker in demos and on development machines without GPS hardware.
type Replay struct {
	fixes []Fix

	// Speedup divides the gaps between fixes; 0 or 1 replays in real time.
	Speedup float64
}

// NewReplay loads a recorded track from a JSON file containing an array of
// fixes.
func NewReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay file: %w", err)
	}

	var fixes []Fix
	if err := json.Unmarshal(data, &fixes); err != nil {
		return nil, fmt.Errorf("parsing replay file: %w", err)
	}
	return &Replay{fixes: fixes}, nil
}

// Watch replays the recorded fixes. Timestamps are rewritten to the current
// clock so the tracker's debounce and speed gates see realistic intervals.
func (r *Replay) Watch(ctx context.Context) (<-chan Fix, error) {
	ch := make(chan Fix)

	speedup := r.Speedup
	if speedup <= 0 {
		speedup = 1
	}

	go func() {
		defer close(ch)
		for i, fix := range r.fixes {
			if i > 0 {
				gapMs := r.fixes[i].TimestampMs - r.fixes[i-1].TimestampMs
				if gapMs > 0 {
					wait := time.Duration(float64(gapMs)/speedup) * time.Millisecond
					select {
					case <-time.After(wait):
					case <-ctx.Done():
						return
					}
				}
			}

			fix.TimestampMs = time.Now().UnixMilli()
			select {
			case ch <- fix:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
