package analysis

import (
	"math"
	"testing"

	"fitlog/internal/store"
)

func TestEstimateCalories(t *testing.T) {
	tests := []struct {
		name     string
		activity store.Activity
		weightKg float64
		want     float64
	}{
		{
			name:     "one hour run at 70kg",
			activity: store.Activity{Type: store.ActivityRunning, DurationMs: 3600000},
			weightKg: 70,
			want:     9.8 * 70,
		},
		{
			name:     "half hour walk at 80kg",
			activity: store.Activity{Type: store.ActivityWalking, DurationMs: 1800000},
			weightKg: 80,
			want:     3.5 * 80 * 0.5,
		},
		{
			name:     "unknown type uses default MET",
			activity: store.Activity{Type: store.ActivityType("swimming"), DurationMs: 3600000},
			weightKg: 70,
			want:     5.0 * 70,
		},
		{
			name:     "zero weight yields zero",
			activity: store.Activity{Type: store.ActivityRunning, DurationMs: 3600000},
			weightKg: 0,
			want:     0,
		},
		{
			name:     "zero duration yields zero",
			activity: store.Activity{Type: store.ActivityRunning},
			weightKg: 70,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCalories(tt.activity, tt.weightKg)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("EstimateCalories = %v, want %v", got, tt.want)
			}
		})
	}
}
