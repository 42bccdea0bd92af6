// Package stride estimates walked or run distance from a step count when no
// GPS signal exists. Stride length is banded by current speed: people take
// longer steps the faster they move.
package stride

import "fitlog/internal/store"

// Fallback stride lengths in meters.
const (
	hikingStride  = 0.65
	defaultStride = 0.75
)

// speedBand maps a minimum speed in km/h to an assumed stride length.
type speedBand struct {
	minSpeedKmh float64
	lengthM     float64
}

// Bands are checked top-down; the first band at or below the current speed
// wins, so they must stay sorted by descending speed.
var walkingBands = []speedBand{
	{6, 0.85},
	{5, 0.80},
	{4, 0.75},
	{3, 0.70},
	{2, 0.65},
	{0, 0.60},
}

var runningBands = []speedBand{
	{15, 1.50},
	{12, 1.35},
	{10, 1.20},
	{8, 1.05},
	{0, 0.90},
}

// Length returns the assumed stride length in meters for the given activity
// type at the given speed. Indoor and cycling activities use a flat default.
func Length(activityType store.ActivityType, speedKmh float64) float64 {
	switch activityType {
	case store.ActivityWalking:
		return bandedLength(walkingBands, speedKmh)
	case store.ActivityRunning:
		return bandedLength(runningBands, speedKmh)
	case store.ActivityHiking:
		return hikingStride
	}
	return defaultStride
}

// EstimateDistance converts a step count into meters using the stride table
// for the activity type at the current speed.
func EstimateDistance(activityType store.ActivityType, steps int, speedKmh float64) float64 {
	if steps <= 0 {
		return 0
	}
	return float64(steps) * Length(activityType, speedKmh)
}

func bandedLength(bands []speedBand, speedKmh float64) float64 {
	for _, b := range bands {
		if speedKmh >= b.minSpeedKmh {
			return b.lengthM
		}
	}
	return bands[len(bands)-1].lengthM
}
