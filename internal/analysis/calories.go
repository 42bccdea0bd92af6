package analysis

import "fitlog/internal/store"

// MET values per activity type (Compendium of Physical Activities, rounded).
// A fixed value per type is deliberately coarse; a speed-sensitive table
// would imply precision the rest of the pipeline does not have.
var activityMET = map[store.ActivityType]float64{
	store.ActivityRunning:    9.8,
	store.ActivityWalking:    3.5,
	store.ActivityCycling:    7.5,
	store.ActivityHiking:     6.0,
	store.ActivityIndoorRun:  9.0,
	store.ActivityIndoorWalk: 3.5,
}

const defaultMET = 5.0

// EstimateCalories returns the kcal burned by one activity for an athlete of
// the given body weight, using the standard MET formula
// (MET x kg x hours). Zero when weight or duration is not positive.
func EstimateCalories(activity store.Activity, weightKg float64) float64 {
	if weightKg <= 0 || activity.DurationMs <= 0 {
		return 0
	}
	met, ok := activityMET[activity.Type]
	if !ok {
		met = defaultMET
	}
	hours := float64(activity.DurationMs) / 3600000
	return met * weightKg * hours
}
