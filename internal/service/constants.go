package service

import "time"

const (
	// StepPollInterval is how often the pedometer is polled during a live
	// session. Faster polling wastes sensor battery without improving
	// correctness; pedometer APIs report coarse running totals.
	StepPollInterval = 3 * time.Second

	// CheckpointInterval is how often a live session is checkpointed to
	// the store so a crash mid-activity loses at most a few seconds.
	CheckpointInterval = 5 * time.Second

	// SyncBatchSize caps how many records one sync pass pushes.
	SyncBatchSize = 50

	// TrendPeriodDays is the default window length for strength trends:
	// the last 30 days against the 30 days before that.
	TrendPeriodDays = 30
)
