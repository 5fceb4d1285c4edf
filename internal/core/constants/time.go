package constants

import "time"

const (
	// Display refresh for the live "since last" header
	DefaultTickInterval = 1 * time.Second
	MinTickInterval     = 100 * time.Millisecond
	MaxTickInterval     = 60 * time.Second

	// Elapsed time display wraps hours at one day, as the watch did
	HoursPerDisplayCycle = 24

	// Store flush retry
	FlushAttempts = 3
	FlushDelay    = 50 * time.Millisecond
)
