package models

// Penalty banner statuses used throughout the codebase.
const (
	PenaltyNone    = "none"
	PenaltyPending = "pending"
	PenaltyActive  = "active"
)

// Default limits.
const (
	DefaultMaxRequestBodyBytes = 1 << 20 // 1 MiB
	DefaultUpcomingWeeks       = 3
	DefaultNotifyConcurrency   = 8
)
