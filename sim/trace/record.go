// Package trace provides per-day recording for lottery simulation analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DayRecord captures the outcome of a single simulated day.
type DayRecord struct {
	Day           int64
	TierIndex     int // tier in effect at the start of the day
	NewPlayers    int64
	OldPlayers    int64
	TicketsIssued int64
	Winners       int64
	Income        int64
	Payed         int64
}

// TransitionRecord captures a tier change or the entry into the exhausted state.
type TransitionRecord struct {
	Day             int64
	FromTier        int
	ToTier          int   // equals FromTier when Exhausted is true
	CumulativeTotal int64 // cumulative tickets issued after the day
	Exhausted       bool
}
