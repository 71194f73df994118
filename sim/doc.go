// Package sim provides the day-by-day simulation engine for a tiered lottery.
//
// # Reading Guide
//
//   - tier.go: the fixed prize schedule (TierSpec, DefaultTiers)
//   - engine.go: Engine.Step, tier recalculation, Reset and the accessors
//   - day.go: DayResult and Totals, the records handed to presentation
//   - rng.go: seeded, partitioned random sources
//   - metrics.go: run-wide and per-tier aggregates and the JSON results file
//
// # Architecture
//
// The Engine is a small synchronous state machine with no locks. Sub-packages
// build on it:
//   - sim/driver/: start/pause/step/reset loop owning the Engine on one goroutine
//   - sim/trace/: optional per-day and tier-transition recording
//
// Rendering is not part of this package; Step returns plain data and the
// caller decides how to display it.
package sim
