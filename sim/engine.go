// sim/engine.go
package sim

import (
	"github.com/sirupsen/logrus"
)

const (
	// TicketPrice is the fixed price of one ticket in currency units.
	TicketPrice int64 = 20
	// MinNewPlayers and MaxNewPlayers bound the daily draw of fresh players (inclusive).
	MinNewPlayers int64 = 1
	MaxNewPlayers int64 = 5000
	// retentionDivisor models the 10% of the player pool that returns every day.
	retentionDivisor int64 = 10
)

// Engine advances the lottery one day at a time and owns all cumulative state.
//
// Thread-safety: NOT thread-safe. Step and Reset must be called from a single
// goroutine; see package driver for a loop that guarantees this.
type Engine struct {
	tiers     []TierSpec
	src       RandomSource
	tierIndex int
	exhausted bool
	totals    Totals
}

// NewEngine creates an Engine at the initial zero state with the fixed tier table.
// src draws the daily number of new players.
func NewEngine(src RandomSource) *Engine {
	if src == nil {
		panic("sim.NewEngine: nil RandomSource")
	}
	return &Engine{
		tiers: DefaultTiers(),
		src:   src,
	}
}

// Step simulates one day and returns its deltas. Totals are updated before
// Step returns, so the accessors always agree with the returned record.
func (e *Engine) Step() DayResult {
	tier := e.tiers[e.tierIndex]

	newPlayers := uniformInRange(e.src, MinNewPlayers, MaxNewPlayers)
	oldPlayers := e.totals.Players / retentionDivisor
	tickets := newPlayers + oldPlayers
	winners := tickets / tier.Each

	day := DayResult{
		Day:              e.totals.Days + 1,
		OldPlayers:       oldPlayers,
		NewPlayers:       newPlayers,
		NewWinners:       winners,
		NewIncome:        tickets * TicketPrice,
		NewPayed:         winners * tier.WinAmount,
		NewTicketsIssued: tickets,
		TierIndex:        e.tierIndex,
		WinAmount:        tier.WinAmount,
		Each:             tier.Each,
		TicketPrice:      TicketPrice,
	}

	day.TierAdvanced = e.recalculateTier(e.totals.TicketsIssued + tickets)
	day.Exhausted = e.exhausted

	e.totals.apply(day)
	logrus.Debugf("[day %05d] players=%d+%d tickets=%d winners=%d tier=%d",
		day.Day, newPlayers, oldPlayers, tickets, winners, e.tierIndex)
	return day
}

// recalculateTier moves to the next tier when ticketsAfter exceeds the current
// tier's MaxRange and reports whether it did. At most one tier is advanced per
// call. Crossing the last tier's MaxRange enters the exhausted state instead;
// the index stays clamped.
func (e *Engine) recalculateTier(ticketsAfter int64) bool {
	if ticketsAfter <= e.tiers[e.tierIndex].MaxRange {
		return false
	}
	if e.tierIndex+1 < len(e.tiers) {
		e.tierIndex++
		logrus.Infof("[day %05d] tier advanced to %d (tickets=%d)", e.totals.Days+1, e.tierIndex, ticketsAfter)
		return true
	}
	if !e.exhausted {
		e.exhausted = true
		logrus.Warnf("[day %05d] final tier exhausted (tickets=%d > %d)",
			e.totals.Days+1, ticketsAfter, e.tiers[e.tierIndex].MaxRange)
	}
	return false
}

// Reset restores the initial zero state and tier 0. Idempotent.
func (e *Engine) Reset() {
	e.tierIndex = 0
	e.exhausted = false
	e.totals = Totals{}
}

// Reseed replaces the random source used for subsequent days. Combined with
// Reset it starts an independent, reproducible run.
func (e *Engine) Reseed(src RandomSource) {
	if src == nil {
		panic("sim.Engine.Reseed: nil RandomSource")
	}
	e.src = src
}

// CurrentTier returns the tier in effect for the next Step.
func (e *Engine) CurrentTier() TierSpec {
	return e.tiers[e.tierIndex]
}

// TierIndex returns the 0-based index of the current tier.
func (e *Engine) TierIndex() int { return e.tierIndex }

// Exhausted reports whether cumulative tickets have exceeded the last tier's
// MaxRange. Once set, further steps keep using the last tier.
func (e *Engine) Exhausted() bool { return e.exhausted }

// Tiers returns a copy of the engine's tier table.
func (e *Engine) Tiers() []TierSpec {
	tiers := make([]TierSpec, len(e.tiers))
	copy(tiers, e.tiers)
	return tiers
}

// Totals returns a snapshot of the cumulative counters.
func (e *Engine) Totals() Totals { return e.totals }

func (e *Engine) TotalDays() int64          { return e.totals.Days }
func (e *Engine) TotalPlayers() int64       { return e.totals.Players }
func (e *Engine) TotalWinners() int64       { return e.totals.Winners }
func (e *Engine) TotalIncome() int64        { return e.totals.Income }
func (e *Engine) TotalPayed() int64         { return e.totals.Payed }
func (e *Engine) TotalTicketsIssued() int64 { return e.totals.TicketsIssued }
