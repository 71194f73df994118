package cmd

import (
	"github.com/lottery-sim/lottery-sim/sim"
	"github.com/lottery-sim/lottery-sim/sim/trace"
)

// traceObserver copies engine results into a SimulationTrace.
type traceObserver struct {
	st *trace.SimulationTrace
}

func (o traceObserver) ObserveDay(day sim.DayResult, totals sim.Totals) {
	o.st.RecordDay(trace.DayRecord{
		Day:           day.Day,
		TierIndex:     day.TierIndex,
		NewPlayers:    day.NewPlayers,
		OldPlayers:    day.OldPlayers,
		TicketsIssued: day.NewTicketsIssued,
		Winners:       day.NewWinners,
		Income:        day.NewIncome,
		Payed:         day.NewPayed,
	})
	switch {
	case day.TierAdvanced:
		o.st.RecordTransition(trace.TransitionRecord{
			Day:             day.Day,
			FromTier:        day.TierIndex,
			ToTier:          day.TierIndex + 1,
			CumulativeTotal: totals.TicketsIssued,
		})
	case day.Exhausted && !o.exhaustionRecorded():
		o.st.RecordTransition(trace.TransitionRecord{
			Day:             day.Day,
			FromTier:        day.TierIndex,
			ToTier:          day.TierIndex,
			CumulativeTotal: totals.TicketsIssued,
			Exhausted:       true,
		})
	}
}

func (o traceObserver) exhaustionRecorded() bool {
	n := len(o.st.Transitions)
	return n > 0 && o.st.Transitions[n-1].Exhausted
}

func (o traceObserver) ObserveReset(_ sim.Totals) {
	o.st.Reset()
}
