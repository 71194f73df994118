package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDays       int
	TransitionCount int
	Exhausted       bool
	MeanNewPlayers  float64
	PeakNewPlayers  int64
	DaysPerTier     map[int]int // tier index → number of days it was in effect
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DaysPerTier: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDays = len(st.Days)
	if len(st.Days) > 0 {
		var totalNew int64
		for _, d := range st.Days {
			summary.DaysPerTier[d.TierIndex]++
			totalNew += d.NewPlayers
			if d.NewPlayers > summary.PeakNewPlayers {
				summary.PeakNewPlayers = d.NewPlayers
			}
		}
		summary.MeanNewPlayers = float64(totalNew) / float64(len(st.Days))
	}

	for _, tr := range st.Transitions {
		if tr.Exhausted {
			summary.Exhausted = true
			continue
		}
		summary.TransitionCount++
	}

	return summary
}
