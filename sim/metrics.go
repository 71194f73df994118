// Tracks run-wide and per-tier statistics of a lottery simulation.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// TierStats aggregates the days a tier was in effect.
type TierStats struct {
	Days          int64 `json:"days"`
	TicketsIssued int64 `json:"tickets_issued"`
	Winners       int64 `json:"winners"`
	Income        int64 `json:"income"`
	Payed         int64 `json:"payed"`
}

// Metrics aggregates statistics about the simulation for final reporting.
// It is fed by Record and is independent of the Engine's own counters.
type Metrics struct {
	Totals          Totals
	PerTier         []TierStats // indexed by tier; sized to NumTiers
	PeakNewPlayers  int64       // max NewPlayers over all days
	TierTransitions []int64     // day numbers on which the tier advanced
	Exhausted       bool
	ExhaustedOnDay  int64 // first day the engine reported exhaustion; 0 if never
}

// NewMetrics returns an empty Metrics with per-tier slots allocated.
func NewMetrics() *Metrics {
	return &Metrics{
		PerTier:         make([]TierStats, NumTiers),
		TierTransitions: make([]int64, 0),
	}
}

// Record folds one day into the aggregates.
func (m *Metrics) Record(day DayResult) {
	m.Totals.apply(day)

	if day.TierIndex >= 0 && day.TierIndex < len(m.PerTier) {
		ts := &m.PerTier[day.TierIndex]
		ts.Days++
		ts.TicketsIssued += day.NewTicketsIssued
		ts.Winners += day.NewWinners
		ts.Income += day.NewIncome
		ts.Payed += day.NewPayed
	}
	if day.NewPlayers > m.PeakNewPlayers {
		m.PeakNewPlayers = day.NewPlayers
	}
	if day.TierAdvanced {
		m.TierTransitions = append(m.TierTransitions, day.Day)
	}
	if day.Exhausted && !m.Exhausted {
		m.Exhausted = true
		m.ExhaustedOnDay = day.Day
	}
}

// ObserveDay records the day; it lets Metrics serve as a driver observer.
func (m *Metrics) ObserveDay(day DayResult, _ Totals) {
	m.Record(day)
}

// ObserveReset discards everything recorded so far.
func (m *Metrics) ObserveReset(_ Totals) {
	*m = *NewMetrics()
}

// PayoutRatio returns total payed divided by total income, or 0 before any income.
func (m *Metrics) PayoutRatio() float64 {
	if m.Totals.Income == 0 {
		return 0
	}
	return float64(m.Totals.Payed) / float64(m.Totals.Income)
}

// MetricsOutput is the JSON document written by SaveResults.
type MetricsOutput struct {
	Seed             int64       `json:"seed"`
	TotalDays        int64       `json:"total_days"`
	TotalPlayers     int64       `json:"total_players"`
	TotalWinners     int64       `json:"total_winners"`
	TotalIncome      int64       `json:"total_income"`
	TotalPayed       int64       `json:"total_payed"`
	TotalTickets     int64       `json:"total_tickets_issued"`
	Profit           int64       `json:"profit"`
	PayoutRatio      float64     `json:"payout_ratio"`
	PeakNewPlayers   int64       `json:"peak_new_players"`
	TierTransitions  []int64     `json:"tier_transition_days"`
	PerTier          []TierStats `json:"per_tier"`
	Exhausted        bool        `json:"exhausted"`
	ExhaustedOnDay   int64       `json:"exhausted_on_day,omitempty"`
	SimulationTimeMs float64     `json:"simulation_time_ms"`
}

func (m *Metrics) output(seed int64, startTime time.Time) MetricsOutput {
	return MetricsOutput{
		Seed:             seed,
		TotalDays:        m.Totals.Days,
		TotalPlayers:     m.Totals.Players,
		TotalWinners:     m.Totals.Winners,
		TotalIncome:      m.Totals.Income,
		TotalPayed:       m.Totals.Payed,
		TotalTickets:     m.Totals.TicketsIssued,
		Profit:           m.Totals.Income - m.Totals.Payed,
		PayoutRatio:      m.PayoutRatio(),
		PeakNewPlayers:   m.PeakNewPlayers,
		TierTransitions:  m.TierTransitions,
		PerTier:          m.PerTier,
		Exhausted:        m.Exhausted,
		ExhaustedOnDay:   m.ExhaustedOnDay,
		SimulationTimeMs: float64(time.Since(startTime).Microseconds()) / 1000,
	}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Days                 : %d\n", m.Totals.Days)
	fmt.Printf("Players              : %d\n", m.Totals.Players)
	fmt.Printf("Tickets Issued       : %d\n", m.Totals.TicketsIssued)
	fmt.Printf("Winners              : %d\n", m.Totals.Winners)
	fmt.Printf("Income               : %d\n", m.Totals.Income)
	fmt.Printf("Payed                : %d\n", m.Totals.Payed)
	if m.Totals.Days > 0 {
		fmt.Printf("Payout Ratio         : %.4f\n", m.PayoutRatio())
		fmt.Printf("Peak New Players     : %d\n", m.PeakNewPlayers)
		fmt.Printf("Tier Transitions     : %v\n", m.TierTransitions)
	}
	if m.Exhausted {
		fmt.Printf("Exhausted On Day     : %d\n", m.ExhaustedOnDay)
	}
}

// SaveResults prints the JSON results to stdout when echo is set and, when
// outputFilePath is non-empty, writes them to that file.
func (m *Metrics) SaveResults(seed int64, startTime time.Time, outputFilePath string, echo bool) error {
	out := m.output(seed, startTime)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	if echo {
		fmt.Println("=== Simulation Results ===")
		fmt.Println(string(data))
	}

	if outputFilePath == "" {
		return nil
	}
	if err := os.WriteFile(outputFilePath, data, 0644); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", outputFilePath, err)
	}
	logrus.Infof("Metrics written to: %s", outputFilePath)
	return nil
}
