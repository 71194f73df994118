package sim

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record_MatchesEngineTotals(t *testing.T) {
	// GIVEN an engine and a metrics collector fed every day
	e := NewEngine(fixedSource{players: MaxNewPlayers})
	m := NewMetrics()

	// WHEN the run goes past the first tier transition
	for e.TierIndex() < 2 {
		m.Record(e.Step())
	}

	// THEN metrics totals agree with the engine
	assert.Equal(t, e.Totals(), m.Totals)
	assert.Len(t, m.TierTransitions, 2)
	assert.Equal(t, MaxNewPlayers, m.PeakNewPlayers)

	// AND per-tier tickets add up to the total
	var tickets, days int64
	for _, ts := range m.PerTier {
		tickets += ts.TicketsIssued
		days += ts.Days
	}
	assert.Equal(t, m.Totals.TicketsIssued, tickets)
	assert.Equal(t, m.Totals.Days, days)
}

func TestMetrics_Record_ExhaustedOnFirstTerminalDay(t *testing.T) {
	m := NewMetrics()
	m.Record(DayResult{Day: 1, TierIndex: 7})
	m.Record(DayResult{Day: 2, TierIndex: 7, Exhausted: true})
	m.Record(DayResult{Day: 3, TierIndex: 7, Exhausted: true})

	assert.True(t, m.Exhausted)
	assert.Equal(t, int64(2), m.ExhaustedOnDay)
}

func TestMetrics_PayoutRatio(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 0.0, m.PayoutRatio(), "no income yet")

	m.Record(DayResult{Day: 1, NewIncome: 20000, NewPayed: 16650})
	assert.InDelta(t, 0.8325, m.PayoutRatio(), 1e-9)
}

func TestSaveResults_WritesJSONFile(t *testing.T) {
	// GIVEN metrics for one recorded day
	m := NewMetrics()
	m.Record(DayResult{Day: 1, NewPlayers: 1000, NewTicketsIssued: 1000, NewWinners: 333, NewIncome: 20000, NewPayed: 16650})

	outputPath := filepath.Join(t.TempDir(), "results.json")

	// WHEN SaveResults is called
	require.NoError(t, m.SaveResults(42, time.Now(), outputPath, false))

	// THEN the JSON file holds the totals
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var output MetricsOutput
	require.NoError(t, json.Unmarshal(data, &output))
	assert.Equal(t, int64(42), output.Seed)
	assert.Equal(t, int64(1), output.TotalDays)
	assert.Equal(t, int64(333), output.TotalWinners)
	assert.Equal(t, int64(20000-16650), output.Profit)
	assert.Len(t, output.PerTier, NumTiers)
}

func TestSaveResults_EmptyPath_NoFile(t *testing.T) {
	m := NewMetrics()
	assert.NoError(t, m.SaveResults(1, time.Now(), "", false))
}

func TestSaveResults_UnwritablePath_ReturnsError(t *testing.T) {
	m := NewMetrics()
	err := m.SaveResults(1, time.Now(), filepath.Join(t.TempDir(), "missing", "results.json"), false)
	assert.Error(t, err)
}

// captureStdout returns everything fn writes to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestSaveResults_Echo_ControlsStdoutJSON(t *testing.T) {
	tests := []struct {
		name     string
		echo     bool
		wantJSON bool
	}{
		{name: "echo prints the results document", echo: true, wantJSON: true},
		{name: "quiet keeps stdout clean", echo: false, wantJSON: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN metrics with one recorded day and a results file
			m := NewMetrics()
			m.Record(DayResult{Day: 1, NewPlayers: 10, NewTicketsIssued: 10, NewWinners: 3, NewIncome: 200, NewPayed: 150})
			outputPath := filepath.Join(t.TempDir(), "results.json")

			// WHEN SaveResults runs
			out := captureStdout(t, func() {
				require.NoError(t, m.SaveResults(7, time.Now(), outputPath, tt.echo))
			})

			// THEN the JSON reaches stdout only when echoed
			if tt.wantJSON {
				assert.Contains(t, out, "=== Simulation Results ===")
				assert.Contains(t, out, `"total_days": 1`)
			} else {
				assert.Empty(t, out)
			}

			// AND the file is written either way
			_, err := os.Stat(outputPath)
			assert.NoError(t, err)
		})
	}
}
