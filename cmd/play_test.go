package cmd

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottery-sim/lottery-sim/sim"
	"github.com/lottery-sim/lottery-sim/sim/driver"
)

func TestReadCommands_ForwardsToDriver(t *testing.T) {
	// GIVEN a running driver feeding a metrics observer
	metrics := sim.NewMetrics()
	engine := sim.NewEngine(sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemPlayers))
	d := driver.New(engine, driver.Config{}, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- d.Run(ctx) }()

	// WHEN a scripted session is read
	in := strings.NewReader("step\n\nSTEP\njump\nhelp\nstep\nquit\nstep\n")
	var out bytes.Buffer
	err := readCommands(ctx, in, &out, d)
	require.NoError(t, err)
	cancel()
	require.NoError(t, <-runErr)

	// THEN the three steps before quit were simulated
	assert.Equal(t, int64(3), engine.TotalDays())
	assert.Equal(t, int64(3), metrics.Totals.Days)
	assert.Contains(t, out.String(), `unknown command "jump"`)
	assert.Contains(t, out.String(), playHelp)
}

func TestReadCommands_EndOfInput_Returns(t *testing.T) {
	engine := sim.NewEngine(sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemPlayers))
	d := driver.New(engine, driver.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- d.Run(ctx) }()

	err := readCommands(ctx, strings.NewReader("step\nreset\n"), &bytes.Buffer{}, d)
	require.NoError(t, err)
	cancel()
	require.NoError(t, <-runErr)

	assert.Equal(t, sim.Totals{}, engine.Totals())
}

// dayEvents signals every observed day.
type dayEvents chan sim.DayResult

func (c dayEvents) ObserveDay(day sim.DayResult, _ sim.Totals) { c <- day }
func (c dayEvents) ObserveReset(sim.Totals) {}

func TestPlayDriverConfig(t *testing.T) {
	tests := []struct {
		name         string
		days         int64
		maxDays      int64
		interval     string
		wantLimit    int64
		wantInterval time.Duration
	}{
		{name: "no day count falls back to max days", maxDays: 500, interval: "10ms", wantLimit: 500, wantInterval: 10 * time.Millisecond},
		{name: "day count is the limit", days: 3, maxDays: 500, interval: "1s", wantLimit: 3, wantInterval: time.Second},
		{name: "empty interval uses the default", days: 9, maxDays: 500, wantLimit: 9, wantInterval: driver.DefaultInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			cfg.Days, cfg.MaxDays, cfg.Interval = tt.days, tt.maxDays, tt.interval

			got := playDriverConfig(cfg, sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)))

			assert.Equal(t, tt.wantLimit, got.MaxDays)
			assert.Equal(t, tt.wantInterval, got.Interval)
			assert.True(t, got.PauseOnExhausted)
			assert.NotNil(t, got.NextSource)
		})
	}
}

func TestPlaySession_DaysPreset_PausesAtLimit(t *testing.T) {
	// GIVEN a play session whose preset asks for 3 days
	cfg := DefaultRunConfig()
	cfg.Days = 3
	cfg.Interval = "1ms"
	events := make(dayEvents, 64)
	d, engine := newPlaySession(cfg, events)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- d.Run(ctx) }()

	// WHEN started
	require.NoError(t, d.Send(ctx, driver.CmdStart))
	for i := 0; i < 3; i++ {
		select {
		case <-events:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for day %d", i+1)
		}
	}

	// THEN no day past the limit is simulated
	time.Sleep(30 * time.Millisecond)
	cancel()
	require.NoError(t, <-runErr)
	assert.Equal(t, int64(3), engine.TotalDays())
	assert.Empty(t, events)
}

func TestPlaySession_Reset_ReproducibleAcrossSessions(t *testing.T) {
	// GIVEN a scripted session that resets after two days
	script := "step\nstep\nreset\nstep\nstep\nquit\n"
	play := func() sim.Totals {
		metrics := sim.NewMetrics()
		cfg := DefaultRunConfig()
		cfg.Seed = 11
		d, _ := newPlaySession(cfg, metrics)

		ctx, cancel := context.WithCancel(context.Background())
		runErr := make(chan error, 1)
		go func() { runErr <- d.Run(ctx) }()
		require.NoError(t, readCommands(ctx, strings.NewReader(script), &bytes.Buffer{}, d))
		cancel()
		require.NoError(t, <-runErr)
		return metrics.Totals
	}

	// WHEN it is played twice with the same seed
	a, b := play(), play()

	// THEN the run after the reset is identical and follows the run 1 source
	assert.Equal(t, a, b)
	want := sim.NewEngine(sim.NewPartitionedRNG(sim.NewSimulationKey(11)).ForSubsystem(sim.SubsystemRun(1)))
	want.Step()
	want.Step()
	assert.Equal(t, want.Totals(), a)
}

func TestReadCommands_Cancelled_ReturnsWhileReaderBlocks(t *testing.T) {
	// GIVEN an input that never produces a line
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	d := driver.New(sim.NewEngine(sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemPlayers)), driver.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- readCommands(ctx, pr, &bytes.Buffer{}, d) }()

	// WHEN the session is cancelled
	cancel()

	// THEN readCommands returns without waiting for input
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("readCommands did not return after cancellation")
	}
}
