// Package driver runs a sim.Engine on a single goroutine in response to
// start, pause, step and reset commands.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lottery-sim/lottery-sim/sim"
)

// DefaultInterval is the time between automatic steps while started.
const DefaultInterval = 50 * time.Millisecond

// ErrStopped is returned by Send once the Run loop has exited.
var ErrStopped = errors.New("driver stopped")

// Command is an instruction for the Run loop.
type Command int

const (
	// CmdStep simulates exactly one day.
	CmdStep Command = iota
	// CmdStart begins stepping every Interval.
	CmdStart
	// CmdPause stops automatic stepping.
	CmdPause
	// CmdReset restores the engine to its initial state.
	CmdReset
)

func (c Command) String() string {
	switch c {
	case CmdStep:
		return "step"
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdReset:
		return "reset"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand maps a command name to a Command.
func ParseCommand(name string) (Command, error) {
	switch name {
	case "step":
		return CmdStep, nil
	case "start":
		return CmdStart, nil
	case "pause":
		return CmdPause, nil
	case "reset":
		return CmdReset, nil
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Observer receives the results of the loop. Calls are made from the Run
// goroutine, one at a time.
type Observer interface {
	ObserveDay(day sim.DayResult, totals sim.Totals)
	ObserveReset(totals sim.Totals)
}

// Config controls the Run loop.
type Config struct {
	Interval         time.Duration // time between automatic steps (0 = DefaultInterval)
	MaxDays          int64         // pause automatically once this many days have run (0 = no limit)
	PauseOnExhausted bool          // pause automatically when the final tier is exhausted

	// NextSource, when set, supplies the random source for run n (n >= 1)
	// started by the nth CmdReset.
	NextSource func(run int) sim.RandomSource
}

// Driver owns an Engine and serializes every access to it.
type Driver struct {
	engine    *sim.Engine
	observers []Observer
	cfg       Config
	cmds      chan Command
	done      chan struct{}
	run       int // number of resets processed
}

// New creates a Driver. The engine must not be used elsewhere while Run is active.
func New(engine *sim.Engine, cfg Config, observers ...Observer) *Driver {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Driver{
		engine:    engine,
		observers: observers,
		cfg:       cfg,
		cmds:      make(chan Command),
		done:      make(chan struct{}),
	}
}

// Send delivers a command to the Run loop, blocking until it is accepted.
func (d *Driver) Send(ctx context.Context, cmd Command) error {
	select {
	case d.cmds <- cmd:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands until ctx is cancelled. It returns nil on cancellation.
func (d *Driver) Run(ctx context.Context) error {
	defer close(d.done)

	var ticker *time.Ticker
	var tick <-chan time.Time
	pause := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
	}
	defer pause()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-d.cmds:
			logrus.Debugf("driver: %s", cmd)
			switch cmd {
			case CmdStep:
				d.step()
			case CmdStart:
				if ticker != nil {
					continue
				}
				if d.limitReached() {
					logrus.Infof("driver: not starting, %s", d.limitReason())
					continue
				}
				ticker = time.NewTicker(d.cfg.Interval)
				tick = ticker.C
			case CmdPause:
				pause()
			case CmdReset:
				d.reset()
			}
		case <-tick:
			d.step()
			if d.limitReached() {
				logrus.Infof("driver: paused, %s", d.limitReason())
				pause()
			}
		}
	}
}

func (d *Driver) step() {
	day := d.engine.Step()
	totals := d.engine.Totals()
	for _, o := range d.observers {
		o.ObserveDay(day, totals)
	}
}

func (d *Driver) reset() {
	d.run++
	if d.cfg.NextSource != nil {
		d.engine.Reseed(d.cfg.NextSource(d.run))
	}
	d.engine.Reset()
	d.notifyReset()
}

func (d *Driver) notifyReset() {
	totals := d.engine.Totals()
	for _, o := range d.observers {
		o.ObserveReset(totals)
	}
}

func (d *Driver) limitReached() bool {
	if d.cfg.MaxDays > 0 && d.engine.TotalDays() >= d.cfg.MaxDays {
		return true
	}
	return d.cfg.PauseOnExhausted && d.engine.Exhausted()
}

func (d *Driver) limitReason() string {
	if d.cfg.PauseOnExhausted && d.engine.Exhausted() {
		return "final tier exhausted"
	}
	return fmt.Sprintf("day limit %d reached", d.cfg.MaxDays)
}
