package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lottery-sim/lottery-sim/sim"
	"github.com/lottery-sim/lottery-sim/sim/driver"
)

const playHelp = "commands: start, pause, step, reset, quit"

// readCommands forwards commands read line by line from in to d until quit,
// end of input, or cancellation of ctx.
func readCommands(ctx context.Context, in io.Reader, out io.Writer, d *driver.Driver) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	// A Scan blocked on a terminal cannot be interrupted; on cancellation this
	// goroutine stays parked until the next line or process exit.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			word := strings.ToLower(strings.TrimSpace(line))
			switch word {
			case "":
				continue
			case "quit", "exit", "q":
				return nil
			case "help", "?":
				fmt.Fprintln(out, playHelp)
				continue
			}
			c, err := driver.ParseCommand(word)
			if err != nil {
				fmt.Fprintf(out, "%v (%s)\n", err, playHelp)
				continue
			}
			if err := d.Send(ctx, c); err != nil {
				if errors.Is(err, driver.ErrStopped) || errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

// playDriverConfig maps a run preset onto the interactive driver. A positive
// Days is the day limit; otherwise MaxDays caps the session.
func playDriverConfig(cfg RunConfig, rng *sim.PartitionedRNG) driver.Config {
	stepInterval, err := cfg.StepInterval()
	if err != nil {
		stepInterval = driver.DefaultInterval
	}
	limit := cfg.MaxDays
	if cfg.Days > 0 {
		limit = cfg.Days
	}
	return driver.Config{
		Interval:         stepInterval,
		MaxDays:          limit,
		PauseOnExhausted: true,
		NextSource: func(run int) sim.RandomSource {
			return rng.ForSubsystem(sim.SubsystemRun(run))
		},
	}
}

// newPlaySession builds the engine and driver for an interactive session.
// The first run draws from SubsystemPlayers; run n after a reset draws from
// SubsystemRun(n).
func newPlaySession(cfg RunConfig, observers ...driver.Observer) (*driver.Driver, *sim.Engine) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	engine := sim.NewEngine(rng.ForSubsystem(sim.SubsystemPlayers))
	return driver.New(engine, playDriverConfig(cfg, rng), observers...), engine
}

// playCmd drives the simulation interactively from stdin
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Step, start, pause and reset the simulation interactively",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		renderer, err := NewTableRenderer(os.Stdout, cfg.Locale, cfg.Currency)
		if err != nil {
			logrus.Fatalf("Invalid locale: %v", err)
		}
		metrics := sim.NewMetrics()

		d, _ := newPlaySession(cfg, renderer, metrics)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		renderer.RenderTiers()
		fmt.Println(playHelp)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return d.Run(gctx) })
		g.Go(func() error {
			defer cancel()
			return readCommands(gctx, os.Stdin, os.Stdout, d)
		})
		if err := g.Wait(); err != nil {
			logrus.Fatalf("Interactive session failed: %v", err)
		}

		metrics.Print()
	},
}
