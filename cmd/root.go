package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lottery-sim/lottery-sim/sim"
	"github.com/lottery-sim/lottery-sim/sim/driver"
	"github.com/lottery-sim/lottery-sim/sim/trace"
)

var (
	// CLI flags shared by run and play
	seed       int64  // Seed for the new-player draws
	logLevel   string // Log verbosity level
	configPath string // YAML run preset
	locale     string // Locale for digit grouping
	currency   string // Currency symbol appended to money amounts
	days       int64  // Days to simulate (0 = until the final tier is exhausted)
	maxDays    int64  // Hard cap on simulated days

	// CLI flags for run
	traceLevel  string // Trace verbosity
	resultsPath string // JSON results file
	quiet       bool   // Only print the final report

	// CLI flags for play
	interval time.Duration // Time between automatic steps
)

const logLevelUsage = "Log level (trace, debug, info, warn, error, fatal, panic)"

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lottery-sim",
	Short: "Day-by-day simulator for a tiered lottery economy",
}

// setupLogging parses and applies the --log level.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runSimulation steps a fresh engine until the configured stop condition and
// feeds every day to the observers. It returns the engine for inspection.
func runSimulation(cfg RunConfig, observers ...driver.Observer) *sim.Engine {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	engine := sim.NewEngine(rng.ForSubsystem(sim.SubsystemPlayers))

	for {
		if cfg.Days > 0 && engine.TotalDays() >= cfg.Days {
			break
		}
		if cfg.Days == 0 && engine.Exhausted() {
			break
		}
		if engine.TotalDays() >= cfg.MaxDays {
			logrus.Warnf("Stopping at max days %d before the requested end", cfg.MaxDays)
			break
		}
		day := engine.Step()
		totals := engine.Totals()
		for _, o := range observers {
			o.ObserveDay(day, totals)
		}
	}
	return engine
}

// printTraceSummary prints the trace summary when tracing is enabled.
func printTraceSummary(st *trace.SimulationTrace) {
	if st.Config.Level == trace.TraceLevelNone || st.Config.Level == "" {
		return
	}
	summary := trace.Summarize(st)
	fmt.Println("=== Trace Summary ===")
	fmt.Printf("Traced Days          : %d\n", summary.TotalDays)
	fmt.Printf("Tier Transitions     : %d\n", summary.TransitionCount)
	fmt.Printf("Exhausted            : %v\n", summary.Exhausted)
	if summary.TotalDays > 0 {
		fmt.Printf("Mean New Players     : %.2f\n", summary.MeanNewPlayers)
		fmt.Printf("Peak New Players     : %d\n", summary.PeakNewPlayers)
		for tier := 0; tier < sim.NumTiers; tier++ {
			if n, ok := summary.DaysPerTier[tier]; ok {
				fmt.Printf("  tier %d             : %d days\n", tier, n)
			}
		}
	}
	for _, tr := range st.Transitions {
		if tr.Exhausted {
			fmt.Printf("  day %d: tier %d exhausted at %d tickets\n", tr.Day, tr.FromTier, tr.CumulativeTotal)
			continue
		}
		fmt.Printf("  day %d: tier %d -> %d at %d tickets\n", tr.Day, tr.FromTier, tr.ToTier, tr.CumulativeTotal)
	}
}

// runCmd executes a batch simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lottery simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}

		logrus.Infof("Starting simulation with seed=%d, days=%d, max-days=%d, trace=%s",
			cfg.Seed, cfg.Days, cfg.MaxDays, cfg.Trace)

		startTime := time.Now()

		metrics := sim.NewMetrics()
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(cfg.Trace)})
		observers := []driver.Observer{metrics, traceObserver{st: st}}
		if !quiet {
			renderer, err := NewTableRenderer(os.Stdout, cfg.Locale, cfg.Currency)
			if err != nil {
				logrus.Fatalf("Invalid locale: %v", err)
			}
			renderer.RenderTiers()
			fmt.Println()
			observers = append(observers, renderer)
		}

		engine := runSimulation(cfg, observers...)

		metrics.Print()
		printTraceSummary(st)
		if err := metrics.SaveResults(cfg.Seed, startTime, cfg.Results, !quiet); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}

		logrus.Infof("Simulation complete after %d days (tier %d, exhausted=%v).",
			engine.TotalDays(), engine.TierIndex(), engine.Exhausted())
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultRunConfig()

	for _, c := range []*cobra.Command{runCmd, playCmd} {
		c.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random new-player draws")
		c.Flags().StringVar(&logLevel, "log", "error", logLevelUsage)
		c.Flags().StringVar(&configPath, "config", "", "Path to a YAML run preset")
		c.Flags().StringVar(&locale, "locale", defaults.Locale, "Locale for digit grouping (BCP 47)")
		c.Flags().StringVar(&currency, "currency", defaults.Currency, "Currency symbol for money amounts")
	}

	for _, c := range []*cobra.Command{runCmd, playCmd} {
		c.Flags().Int64Var(&days, "days", defaults.Days, "Days to simulate (0 = until the final tier is exhausted)")
		c.Flags().Int64Var(&maxDays, "max-days", defaults.MaxDays, "Hard cap on simulated days")
	}
	runCmd.Flags().StringVar(&traceLevel, "trace", defaults.Trace, "Trace level (none, transitions, days)")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "File to write JSON results to")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Only print the final report")

	playCmd.Flags().DurationVar(&interval, "interval", driver.DefaultInterval, "Time between automatic steps after 'start'")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tiersCmd)
}
