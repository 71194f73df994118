package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lottery-sim/lottery-sim/sim/driver"
	"github.com/lottery-sim/lottery-sim/sim/trace"
)

// RunConfig is a run preset, loadable from a YAML file with --config.
// Flags set explicitly on the command line override preset values.
type RunConfig struct {
	Seed     int64  `yaml:"seed"`
	Days     int64  `yaml:"days"`     // 0 = run until the final tier is exhausted
	MaxDays  int64  `yaml:"max_days"` // hard cap on simulated days
	Trace    string `yaml:"trace"`    // none | transitions | days
	Results  string `yaml:"results"`  // JSON results path; empty = stdout only
	Locale   string `yaml:"locale"`
	Currency string `yaml:"currency"`
	Interval string `yaml:"interval"` // step interval for play, e.g. "50ms"
}

// DefaultRunConfig returns the preset used when no --config is given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Seed:     42,
		MaxDays:  100000,
		Trace:    string(trace.TraceLevelNone),
		Locale:   "en",
		Currency: "₴",
		Interval: driver.DefaultInterval.String(),
	}
}

// LoadRunConfig reads a YAML preset on top of DefaultRunConfig.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c RunConfig) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("days must be non-negative, got %d", c.Days)
	}
	if c.MaxDays <= 0 {
		return fmt.Errorf("max_days must be positive, got %d", c.MaxDays)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	if _, err := c.StepInterval(); err != nil {
		return err
	}
	return nil
}

// StepInterval parses Interval; empty means driver.DefaultInterval.
func (c RunConfig) StepInterval() (time.Duration, error) {
	if c.Interval == "" {
		return driver.DefaultInterval, nil
	}
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("parsing interval %q: %w", c.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %s", d)
	}
	return d, nil
}

// resolveRunConfig loads the preset named by --config (if any) and applies
// every flag the user set explicitly.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if configPath != "" {
		loaded, err := LoadRunConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("max-days") {
		cfg.MaxDays = maxDays
	}
	if flags.Changed("trace") {
		cfg.Trace = traceLevel
	}
	if flags.Changed("results") {
		cfg.Results = resultsPath
	}
	if flags.Changed("locale") {
		cfg.Locale = locale
	}
	if flags.Changed("currency") {
		cfg.Currency = currency
	}
	if flags.Changed("interval") {
		cfg.Interval = interval.String()
	}
	return cfg, cfg.Validate()
}
