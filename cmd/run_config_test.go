package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadRunConfig_OverridesDefaults(t *testing.T) {
	// GIVEN a preset that sets some fields
	path := writeConfig(t, "seed: 7\ndays: 30\ntrace: days\ninterval: 10ms\n")

	// WHEN loaded
	cfg, err := LoadRunConfig(path)

	// THEN set fields are taken from the file and the rest keep their defaults
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, int64(30), cfg.Days)
	assert.Equal(t, "days", cfg.Trace)
	assert.Equal(t, DefaultRunConfig().MaxDays, cfg.MaxDays)
	assert.Equal(t, "₴", cfg.Currency)

	d, err := cfg.StepInterval()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, d)
}

func TestLoadRunConfig_UnknownKey_Rejected(t *testing.T) {
	// GIVEN a preset with a typo
	path := writeConfig(t, "sead: 7\n")

	// WHEN loaded
	_, err := LoadRunConfig(path)

	// THEN strict parsing fails
	assert.Error(t, err)
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr bool
	}{
		{"defaults", func(c *RunConfig) {}, false},
		{"negative days", func(c *RunConfig) { c.Days = -1 }, true},
		{"zero max days", func(c *RunConfig) { c.MaxDays = 0 }, true},
		{"unknown trace", func(c *RunConfig) { c.Trace = "verbose" }, true},
		{"empty trace", func(c *RunConfig) { c.Trace = "" }, false},
		{"bad interval", func(c *RunConfig) { c.Interval = "soon" }, true},
		{"negative interval", func(c *RunConfig) { c.Interval = "-5ms" }, true},
		{"empty interval", func(c *RunConfig) { c.Interval = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
