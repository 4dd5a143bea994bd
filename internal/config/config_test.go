package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Table.Decks)
	assert.Equal(t, 0.2, cfg.Table.ReshuffleThreshold)
	assert.Equal(t, 17, cfg.Table.DealerStandsOn)
	assert.Equal(t, 100, cfg.Table.StartingBalance)
	assert.Equal(t, 50, cfg.Table.BrokeTopUp)
	assert.Equal(t, "blackjack.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
table {
  decks            = 2
  starting_balance = 500

  decision_timeout_seconds = 30
}

log {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Table.Decks)
	assert.Equal(t, 500, cfg.Table.StartingBalance)
	assert.Equal(t, 30, cfg.Table.DecisionTimeoutSec)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset fields keep their defaults.
	assert.Equal(t, 17, cfg.Table.DealerStandsOn)
	assert.Equal(t, "blackjack.log", cfg.Log.File)
}

func TestLoadPartialFileKeepsOtherBlockDefaults(t *testing.T) {
	path := writeConfigFile(t, `
log {
  file = "debug.log"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug.log", cfg.Log.File)
	assert.Equal(t, 6, cfg.Table.Decks)
}

func TestLoadInvalidSyntax(t *testing.T) {
	path := writeConfigFile(t, `table { decks = `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
table {
  decks = 2
}
`)

	t.Setenv(EnvDecks, "4")
	t.Setenv(EnvSeed, "12345")
	t.Setenv(EnvBalance, "250")
	t.Setenv(EnvLogFile, "env.log")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Table.Decks)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.Equal(t, 250, cfg.Table.StartingBalance)
	assert.Equal(t, "env.log", cfg.Log.File)
}

func TestEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvSeed, "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSeed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(c *Config) {}, ""},
		{"zero decks", func(c *Config) { c.Table.Decks = 0 }, "decks"},
		{"threshold of one", func(c *Config) { c.Table.ReshuffleThreshold = 1 }, "reshuffle_threshold"},
		{"negative threshold", func(c *Config) { c.Table.ReshuffleThreshold = -0.1 }, "reshuffle_threshold"},
		{"dealer stands past 21", func(c *Config) { c.Table.DealerStandsOn = 22 }, "dealer_stands_on"},
		{"zero balance", func(c *Config) { c.Table.StartingBalance = 0 }, "starting_balance"},
		{"negative top-up", func(c *Config) { c.Table.BrokeTopUp = -1 }, "broke_top_up"},
		{"negative timeout", func(c *Config) { c.Table.DecisionTimeoutSec = -5 }, "decision_timeout_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRulesConversion(t *testing.T) {
	cfg := Default()
	cfg.Table.DecisionTimeoutSec = 45

	rules := cfg.Rules()
	assert.Equal(t, 6, rules.Decks)
	assert.Equal(t, 0.2, rules.ReshuffleThreshold)
	assert.Equal(t, 17, rules.DealerStandsOn)
	assert.Equal(t, 100, rules.StartingBalance)
	assert.Equal(t, 50, rules.BrokeTopUp)
	assert.Equal(t, 45*time.Second, rules.DecisionTimeout)
}
