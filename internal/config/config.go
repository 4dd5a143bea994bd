// Package config loads table configuration from an HCL file with
// environment overrides. Precedence, lowest to highest: built-in
// defaults, config file, environment, command-line flags (applied by
// the caller).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/shygy/terminal-games/internal/game"
)

// Environment variable names. A .env file in the working directory is
// loaded first, so local overrides don't need to live in the shell.
const (
	EnvSeed    = "BLACKJACK_SEED"
	EnvDecks   = "BLACKJACK_DECKS"
	EnvBalance = "BLACKJACK_BALANCE"
	EnvLogFile = "BLACKJACK_LOG_FILE"
)

// Config is the full configuration for the blackjack binary.
type Config struct {
	Table TableSettings
	Log   LogSettings

	// Seed is the shuffle seed; 0 means seed from the clock.
	Seed int64
}

// fileConfig is the HCL file shape. Blocks are pointers so both may be
// omitted.
type fileConfig struct {
	Table *TableSettings `hcl:"table,block"`
	Log   *LogSettings   `hcl:"log,block"`
}

// TableSettings are the house rules for the table.
type TableSettings struct {
	Decks              int     `hcl:"decks,optional"`
	ReshuffleThreshold float64 `hcl:"reshuffle_threshold,optional"`
	DealerStandsOn     int     `hcl:"dealer_stands_on,optional"`
	StartingBalance    int     `hcl:"starting_balance,optional"`
	BrokeTopUp         int     `hcl:"broke_top_up,optional"`
	DecisionTimeoutSec int     `hcl:"decision_timeout_seconds,optional"`
}

// LogSettings control the debug log written while the TUI owns the
// terminal.
type LogSettings struct {
	File  string `hcl:"file,optional"`
	Level string `hcl:"level,optional"`
}

// Default returns the built-in configuration: a six-deck table, 100
// starting balance, no decision timeout.
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Table: TableSettings{
			Decks:              rules.Decks,
			ReshuffleThreshold: rules.ReshuffleThreshold,
			DealerStandsOn:     rules.DealerStandsOn,
			StartingBalance:    rules.StartingBalance,
			BrokeTopUp:         rules.BrokeTopUp,
		},
		Log: LogSettings{
			File:  "blackjack.log",
			Level: "info",
		},
	}
}

// Load reads configuration from filename, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); err == nil {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
		}

		var parsed fileConfig
		diags = gohcl.DecodeBody(file.Body, nil, &parsed)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
		}
		applyFile(cfg, &parsed)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays non-zero file values onto the defaults.
func applyFile(cfg *Config, parsed *fileConfig) {
	if t := parsed.Table; t != nil {
		if t.Decks != 0 {
			cfg.Table.Decks = t.Decks
		}
		if t.ReshuffleThreshold != 0 {
			cfg.Table.ReshuffleThreshold = t.ReshuffleThreshold
		}
		if t.DealerStandsOn != 0 {
			cfg.Table.DealerStandsOn = t.DealerStandsOn
		}
		if t.StartingBalance != 0 {
			cfg.Table.StartingBalance = t.StartingBalance
		}
		if t.BrokeTopUp != 0 {
			cfg.Table.BrokeTopUp = t.BrokeTopUp
		}
		if t.DecisionTimeoutSec != 0 {
			cfg.Table.DecisionTimeoutSec = t.DecisionTimeoutSec
		}
	}
	if l := parsed.Log; l != nil {
		if l.File != "" {
			cfg.Log.File = l.File
		}
		if l.Level != "" {
			cfg.Log.Level = l.Level
		}
	}
}

// applyEnv overlays environment variables, loading .env first.
func applyEnv(cfg *Config) error {
	godotenv.Load()

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvDecks); v != "" {
		decks, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvDecks, err)
		}
		cfg.Table.Decks = decks
	}
	if v := os.Getenv(EnvBalance); v != "" {
		balance, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvBalance, err)
		}
		cfg.Table.StartingBalance = balance
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Validate checks the configuration for values the engine cannot play
// under.
func (c *Config) Validate() error {
	if c.Table.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Table.Decks)
	}
	if c.Table.ReshuffleThreshold < 0 || c.Table.ReshuffleThreshold >= 1 {
		return fmt.Errorf("reshuffle_threshold must be in [0, 1), got %g", c.Table.ReshuffleThreshold)
	}
	if c.Table.DealerStandsOn < 2 || c.Table.DealerStandsOn > 21 {
		return fmt.Errorf("dealer_stands_on must be between 2 and 21, got %d", c.Table.DealerStandsOn)
	}
	if c.Table.StartingBalance <= 0 {
		return fmt.Errorf("starting_balance must be positive, got %d", c.Table.StartingBalance)
	}
	if c.Table.BrokeTopUp < 0 {
		return fmt.Errorf("broke_top_up cannot be negative, got %d", c.Table.BrokeTopUp)
	}
	if c.Table.DecisionTimeoutSec < 0 {
		return fmt.Errorf("decision_timeout_seconds cannot be negative, got %d", c.Table.DecisionTimeoutSec)
	}
	return nil
}

// Rules converts the configuration into engine rules.
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:              c.Table.Decks,
		ReshuffleThreshold: c.Table.ReshuffleThreshold,
		DealerStandsOn:     c.Table.DealerStandsOn,
		StartingBalance:    c.Table.StartingBalance,
		BrokeTopUp:         c.Table.BrokeTopUp,
		DecisionTimeout:    time.Duration(c.Table.DecisionTimeoutSec) * time.Second,
	}
}
