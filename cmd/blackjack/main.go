package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/shygy/terminal-games/internal/config"
	"github.com/shygy/terminal-games/internal/deck"
	"github.com/shygy/terminal-games/internal/game"
	"github.com/shygy/terminal-games/internal/randutil"
	"github.com/shygy/terminal-games/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#1B5E20")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Config  string `short:"c" help:"Path to table config file (HCL)" default:"blackjack.hcl"`
	Decks   int    `short:"d" help:"Number of decks in the shoe (overrides config)"`
	Balance int    `short:"b" help:"Starting balance (overrides config)"`
	Seed    int64  `short:"s" help:"Shuffle seed for reproducible games (0 = random)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Flags win over config file and environment.
	if cli.Decks > 0 {
		cfg.Table.Decks = cli.Decks
	}
	if cli.Balance > 0 {
		cfg.Table.StartingBalance = cli.Balance
	}
	if cli.Seed != 0 {
		cfg.Seed = cli.Seed
	}

	fmt.Print(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	if err := run(cfg); err != nil {
		log.Fatal("Failed to run game", "error", err)
	}

	ctx.Exit(0)
}

func run(cfg *config.Config) error {
	// The TUI owns the terminal, so debug logging goes to a file.
	debugFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := debugFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(debugFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "blackjack",
	})

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting session", "decks", cfg.Table.Decks,
		"balance", cfg.Table.StartingBalance, "seed", seed)

	rules := cfg.Rules()
	shoe := deck.NewShoe(randutil.New(seed), rules.Decks)
	shoe.SetReshuffleThreshold(rules.ReshuffleThreshold)

	ui := tui.NewUI(logger)
	if err := ui.Start(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	// Restore the terminal on Ctrl+C arriving outside the TUI loop.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		if err := ui.Close(); err != nil {
			log.Error("Failed to close interface", "error", err)
		}
		os.Exit(0)
	}()

	session := game.NewSession(shoe, ui.Provider(),
		game.WithSessionRules(rules),
		game.WithSessionEventSink(ui.HandleEvent),
		game.WithSessionLogger(logger),
	)

	balance, err := session.Run()

	if cerr := ui.Close(); cerr != nil {
		log.Error("Failed to close interface", "error", cerr)
	}
	if err != nil {
		return err
	}

	stats := session.Stats()
	logger.Info("session over", "stats", stats.Summary())
	fmt.Printf("Thanks for playing! You ended with %d.\n", balance)
	if stats.Rounds > 0 {
		fmt.Println(stats.Summary())
	}
	return nil
}
