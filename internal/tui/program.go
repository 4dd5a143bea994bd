package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/shygy/terminal-games/internal/game"
)

// UI owns the Bubble Tea program and exposes the two engine boundaries:
// an input provider and an event sink. The program runs on its own
// goroutine; the game session drives it through channels.
type UI struct {
	model    *Model
	program  *tea.Program
	provider *Provider
	sink     *Sink
	logger   *log.Logger
}

// NewUI creates the TUI and its boundary adapters.
func NewUI(logger *log.Logger) *UI {
	model := NewModel(logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	return &UI{
		model:    model,
		program:  program,
		provider: NewProvider(model, logger),
		sink:     NewSink(model, logger),
		logger:   logger,
	}
}

// Start launches the UI loop on its own goroutine.
func (ui *UI) Start() error {
	go func() {
		if _, err := ui.program.Run(); err != nil {
			fmt.Printf("Error running TUI: %v\n", err)
		}
	}()
	return nil
}

// Close shuts the UI down and restores the terminal.
func (ui *UI) Close() error {
	if ui.program != nil {
		ui.model.SendQuitSignal()
		ui.program.Quit()
		ui.program.Wait()
	}
	return nil
}

// Provider returns the input boundary for the session.
func (ui *UI) Provider() game.InputProvider {
	return ui.provider
}

// HandleEvent forwards an engine event to the sink.
func (ui *UI) HandleEvent(e game.Event) {
	ui.sink.HandleEvent(e)
}
