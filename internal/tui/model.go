package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/shygy/terminal-games/internal/deck"
)

// InputResult carries one line of player input from the Bubble Tea loop
// to whoever is blocked waiting for it.
type InputResult struct {
	Text string
	Quit bool
}

// QuitMsg signals the model to shut down.
type QuitMsg struct{}

// Model is the Bubble Tea model for the blackjack table: a scrolling
// game log, a status sidebar, and a single input line whose prompt
// changes with the decision being asked.
type Model struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	inputResult chan InputResult
	quitSignal  chan struct{}
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Display state driven by round events
	prompt    string
	balance   int
	bet       int
	shoeSize  int
	hands     []string // rendered player hands
	dealer    string   // rendered dealer hand
	roundOver bool

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewModel creates a TUI model.
func NewModel(logger *log.Logger) *Model {
	return NewModelWithOptions(logger, false)
}

// NewModelWithOptions creates a TUI model, optionally in test mode.
// Test mode captures log lines for assertions and skips viewport work.
func NewModelWithOptions(logger *log.Logger, testMode bool) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet <amount>"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 64
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		inputResult: make(chan InputResult, 1),
		quitSignal:  make(chan struct{}, 1),
		focusedPane: 1,
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

func (m *Model) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.deliver(InputResult{Quit: true})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				text := strings.TrimSpace(m.actionInput.Value())
				m.deliver(InputResult{Text: text})
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// deliver hands an input line to the waiting provider without blocking
// the UI loop.
func (m *Model) deliver(result InputResult) {
	select {
	case m.inputResult <- result:
	default:
		// Nobody is waiting; drop stray input.
	}
}

// WaitForInput blocks until the player submits a line or quits.
func (m *Model) WaitForInput() InputResult {
	return <-m.inputResult
}

// InjectInput programmatically submits input (test mode only).
func (m *Model) InjectInput(text string) error {
	if !m.testMode {
		return fmt.Errorf("input injection only available in test mode")
	}
	select {
	case m.inputResult <- InputResult{Text: text}:
		return nil
	default:
		return fmt.Errorf("input channel full")
	}
}

// SendQuitSignal asks the UI loop to shut down gracefully.
func (m *Model) SendQuitSignal() {
	select {
	case m.quitSignal <- struct{}{}:
	default:
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionWidth := max(m.width-2, 1)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(actionWidth).
		Height(max(actionHeight-2, 1))
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	sidebarHeight := max(m.height-actionHeight-4, 1)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(sidebarHeight)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	logWidth := max(m.width-sidebarWidth-4, 1)
	logHeight := max(m.height-actionHeight-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight

	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the bankroll and table state.
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Balance: %d", m.balance)))
	if m.bet > 0 {
		content.WriteString("\n")
		content.WriteString(WarningStyle.Render(fmt.Sprintf("Bet: %d", m.bet)))
	}
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d cards", m.shoeSize)))
	content.WriteString("\n\n")

	if m.dealer != "" {
		content.WriteString(InfoStyle.Render("Dealer:"))
		content.WriteString("\n  " + m.dealer + "\n")
	}
	for i, hand := range m.hands {
		label := "You:"
		if len(m.hands) > 1 {
			label = fmt.Sprintf("Hand %d:", i+1)
		}
		content.WriteString(InfoStyle.Render(label))
		content.WriteString("\n  " + hand + "\n")
	}

	return content.String()
}

// renderActionPane shows the current prompt and the input line.
func (m *Model) renderActionPane() string {
	var content strings.Builder

	if m.prompt != "" {
		content.WriteString(ActionsStyle.Render(m.prompt))
		content.WriteString("\n")
	}
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// AddLogEntry appends a line to the game log and scrolls to it.
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog empties the game log between rounds.
func (m *Model) ClearLog() {
	m.gameLog = []string{}
	m.logViewport.SetContent("")
}

// SetPrompt sets the action-pane prompt and input placeholder.
func (m *Model) SetPrompt(prompt, placeholder string) {
	m.prompt = prompt
	m.actionInput.Placeholder = placeholder
}

// SetStatus updates the sidebar's balance, bet, and shoe size.
func (m *Model) SetStatus(balance, bet, shoeSize int) {
	m.balance = balance
	m.bet = bet
	m.shoeSize = shoeSize
}

// SetDealer sets the rendered dealer hand in the sidebar.
func (m *Model) SetDealer(rendered string) {
	m.dealer = rendered
}

// SetHands sets the rendered player hands in the sidebar.
func (m *Model) SetHands(rendered []string) {
	m.hands = rendered
}

// GetCapturedLog returns the captured log lines (test mode only).
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode reports whether the model captures output for tests.
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// FormatCards renders cards with suit-appropriate colors.
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}
	var formatted []string
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
