package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/shygy/terminal-games/internal/game"
)

// Provider adapts the TUI into the engine's InputProvider boundary.
// Each decision point sets a prompt, blocks on the input channel, and
// validates what the player typed; invalid input re-prompts without
// reaching the engine. Typing quit/q/exit at any prompt returns
// game.ErrQuit.
type Provider struct {
	model  *Model
	logger *log.Logger
}

// NewProvider creates a provider over the given model.
func NewProvider(model *Model, logger *log.Logger) *Provider {
	return &Provider{
		model:  model,
		logger: logger.WithPrefix("input"),
	}
}

func isQuitWord(s string) bool {
	switch s {
	case "quit", "q", "exit":
		return true
	}
	return false
}

// ask blocks for one line of input, normalised to lower case fields.
func (p *Provider) ask(prompt, placeholder string) ([]string, error) {
	p.model.SetPrompt(prompt, placeholder)
	result := p.model.WaitForInput()
	if result.Quit {
		return nil, game.ErrQuit
	}
	fields := strings.Fields(strings.ToLower(result.Text))
	if len(fields) > 0 && isQuitWord(fields[0]) {
		return nil, game.ErrQuit
	}
	return fields, nil
}

// BetAmount prompts until a positive bet within the balance is entered.
func (p *Provider) BetAmount(balance int) (int, error) {
	for {
		fields, err := p.ask(
			fmt.Sprintf("You have %d. How much would you like to bet?", balance),
			"bet amount")
		if err != nil {
			return 0, err
		}
		if len(fields) == 0 {
			continue
		}
		// Accept both "25" and "bet 25".
		raw := fields[0]
		if raw == "bet" && len(fields) > 1 {
			raw = fields[1]
		}
		amount, err := strconv.Atoi(raw)
		if err != nil {
			p.model.AddLogEntry(ErrorStyle.Render("Please enter a valid number."))
			continue
		}
		if amount <= 0 {
			p.model.AddLogEntry(ErrorStyle.Render("Please enter a positive bet amount."))
			continue
		}
		if amount > balance {
			p.model.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("You don't have enough. You have %d.", balance)))
			continue
		}
		return amount, nil
	}
}

// yesNo prompts until y or n is entered.
func (p *Provider) yesNo(prompt string) (bool, error) {
	for {
		fields, err := p.ask(prompt, "y/n")
		if err != nil {
			return false, err
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			p.model.AddLogEntry(ErrorStyle.Render("Invalid choice. Please enter 'y' or 'n'."))
		}
	}
}

// InsuranceChoice asks whether to take insurance.
func (p *Provider) InsuranceChoice(cost int) (bool, error) {
	return p.yesNo(fmt.Sprintf("Dealer is showing an Ace. Insurance costs %d. Take it? (y/n)", cost))
}

// SplitChoice asks whether to split the pair.
func (p *Provider) SplitChoice(cost int) (bool, error) {
	return p.yesNo(fmt.Sprintf("You have a pair. Split for another %d? (y/n)", cost))
}

// PlayerAction asks for hit, stand, or double on the given hand.
func (p *Provider) PlayerAction(handIndex int, hand game.Hand, canDouble bool) (game.Action, error) {
	prompt := fmt.Sprintf("Your hand: %s (%d). Hit or Stand? (h/s)", hand, hand.Value())
	placeholder := "h/s"
	if canDouble {
		prompt = fmt.Sprintf("Your hand: %s (%d). Hit, Stand, or Double Down? (h/s/d)", hand, hand.Value())
		placeholder = "h/s/d"
	}

	for {
		fields, err := p.ask(prompt, placeholder)
		if err != nil {
			return 0, err
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "h", "hit":
			return game.ActionHit, nil
		case "s", "stand":
			return game.ActionStand, nil
		case "d", "double":
			if canDouble {
				return game.ActionDouble, nil
			}
			p.model.AddLogEntry(ErrorStyle.Render("Double down is not available on this hand."))
		default:
			p.model.AddLogEntry(ErrorStyle.Render("Invalid choice."))
		}
	}
}

// PlayAgain asks whether to start another round.
func (p *Provider) PlayAgain(balance int) (bool, error) {
	again, err := p.yesNo(fmt.Sprintf("You have %d. Play again? (y/n)", balance))
	if err != nil {
		return false, err
	}
	if again {
		p.model.ClearLog()
	}
	return again, nil
}

// ConfirmQuit double-checks before leaving the table.
func (p *Provider) ConfirmQuit() (bool, error) {
	ok, err := p.yesNo("Leave the table? Bets already staked stay staked. (y/n)")
	if err == game.ErrQuit {
		// Quitting out of the confirmation counts as confirming.
		return true, nil
	}
	return ok, err
}
