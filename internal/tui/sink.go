package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/shygy/terminal-games/internal/deck"
	"github.com/shygy/terminal-games/internal/game"
)

// Sink renders round events into the game log and keeps the sidebar in
// step with the engine. It implements the engine's output boundary.
type Sink struct {
	model  *Model
	logger *log.Logger

	// Mirror of the table for sidebar rendering.
	dealerCards []deck.Card
	dealerHole  bool // hole card still hidden
	handCards   [][]deck.Card
	balance     int
	bet         int
}

// NewSink creates an event sink over the given model.
func NewSink(model *Model, logger *log.Logger) *Sink {
	return &Sink{
		model:  model,
		logger: logger.WithPrefix("sink"),
	}
}

// HandleEvent renders one engine event.
func (s *Sink) HandleEvent(e game.Event) {
	s.logger.Debug("event", "type", e.EventType())

	switch ev := e.(type) {
	case game.RoundStartedEvent:
		s.dealerCards = nil
		s.dealerHole = false
		s.handCards = [][]deck.Card{{}}
		s.balance = ev.Balance
		s.bet = 0
		s.model.AddLogEntry(HeaderStyle.Render(" --- New Round --- "))
		s.refresh(ev.ShoeSize)

	case game.BetPlacedEvent:
		s.balance = ev.Balance
		s.bet = ev.Amount
		s.model.AddLogEntry(fmt.Sprintf("Bet placed: %d", ev.Amount))
		s.refresh(-1)

	case game.CardDealtEvent:
		if ev.Seat == game.SeatDealer {
			if ev.Hidden {
				s.dealerHole = true
			} else {
				s.dealerCards = append(s.dealerCards, ev.Card)
				if len(s.dealerCards) > 1 {
					s.model.AddLogEntry(fmt.Sprintf("Dealer draws %s (%d)",
						FormatCards([]deck.Card{ev.Card}), ev.Value))
				}
			}
		} else {
			for len(s.handCards) <= ev.HandIndex {
				s.handCards = append(s.handCards, nil)
			}
			s.handCards[ev.HandIndex] = append(s.handCards[ev.HandIndex], ev.Card)
		}
		s.refresh(-1)

	case game.InsuranceOfferedEvent:
		s.model.AddLogEntry(WarningStyle.Render(
			fmt.Sprintf("Dealer is showing an Ace. Insurance costs %d.", ev.Cost)))

	case game.InsuranceResultEvent:
		s.balance -= ev.Stake
		if ev.Won {
			s.balance += ev.Payout
			s.model.AddLogEntry(SuccessStyle.Render(
				fmt.Sprintf("Dealer has Blackjack! Insurance pays %d.", ev.Payout)))
		} else {
			s.model.AddLogEntry("Dealer doesn't have Blackjack. Insurance bet lost.")
		}
		s.refresh(-1)

	case game.SplitEvent:
		s.balance -= ev.Bet
		// The engine re-deals both hands; start their mirrors fresh.
		s.handCards = [][]deck.Card{
			{s.handCards[0][0]},
			{s.handCards[0][1]},
		}
		s.model.AddLogEntry(fmt.Sprintf("Hand split. Another %d staked on the second hand.", ev.Bet))
		s.refresh(-1)

	case game.PlayerActionEvent:
		switch ev.Action {
		case game.ActionDouble:
			s.balance -= ev.Bet / 2
			s.bet = ev.Bet
			s.model.AddLogEntry(WarningStyle.Render("Doubling down!"))
		case game.ActionStand:
			s.model.AddLogEntry(fmt.Sprintf("Standing on %d.", ev.Value))
		}
		if ev.Bust {
			s.model.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("Bust with %d!", ev.Value)))
		}
		s.refresh(-1)

	case game.DealerRevealEvent:
		s.dealerHole = false
		s.dealerCards = append(s.dealerCards, ev.Card)
		s.model.AddLogEntry(fmt.Sprintf("Dealer reveals %s (%d)",
			FormatCards([]deck.Card{ev.Card}), ev.Value))
		s.refresh(-1)

	case game.HandSettledEvent:
		s.model.AddLogEntry(s.renderOutcome(ev))

	case game.RoundCompleteEvent:
		s.balance = ev.Balance
		sign := ""
		if ev.NetDelta > 0 {
			sign = "+"
		}
		s.model.AddLogEntry(HandInfoStyle.Render(
			fmt.Sprintf("Round over: %s%d, balance %d", sign, ev.NetDelta, ev.Balance)))
		s.refresh(-1)

	case game.ShoeReshuffledEvent:
		s.model.AddLogEntry(InfoStyle.Render("Shoe is getting low. Reshuffling..."))
		s.refresh(ev.Size)

	case game.TopUpEvent:
		s.balance = ev.Balance
		s.model.AddLogEntry(WarningStyle.Render(
			fmt.Sprintf("You're out! Here's %d more to keep playing.", ev.Amount)))
		s.refresh(-1)
	}
}

func (s *Sink) renderOutcome(ev game.HandSettledEvent) string {
	label := ""
	if len(s.handCards) > 1 {
		label = fmt.Sprintf("Hand %d: ", ev.HandIndex+1)
	}
	switch ev.Outcome {
	case game.OutcomeBlackjack:
		return SuccessStyle.Render(fmt.Sprintf("%sBlackjack! You win %d (3:2).", label, ev.Delta))
	case game.OutcomeWin:
		return SuccessStyle.Render(fmt.Sprintf("%sYou win %d!", label, ev.Delta))
	case game.OutcomePush:
		return fmt.Sprintf("%sPush. Your bet is returned.", label)
	default:
		return ErrorStyle.Render(fmt.Sprintf("%sYou lose %d.", label, ev.Bet))
	}
}

// refresh updates the sidebar. A negative shoeSize keeps the last one.
func (s *Sink) refresh(shoeSize int) {
	dealer := FormatCards(s.dealerCards)
	if s.dealerHole {
		dealer += " [?]"
	}
	s.model.SetDealer(dealer)

	hands := make([]string, 0, len(s.handCards))
	for _, cards := range s.handCards {
		if len(cards) == 0 {
			continue
		}
		hands = append(hands, fmt.Sprintf("%s (%d)", FormatCards(cards), game.Hand(cards).Value()))
	}
	s.model.SetHands(hands)

	if shoeSize >= 0 {
		s.model.SetStatus(s.balance, s.bet, shoeSize)
	} else {
		s.model.SetStatus(s.balance, s.bet, s.model.shoeSize)
	}
}
