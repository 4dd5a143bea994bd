package game

import (
	"time"

	"github.com/shygy/terminal-games/internal/deck"
)

// EventType identifies a round event for sinks that switch on kind.
type EventType string

const (
	EventTypeRoundStarted   EventType = "round_started"
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypeCardDealt      EventType = "card_dealt"
	EventTypeInsuranceOffer EventType = "insurance_offer"
	EventTypeInsurance      EventType = "insurance_result"
	EventTypeSplit          EventType = "split"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeDealerReveal   EventType = "dealer_reveal"
	EventTypeHandSettled    EventType = "hand_settled"
	EventTypeRoundComplete  EventType = "round_complete"
	EventTypeShoeReshuffled EventType = "shoe_reshuffled"
	EventTypeTopUp          EventType = "top_up"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is a state-change notification emitted by the engine for
// rendering. The engine emits one event per meaningful change; sinks
// decide how (or whether) to show it.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type eventBase struct {
	at time.Time
}

func (e eventBase) Timestamp() time.Time { return e.at }

func newEventBase() eventBase {
	return eventBase{at: time.Now()}
}

// Seat identifies which party a dealt card belongs to.
type Seat int

const (
	SeatPlayer Seat = iota
	SeatDealer
)

// String returns the string representation of a seat
func (s Seat) String() string {
	if s == SeatDealer {
		return "dealer"
	}
	return "player"
}

// RoundStartedEvent is emitted when a round begins.
type RoundStartedEvent struct {
	eventBase
	Balance  int
	ShoeSize int
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }

// BetPlacedEvent is emitted when the main bet is accepted and staked.
type BetPlacedEvent struct {
	eventBase
	Amount  int
	Balance int
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// CardDealtEvent is emitted for every card leaving the shoe. The dealer's
// hole card is dealt Hidden and revealed later by DealerRevealEvent.
type CardDealtEvent struct {
	eventBase
	Seat      Seat
	HandIndex int // player hand index; 0 unless split
	Card      deck.Card
	Hidden    bool
	Value     int // best value of the receiving hand after the deal
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// InsuranceOfferedEvent is emitted when the dealer shows an Ace and the
// player can afford the side bet.
type InsuranceOfferedEvent struct {
	eventBase
	Cost int
}

func (e InsuranceOfferedEvent) EventType() EventType { return EventTypeInsuranceOffer }

// InsuranceResultEvent reports how a taken insurance bet resolved.
type InsuranceResultEvent struct {
	eventBase
	Stake  int
	Won    bool
	Payout int
}

func (e InsuranceResultEvent) EventType() EventType { return EventTypeInsurance }

// SplitEvent is emitted when a pair is split into two hands.
type SplitEvent struct {
	eventBase
	Bet int
}

func (e SplitEvent) EventType() EventType { return EventTypeSplit }

// PlayerActionEvent records a hit, stand, or double on one hand.
type PlayerActionEvent struct {
	eventBase
	HandIndex int
	Action    Action
	Value     int // hand value after the action
	Bet       int // hand's bet after the action, doubled on a double
	Bust      bool
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// DealerRevealEvent is emitted when the dealer's hole card turns over.
type DealerRevealEvent struct {
	eventBase
	Card  deck.Card
	Value int // dealer's full two-card value
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }

// HandSettledEvent reports the final outcome of one player hand.
type HandSettledEvent struct {
	eventBase
	HandIndex   int
	Outcome     Outcome
	Bet         int
	Delta       int
	PlayerValue int
	DealerValue int
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// RoundCompleteEvent closes the round with the net balance change.
type RoundCompleteEvent struct {
	eventBase
	NetDelta int
	Balance  int
}

func (e RoundCompleteEvent) EventType() EventType { return EventTypeRoundComplete }

// ShoeReshuffledEvent is emitted by the session when the shoe runs low
// between rounds and gets rebuilt.
type ShoeReshuffledEvent struct {
	eventBase
	Size int
}

func (e ShoeReshuffledEvent) EventType() EventType { return EventTypeShoeReshuffled }

// TopUpEvent is emitted when a broke player is staked back in.
type TopUpEvent struct {
	eventBase
	Amount  int
	Balance int
}

func (e TopUpEvent) EventType() EventType { return EventTypeTopUp }
