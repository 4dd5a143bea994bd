package game

import (
	"errors"

	"github.com/shygy/terminal-games/internal/deck"
)

// Phase is the stage a round is in. Decision phases (Betting,
// InsuranceOffer, SplitOffer, PlayerTurn) wait for a call from the input
// boundary; the others advance on their own.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseInitialDeal
	PhaseInsuranceOffer
	PhaseImmediateSettlement
	PhaseSplitOffer
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettlement
	PhaseComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseInitialDeal:
		return "initial_deal"
	case PhaseInsuranceOffer:
		return "insurance_offer"
	case PhaseImmediateSettlement:
		return "immediate_settlement"
	case PhaseSplitOffer:
		return "split_offer"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseSettlement:
		return "settlement"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Action is a validated player decision during their turn.
type Action int

const (
	ActionHit Action = iota
	ActionStand
	ActionDouble
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	case ActionDouble:
		return "double"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidBet rejects a non-positive bet or one exceeding the balance.
	ErrInvalidBet = errors.New("bet must be positive and within balance")

	// ErrWrongPhase rejects a transition called outside its phase.
	ErrWrongPhase = errors.New("transition not valid in current phase")

	// ErrNotAllowed rejects an action whose preconditions do not hold,
	// such as doubling on a three-card hand.
	ErrNotAllowed = errors.New("action not available")
)

// SeatHand is one player hand in play, with the bet riding on it.
// After a split there are two; otherwise one.
type SeatHand struct {
	Cards     Hand
	Bet       int
	Doubled   bool
	FromSplit bool

	done bool // stood, busted, or doubled out
}

// Done reports whether this hand's turn is over.
func (sh *SeatHand) Done() bool { return sh.done }

// HandResult is the settled outcome of one player hand.
type HandResult struct {
	HandIndex int
	Cards     Hand
	Value     int
	Outcome   Outcome
	Bet       int
	Delta     int
}

// Round is the state machine for a single round of play: bet, deal,
// insurance, split, player turns, dealer turn, settlement. A Round owns
// its hands and bets for its lifetime and is driven by exactly one
// caller; it draws from a Shoe owned by the surrounding session.
type Round struct {
	phase Phase
	shoe  *deck.Shoe
	rules Rules

	startBalance int
	balance      int
	bet          int

	insuranceTaken bool
	insuranceStake int

	dealer  Hand
	hands   []*SeatHand
	current int

	results []HandResult
	emit    func(Event)
}

// RoundOption configures a Round during creation.
type RoundOption func(*Round)

// WithRules overrides the default table rules.
func WithRules(rules Rules) RoundOption {
	return func(r *Round) { r.rules = rules }
}

// WithEventSink registers a sink receiving every state-change event.
func WithEventSink(sink func(Event)) RoundOption {
	return func(r *Round) { r.emit = sink }
}

// NewRound creates a round in the Betting phase against the given shoe
// and available balance.
func NewRound(shoe *deck.Shoe, balance int, opts ...RoundOption) *Round {
	r := &Round{
		phase:        PhaseBetting,
		shoe:         shoe,
		rules:        DefaultRules(),
		startBalance: balance,
		balance:      balance,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.publish(RoundStartedEvent{eventBase: newEventBase(), Balance: balance, ShoeSize: shoe.Size()})
	return r
}

func (r *Round) publish(e Event) {
	if r.emit != nil {
		r.emit(e)
	}
}

// Phase returns the round's current phase.
func (r *Round) Phase() Phase { return r.phase }

// Balance returns the live balance, reflecting stakes already deducted.
func (r *Round) Balance() int { return r.balance }

// NetDelta returns the balance change versus the start of the round.
func (r *Round) NetDelta() int { return r.balance - r.startBalance }

// Bet returns the original main bet.
func (r *Round) Bet() int { return r.bet }

// InsuranceCost returns the insurance stake, half the main bet.
func (r *Round) InsuranceCost() int { return r.bet / 2 }

// Dealer returns the dealer's hand.
func (r *Round) Dealer() Hand { return r.dealer }

// DealerUpCard returns the dealer's exposed first card.
func (r *Round) DealerUpCard() deck.Card { return r.dealer[0] }

// Hands returns the player hands in play.
func (r *Round) Hands() []*SeatHand { return r.hands }

// CurrentHand returns the hand awaiting a player action, or nil outside
// the player turn.
func (r *Round) CurrentHand() *SeatHand {
	if r.phase != PhasePlayerTurn || r.current >= len(r.hands) {
		return nil
	}
	return r.hands[r.current]
}

// CurrentHandIndex returns the index of the hand awaiting action.
func (r *Round) CurrentHandIndex() int { return r.current }

// Results returns the settled outcomes, one per hand, once the round is
// complete.
func (r *Round) Results() []HandResult { return r.results }

// PlaceBet accepts the main bet, stakes it, deals the opening cards, and
// advances to the first decision point. A bet outside (0, balance] is
// rejected with no state change.
func (r *Round) PlaceBet(amount int) error {
	if r.phase != PhaseBetting {
		return ErrWrongPhase
	}
	if amount <= 0 || amount > r.balance {
		return ErrInvalidBet
	}

	r.bet = amount
	r.balance -= amount
	r.hands = []*SeatHand{{Bet: amount}}
	r.phase = PhaseInitialDeal
	r.publish(BetPlacedEvent{eventBase: newEventBase(), Amount: amount, Balance: r.balance})

	r.dealOpening()

	// Insurance is offered only on a dealer Ace up-card, and only when
	// the player can cover the stake.
	if r.dealer[0].IsAce() && r.balance >= r.bet/2 {
		r.phase = PhaseInsuranceOffer
		r.publish(InsuranceOfferedEvent{eventBase: newEventBase(), Cost: r.bet / 2})
		return nil
	}

	r.resolveNaturals()
	return nil
}

// dealOpening deals two cards each, alternating player, dealer, player,
// dealer. The dealer's second card stays hidden until reveal.
func (r *Round) dealOpening() {
	hand := r.hands[0]
	for i := 0; i < 2; i++ {
		r.dealTo(&hand.Cards, SeatPlayer, 0, false)
		r.dealTo(&r.dealer, SeatDealer, 0, i == 1)
	}
}

func (r *Round) dealTo(h *Hand, seat Seat, handIndex int, hidden bool) deck.Card {
	card := r.shoe.Draw()
	h.Add(card)
	r.publish(CardDealtEvent{
		eventBase: newEventBase(),
		Seat:      seat,
		HandIndex: handIndex,
		Card:      card,
		Hidden:    hidden,
		Value:     h.Value(),
	})
	return card
}

// ResolveInsurance applies the player's insurance decision and moves on
// to the natural-blackjack check. A taken bet stakes half the main bet
// and pays 2:1 immediately if the dealer holds a natural.
func (r *Round) ResolveInsurance(take bool) error {
	if r.phase != PhaseInsuranceOffer {
		return ErrWrongPhase
	}

	if take {
		r.insuranceTaken = true
		r.insuranceStake = r.bet / 2
		r.balance -= r.insuranceStake

		won := r.dealer.IsBlackjack()
		payout := 0
		if won {
			payout = InsurancePayout(r.insuranceStake)
			r.balance += payout
		}
		r.publish(InsuranceResultEvent{
			eventBase: newEventBase(),
			Stake:     r.insuranceStake,
			Won:       won,
			Payout:    payout,
		})
	}

	r.resolveNaturals()
	return nil
}

// resolveNaturals settles the round immediately when either side holds a
// two-card 21, otherwise opens the split offer or the player turn.
func (r *Round) resolveNaturals() {
	r.phase = PhaseImmediateSettlement

	playerBJ := r.hands[0].Cards.IsBlackjack()
	dealerBJ := r.dealer.IsBlackjack()

	switch {
	case playerBJ && dealerBJ:
		r.revealDealer()
		r.settleHand(0, OutcomePush)
		r.complete()
	case playerBJ:
		r.revealDealer()
		r.settleHand(0, OutcomeBlackjack)
		r.complete()
	case dealerBJ:
		r.revealDealer()
		r.settleHand(0, OutcomeLose)
		r.complete()
	default:
		r.offerSplitOrPlay()
	}
}

func (r *Round) offerSplitOrPlay() {
	if r.hands[0].Cards.IsPair() && r.balance >= r.bet {
		r.phase = PhaseSplitOffer
		return
	}
	r.phase = PhasePlayerTurn
}

// CanSplit reports whether the split offer is open.
func (r *Round) CanSplit() bool { return r.phase == PhaseSplitOffer }

// ResolveSplit applies the player's split decision. Splitting charges a
// second bet equal to the first, breaks the pair into two hands, and
// deals one card to each. There is no re-splitting.
func (r *Round) ResolveSplit(split bool) error {
	if r.phase != PhaseSplitOffer {
		return ErrWrongPhase
	}

	if split {
		first, second := r.hands[0].Cards[0], r.hands[0].Cards[1]
		r.balance -= r.bet
		r.hands = []*SeatHand{
			{Cards: NewHand(first), Bet: r.bet, FromSplit: true},
			{Cards: NewHand(second), Bet: r.bet, FromSplit: true},
		}
		r.publish(SplitEvent{eventBase: newEventBase(), Bet: r.bet})
		r.dealTo(&r.hands[0].Cards, SeatPlayer, 0, false)
		r.dealTo(&r.hands[1].Cards, SeatPlayer, 1, false)
	}

	r.phase = PhasePlayerTurn
	return nil
}

// CanDouble reports whether the current hand may double down: exactly
// two cards and enough balance to match its bet.
func (r *Round) CanDouble() bool {
	h := r.CurrentHand()
	return h != nil && len(h.Cards) == 2 && r.balance >= h.Bet
}

// Hit draws one card to the current hand. Busting ends the hand's turn
// immediately with its bet lost.
func (r *Round) Hit() error {
	h := r.CurrentHand()
	if h == nil {
		return ErrWrongPhase
	}

	r.dealTo(&h.Cards, SeatPlayer, r.current, false)
	bust := h.Cards.IsBust()
	r.publish(PlayerActionEvent{
		eventBase: newEventBase(),
		HandIndex: r.current,
		Action:    ActionHit,
		Value:     h.Cards.Value(),
		Bet:       h.Bet,
		Bust:      bust,
	})

	if bust {
		h.done = true
		r.settleHand(r.current, OutcomeLose)
		r.advanceHand()
	}
	return nil
}

// Stand ends the current hand's turn at its current value.
func (r *Round) Stand() error {
	h := r.CurrentHand()
	if h == nil {
		return ErrWrongPhase
	}

	h.done = true
	r.publish(PlayerActionEvent{
		eventBase: newEventBase(),
		HandIndex: r.current,
		Action:    ActionStand,
		Value:     h.Cards.Value(),
		Bet:       h.Bet,
	})
	r.advanceHand()
	return nil
}

// Double doubles the current hand's bet, draws exactly one card, and
// forces a stand whatever the result. Only available on a two-card hand
// with balance to cover the second stake.
func (r *Round) Double() error {
	h := r.CurrentHand()
	if h == nil {
		return ErrWrongPhase
	}
	if !r.CanDouble() {
		return ErrNotAllowed
	}

	r.balance -= h.Bet
	h.Bet *= 2
	h.Doubled = true

	r.dealTo(&h.Cards, SeatPlayer, r.current, false)
	bust := h.Cards.IsBust()
	h.done = true
	r.publish(PlayerActionEvent{
		eventBase: newEventBase(),
		HandIndex: r.current,
		Action:    ActionDouble,
		Value:     h.Cards.Value(),
		Bet:       h.Bet,
		Bust:      bust,
	})

	if bust {
		r.settleHand(r.current, OutcomeLose)
	}
	r.advanceHand()
	return nil
}

// advanceHand moves to the next unplayed hand, or runs the dealer turn
// and settlement once every hand is done.
func (r *Round) advanceHand() {
	for r.current < len(r.hands) && r.hands[r.current].done {
		r.current++
	}
	if r.current < len(r.hands) {
		return
	}
	r.finish()
}

// finish runs the dealer's turn (only when a hand survived) and settles
// every unsettled hand against the dealer's final value.
func (r *Round) finish() {
	anyAlive := false
	for _, h := range r.hands {
		if !h.Cards.IsBust() {
			anyAlive = true
			break
		}
	}

	if anyAlive {
		r.phase = PhaseDealerTurn
		r.playDealer()
	}

	r.phase = PhaseSettlement
	dealerValue := r.dealer.Value()
	dealerBust := r.dealer.IsBust()

	for i, h := range r.hands {
		if r.settled(i) {
			continue // busts are recorded as they happen
		}
		playerValue := h.Cards.Value()
		var outcome Outcome
		switch {
		case dealerBust:
			outcome = OutcomeWin
		case playerValue > dealerValue:
			outcome = OutcomeWin
		case playerValue < dealerValue:
			outcome = OutcomeLose
		default:
			outcome = OutcomePush
		}
		r.settleHand(i, outcome)
	}

	r.complete()
}

// playDealer reveals the hole card and draws to the stand value.
func (r *Round) playDealer() {
	r.revealDealer()
	for r.dealer.Value() < r.rules.DealerStandsOn {
		r.dealTo(&r.dealer, SeatDealer, 0, false)
	}
}

func (r *Round) revealDealer() {
	r.publish(DealerRevealEvent{
		eventBase: newEventBase(),
		Card:      r.dealer[1],
		Value:     r.dealer.Value(),
	})
}

// settleHand records one hand's outcome and credits the balance. The
// stake was deducted up front, so a win credits bet plus winnings, a
// push returns the bet, and a loss credits nothing.
func (r *Round) settleHand(index int, outcome Outcome) {
	h := r.hands[index]
	delta := Settle(outcome, h.Bet)
	if outcome != OutcomeLose {
		r.balance += h.Bet + delta
	}

	r.results = append(r.results, HandResult{
		HandIndex: index,
		Cards:     h.Cards,
		Value:     h.Cards.Value(),
		Outcome:   outcome,
		Bet:       h.Bet,
		Delta:     delta,
	})
	r.publish(HandSettledEvent{
		eventBase:   newEventBase(),
		HandIndex:   index,
		Outcome:     outcome,
		Bet:         h.Bet,
		Delta:       delta,
		PlayerValue: h.Cards.Value(),
		DealerValue: r.dealer.Value(),
	})
}

func (r *Round) settled(index int) bool {
	for _, res := range r.results {
		if res.HandIndex == index {
			return true
		}
	}
	return false
}

func (r *Round) complete() {
	r.phase = PhaseComplete
	r.publish(RoundCompleteEvent{
		eventBase: newEventBase(),
		NetDelta:  r.NetDelta(),
		Balance:   r.balance,
	})
}
