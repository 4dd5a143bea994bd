package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/shygy/terminal-games/internal/deck"
)

// Session drives rounds against one shoe until the player leaves.
// It owns the balance between rounds, the between-round reshuffle
// policy, and the broke top-up. A session runs on a single goroutine;
// the engine holds no locks and suspends only inside InputProvider
// calls.
type Session struct {
	shoe     *deck.Shoe
	provider InputProvider
	rules    Rules
	balance  int
	sink     func(Event)
	logger   *log.Logger
	clock    quartz.Clock
	stats    SessionStats
}

// SessionOption configures a Session during creation.
type SessionOption func(*Session)

// WithSessionRules overrides the default table rules.
func WithSessionRules(rules Rules) SessionOption {
	return func(s *Session) { s.rules = rules }
}

// WithSessionEventSink registers a sink for round and session events.
func WithSessionEventSink(sink func(Event)) SessionOption {
	return func(s *Session) { s.sink = sink }
}

// WithSessionLogger sets the debug logger.
func WithSessionLogger(logger *log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger.WithPrefix("session") }
}

// WithSessionClock injects the clock used for decision timeouts.
func WithSessionClock(clock quartz.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// NewSession creates a session over the given shoe and input provider.
// The starting balance comes from the rules. When the rules carry a
// decision timeout the provider is wrapped in a TimedProvider.
func NewSession(shoe *deck.Shoe, provider InputProvider, opts ...SessionOption) *Session {
	s := &Session{
		shoe:     shoe,
		provider: provider,
		rules:    DefaultRules(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.balance = s.rules.StartingBalance
	if s.rules.DecisionTimeout > 0 {
		s.provider = NewTimedProvider(s.provider, s.clock, s.rules.DecisionTimeout, s.logger)
	}
	return s
}

// Balance returns the current bankroll.
func (s *Session) Balance() int { return s.balance }

// Stats returns the accumulated session statistics.
func (s *Session) Stats() SessionStats { return s.stats }

func (s *Session) publish(e Event) {
	if s.sink != nil {
		s.sink(e)
	}
}

// Run plays rounds until the player declines another or quits with
// confirmation. It returns the final balance.
func (s *Session) Run() (int, error) {
	for {
		if s.shoe.NeedsReshuffle() {
			s.shoe.Reshuffle()
			s.logger.Info("shoe reshuffled", "size", s.shoe.Size())
			s.publish(ShoeReshuffledEvent{eventBase: newEventBase(), Size: s.shoe.Size()})
		}

		if s.balance <= 0 && s.rules.BrokeTopUp > 0 {
			s.balance = s.rules.BrokeTopUp
			s.logger.Info("balance topped up", "balance", s.balance)
			s.publish(TopUpEvent{eventBase: newEventBase(), Amount: s.rules.BrokeTopUp, Balance: s.balance})
		}

		quit, err := s.playRound()
		if err != nil {
			return s.balance, err
		}
		if quit {
			return s.balance, nil
		}

		again, err := s.provider.PlayAgain(s.balance)
		if err != nil {
			if confirmed, cerr := s.handleQuit(err); cerr != nil || confirmed {
				return s.balance, cerr
			}
			continue
		}
		if !again {
			return s.balance, nil
		}
	}
}

// playRound drives one round through its decision points. It reports
// quit=true when the player left with confirmation; the round's
// deductions up to that point stand.
func (s *Session) playRound() (quit bool, err error) {
	round := NewRound(s.shoe, s.balance, WithRules(s.rules), WithEventSink(s.sink))
	defer func() { s.balance = round.Balance() }()

	// Betting phase: the provider validates range, the engine re-checks.
	for round.Phase() == PhaseBetting {
		amount, err := s.provider.BetAmount(round.Balance())
		if err != nil {
			confirmed, cerr := s.handleQuit(err)
			if cerr != nil {
				return false, cerr
			}
			if confirmed {
				return true, nil
			}
			continue
		}
		if err := round.PlaceBet(amount); err != nil {
			s.logger.Warn("bet rejected", "amount", amount, "error", err)
		}
	}

	for round.Phase() != PhaseComplete {
		var derr error
		switch round.Phase() {
		case PhaseInsuranceOffer:
			var take bool
			take, derr = s.provider.InsuranceChoice(round.InsuranceCost())
			if derr == nil {
				derr = round.ResolveInsurance(take)
			}
		case PhaseSplitOffer:
			var split bool
			split, derr = s.provider.SplitChoice(round.Bet())
			if derr == nil {
				derr = round.ResolveSplit(split)
			}
		case PhasePlayerTurn:
			hand := round.CurrentHand()
			var action Action
			action, derr = s.provider.PlayerAction(round.CurrentHandIndex(), hand.Cards, round.CanDouble())
			if derr == nil {
				switch action {
				case ActionHit:
					derr = round.Hit()
				case ActionStand:
					derr = round.Stand()
				case ActionDouble:
					derr = round.Double()
				}
			}
		default:
			return false, fmt.Errorf("session stalled in phase %s", round.Phase())
		}

		if derr != nil {
			confirmed, cerr := s.handleQuit(derr)
			if cerr != nil {
				return false, cerr
			}
			if confirmed {
				return true, nil
			}
		}
	}

	s.stats.RecordRound(round.Results(), round.NetDelta(), round.Balance())
	s.logger.Info("round complete", "delta", round.NetDelta(), "balance", round.Balance())
	return false, nil
}

// handleQuit routes a provider error: ErrQuit triggers the confirmation
// prompt, anything else propagates. ErrNotAllowed from the engine is
// swallowed so the prompt repeats.
func (s *Session) handleQuit(err error) (confirmed bool, fatal error) {
	switch err {
	case ErrQuit:
		ok, cerr := s.provider.ConfirmQuit()
		if cerr == ErrQuit {
			return true, nil
		}
		if cerr != nil {
			return false, cerr
		}
		return ok, nil
	case ErrNotAllowed, ErrInvalidBet:
		return false, nil
	default:
		return false, err
	}
}
