package game

import "time"

// Rules collects the table parameters a session and its rounds play
// under. Zero values are not meaningful; start from DefaultRules.
type Rules struct {
	// Decks is the number of 52-card decks in the shoe.
	Decks int

	// ReshuffleThreshold is the fraction of shoe capacity below which
	// the session reshuffles before the next round.
	ReshuffleThreshold float64

	// DealerStandsOn is the value at which the dealer stops drawing.
	// The standard house rule is 17; the dealer does not distinguish
	// soft 17 beyond normal hand valuation.
	DealerStandsOn int

	// StartingBalance is the bankroll a new session begins with.
	StartingBalance int

	// BrokeTopUp is the amount a busted-out player is re-staked with so
	// play can continue. Zero disables the top-up.
	BrokeTopUp int

	// DecisionTimeout forces a conservative default decision when the
	// player idles at a prompt. Zero disables the timeout.
	DecisionTimeout time.Duration
}

// DefaultRules returns the standard six-deck table.
func DefaultRules() Rules {
	return Rules{
		Decks:              6,
		ReshuffleThreshold: 0.2,
		DealerStandsOn:     17,
		StartingBalance:    100,
		BrokeTopUp:         50,
	}
}
