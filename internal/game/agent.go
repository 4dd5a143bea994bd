package game

import "errors"

// ErrQuit is returned by an InputProvider when the player asks to leave
// the table. The session confirms before unwinding; stakes already
// deducted stay deducted.
var ErrQuit = errors.New("player requested quit")

// InputProvider is the decision-point boundary between the engine and
// whatever collects player input (TUI, scripted test driver). Inputs
// arrive pre-validated: numeric, in range, and recognised. Any method
// may return ErrQuit instead of a decision.
type InputProvider interface {
	// BetAmount asks for the main bet given the available balance.
	BetAmount(balance int) (int, error)

	// InsuranceChoice asks whether to take insurance at the given cost.
	InsuranceChoice(cost int) (bool, error)

	// SplitChoice asks whether to split the pair, charging a second bet.
	SplitChoice(cost int) (bool, error)

	// PlayerAction asks for hit, stand, or double on the given hand.
	// Double is only offered when canDouble is true.
	PlayerAction(handIndex int, hand Hand, canDouble bool) (Action, error)

	// PlayAgain asks whether to start another round.
	PlayAgain(balance int) (bool, error)

	// ConfirmQuit asks the player to confirm leaving mid-session.
	ConfirmQuit() (bool, error)
}
