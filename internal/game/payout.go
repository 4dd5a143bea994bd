package game

// Outcome is the result of one player hand against the dealer.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeLose
	OutcomePush
	OutcomeBlackjack
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Settle maps a hand outcome and its bet to the net balance delta:
// even money on wins, nothing on a push, 3:2 on a natural. The 3:2
// payout truncates on odd bets (bet 11 pays 16), which is the house
// contract here, not a rounding bug.
func Settle(outcome Outcome, bet int) int {
	switch outcome {
	case OutcomeWin:
		return bet
	case OutcomeLose:
		return -bet
	case OutcomeBlackjack:
		return bet * 3 / 2
	default:
		return 0
	}
}

// InsurancePayout is the amount credited when insurance wins: twice the
// stake, against a stake of half the main bet.
func InsurancePayout(stake int) int {
	return stake * 2
}
