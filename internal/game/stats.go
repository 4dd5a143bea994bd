package game

import "fmt"

// SessionStats accumulates hand outcomes across a session. It lives in
// memory only; nothing here is persisted.
type SessionStats struct {
	Rounds     int
	Hands      int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	NetTotal   int

	// High-water marks over the session.
	PeakBalance int
	LowBalance  int
}

// RecordRound folds one completed round into the stats.
func (st *SessionStats) RecordRound(results []HandResult, netDelta, balance int) {
	st.Rounds++
	st.NetTotal += netDelta

	for _, res := range results {
		st.Hands++
		switch res.Outcome {
		case OutcomeWin:
			st.Wins++
		case OutcomeLose:
			st.Losses++
		case OutcomePush:
			st.Pushes++
		case OutcomeBlackjack:
			st.Blackjacks++
		}
	}

	if balance > st.PeakBalance {
		st.PeakBalance = balance
	}
	if st.LowBalance == 0 || balance < st.LowBalance {
		st.LowBalance = balance
	}
}

// WinRate returns the fraction of hands won, naturals included.
func (st *SessionStats) WinRate() float64 {
	if st.Hands == 0 {
		return 0
	}
	return float64(st.Wins+st.Blackjacks) / float64(st.Hands)
}

// Summary renders a one-line session recap.
func (st *SessionStats) Summary() string {
	return fmt.Sprintf("%d rounds, %d hands: %dW/%dL/%dP (%d naturals), net %+d",
		st.Rounds, st.Hands, st.Wins+st.Blackjacks, st.Losses, st.Pushes,
		st.Blackjacks, st.NetTotal)
}
