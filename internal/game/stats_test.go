package game

import (
	"strings"
	"testing"
)

func TestStatsRecordRound(t *testing.T) {
	t.Parallel()
	var st SessionStats

	st.RecordRound([]HandResult{
		{Outcome: OutcomeWin, Delta: 10},
		{Outcome: OutcomeLose, Delta: -10},
	}, 0, 100)
	st.RecordRound([]HandResult{
		{Outcome: OutcomeBlackjack, Delta: 15},
	}, 15, 115)
	st.RecordRound([]HandResult{
		{Outcome: OutcomePush, Delta: 0},
	}, 0, 115)

	if st.Rounds != 3 || st.Hands != 4 {
		t.Errorf("got %d rounds %d hands, want 3 rounds 4 hands", st.Rounds, st.Hands)
	}
	if st.Wins != 1 || st.Losses != 1 || st.Pushes != 1 || st.Blackjacks != 1 {
		t.Errorf("tally = %dW/%dL/%dP/%dBJ, want 1 of each",
			st.Wins, st.Losses, st.Pushes, st.Blackjacks)
	}
	if st.NetTotal != 15 {
		t.Errorf("NetTotal = %d, want 15", st.NetTotal)
	}
	if st.PeakBalance != 115 || st.LowBalance != 100 {
		t.Errorf("peak/low = %d/%d, want 115/100", st.PeakBalance, st.LowBalance)
	}
}

func TestStatsWinRate(t *testing.T) {
	t.Parallel()
	var st SessionStats
	if st.WinRate() != 0 {
		t.Errorf("WinRate() on empty stats = %v, want 0", st.WinRate())
	}

	st.RecordRound([]HandResult{
		{Outcome: OutcomeWin},
		{Outcome: OutcomeBlackjack},
		{Outcome: OutcomeLose},
		{Outcome: OutcomePush},
	}, 0, 100)

	if got := st.WinRate(); got != 0.5 {
		t.Errorf("WinRate() = %v, want 0.5", got)
	}
}

func TestStatsSummary(t *testing.T) {
	t.Parallel()
	var st SessionStats
	st.RecordRound([]HandResult{{Outcome: OutcomeBlackjack, Delta: 15}}, 15, 115)

	summary := st.Summary()
	if !strings.Contains(summary, "1 rounds") || !strings.Contains(summary, "net +15") {
		t.Errorf("Summary() = %q", summary)
	}
}
