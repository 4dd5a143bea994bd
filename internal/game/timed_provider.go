package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// TimedProvider wraps an InputProvider with a per-decision timeout. When
// the player idles past the deadline the most conservative decision is
// substituted: stand, decline the side bet, and leave the table rather
// than re-bet. The clock is injected so tests control time.
type TimedProvider struct {
	inner   InputProvider
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger
}

// NewTimedProvider wraps inner with the given timeout and clock.
func NewTimedProvider(inner InputProvider, clock quartz.Clock, timeout time.Duration, logger *log.Logger) *TimedProvider {
	return &TimedProvider{
		inner:   inner,
		clock:   clock,
		timeout: timeout,
		logger:  logger.WithPrefix("timed-input"),
	}
}

// await runs fn on its own goroutine and races it against the timeout,
// substituting the timeout decision when the deadline fires first. The
// abandoned call's eventual result is dropped on the floor.
func await[T any](tp *TimedProvider, what string, onTimeout func() (T, error), fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	results := make(chan result, 1)
	go func() {
		v, err := fn()
		results <- result{v, err}
	}()

	timedOut := make(chan struct{})
	timer := tp.clock.AfterFunc(tp.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	select {
	case res := <-results:
		return res.value, res.err
	case <-timedOut:
		tp.logger.Warn("decision timed out, using default", "prompt", what)
		return onTimeout()
	}
}

func (tp *TimedProvider) BetAmount(balance int) (int, error) {
	// No safe default bet exists; idling at the betting prompt walks away.
	return await(tp, "bet",
		func() (int, error) { return 0, ErrQuit },
		func() (int, error) { return tp.inner.BetAmount(balance) })
}

func (tp *TimedProvider) InsuranceChoice(cost int) (bool, error) {
	return await(tp, "insurance",
		func() (bool, error) { return false, nil },
		func() (bool, error) { return tp.inner.InsuranceChoice(cost) })
}

func (tp *TimedProvider) SplitChoice(cost int) (bool, error) {
	return await(tp, "split",
		func() (bool, error) { return false, nil },
		func() (bool, error) { return tp.inner.SplitChoice(cost) })
}

func (tp *TimedProvider) PlayerAction(handIndex int, hand Hand, canDouble bool) (Action, error) {
	return await(tp, "action",
		func() (Action, error) { return ActionStand, nil },
		func() (Action, error) { return tp.inner.PlayerAction(handIndex, hand, canDouble) })
}

func (tp *TimedProvider) PlayAgain(balance int) (bool, error) {
	return await(tp, "play-again",
		func() (bool, error) { return false, nil },
		func() (bool, error) { return tp.inner.PlayAgain(balance) })
}

func (tp *TimedProvider) ConfirmQuit() (bool, error) {
	return await(tp, "confirm-quit",
		func() (bool, error) { return true, nil },
		func() (bool, error) { return tp.inner.ConfirmQuit() })
}
