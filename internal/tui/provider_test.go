package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shygy/terminal-games/internal/deck"
	"github.com/shygy/terminal-games/internal/game"
)

func newTestProvider(t *testing.T) (*Provider, *Model) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	model := NewModelWithOptions(logger, true)
	require.True(t, model.IsTestMode())
	return NewProvider(model, logger), model
}

// inject retries until the input channel accepts the line; the provider
// drains it between prompts.
func inject(t *testing.T, m *Model, text string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := m.InjectInput(text); err == nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("input %q never accepted", text)
}

func TestProviderBetAmount(t *testing.T) {
	provider, model := newTestProvider(t)

	type betResult struct {
		amount int
		err    error
	}
	results := make(chan betResult, 1)
	go func() {
		amount, err := provider.BetAmount(100)
		results <- betResult{amount, err}
	}()

	// Garbage, zero, and over-balance all re-prompt.
	inject(t, model, "abc")
	inject(t, model, "0")
	inject(t, model, "500")
	inject(t, model, "bet 25")

	res := <-results
	require.NoError(t, res.err)
	assert.Equal(t, 25, res.amount)

	logText := strings.Join(model.GetCapturedLog(), " ")
	assert.Contains(t, logText, "valid number")
	assert.Contains(t, logText, "positive bet")
	assert.Contains(t, logText, "don't have enough")
}

func TestProviderBetAmountBareNumber(t *testing.T) {
	provider, model := newTestProvider(t)

	results := make(chan int, 1)
	go func() {
		amount, err := provider.BetAmount(100)
		require.NoError(t, err)
		results <- amount
	}()

	inject(t, model, "10")
	assert.Equal(t, 10, <-results)
}

func TestProviderQuitWord(t *testing.T) {
	provider, model := newTestProvider(t)

	errs := make(chan error, 1)
	go func() {
		_, err := provider.BetAmount(100)
		errs <- err
	}()

	inject(t, model, "q")
	assert.ErrorIs(t, <-errs, game.ErrQuit)
}

func TestProviderYesNo(t *testing.T) {
	provider, model := newTestProvider(t)

	results := make(chan bool, 1)
	go func() {
		take, err := provider.InsuranceChoice(10)
		require.NoError(t, err)
		results <- take
	}()

	// An unparseable answer re-prompts.
	inject(t, model, "maybe")
	inject(t, model, "y")
	assert.True(t, <-results)

	go func() {
		split, err := provider.SplitChoice(10)
		require.NoError(t, err)
		results <- split
	}()

	inject(t, model, "no")
	assert.False(t, <-results)
}

func TestProviderPlayerAction(t *testing.T) {
	provider, model := newTestProvider(t)
	hand := game.Hand(deck.MustParseCards("Ks6h"))

	actions := make(chan game.Action, 1)
	go func() {
		action, err := provider.PlayerAction(0, hand, false)
		require.NoError(t, err)
		actions <- action
	}()

	// Double is refused when unavailable; hit goes through.
	inject(t, model, "d")
	inject(t, model, "hit")
	assert.Equal(t, game.ActionHit, <-actions)

	logText := strings.Join(model.GetCapturedLog(), " ")
	assert.Contains(t, logText, "not available")

	go func() {
		action, err := provider.PlayerAction(0, hand, true)
		require.NoError(t, err)
		actions <- action
	}()

	inject(t, model, "d")
	assert.Equal(t, game.ActionDouble, <-actions)
}

func TestProviderConfirmQuit(t *testing.T) {
	provider, model := newTestProvider(t)

	results := make(chan bool, 1)
	go func() {
		ok, err := provider.ConfirmQuit()
		require.NoError(t, err)
		results <- ok
	}()

	inject(t, model, "y")
	assert.True(t, <-results)

	// Typing quit at the confirmation counts as confirming.
	go func() {
		ok, err := provider.ConfirmQuit()
		require.NoError(t, err)
		results <- ok
	}()

	inject(t, model, "quit")
	assert.True(t, <-results)
}
