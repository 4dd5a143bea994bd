package game

import (
	"strings"

	"github.com/shygy/terminal-games/internal/deck"
)

// Hand is an ordered set of cards held by one party: the player, a split
// branch, or the dealer. Scoring is derived, never stored.
type Hand []deck.Card

// NewHand creates a hand from the given cards.
func NewHand(cards ...deck.Card) Hand {
	return Hand(cards)
}

// Add appends a card to the hand.
func (h *Hand) Add(card deck.Card) {
	*h = append(*h, card)
}

// Value computes the best blackjack value of the hand. Aces count 11 and
// soften to 1 one at a time while the total exceeds 21, so the result is
// the maximum value <= 21 when one exists, and the hard minimum otherwise.
// The result does not depend on card order.
func (h Hand) Value() int {
	total, _ := h.score()
	return total
}

// IsSoft reports whether an Ace is currently counted as 11.
func (h Hand) IsSoft() bool {
	_, soft := h.score()
	return soft
}

func (h Hand) score() (total int, soft bool) {
	aces := 0
	for _, c := range h {
		total += c.BlackjackValue()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBlackjack reports a natural: exactly two cards totalling 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// IsBust reports whether the hand's best value exceeds 21.
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// IsPair reports whether the hand is exactly two cards of equal rank,
// which is the condition for offering a split.
func (h Hand) IsPair() bool {
	return len(h) == 2 && h[0].Rank == h[1].Rank
}

// String renders the hand as space-separated cards, e.g. "A♠ K♦".
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
