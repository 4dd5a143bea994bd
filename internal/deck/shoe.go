package deck

import (
	rand "math/rand/v2"
	"time"

	"github.com/shygy/terminal-games/internal/randutil"
)

// DefaultReshuffleThreshold is the fraction of the shoe's full capacity
// below which a fresh shuffle is due before the next round.
const DefaultReshuffleThreshold = 0.2

// Shoe is the pooled card supply for a table: one or more 52-card decks
// shuffled together. A Shoe is never observed empty; draining it mid-round
// rebuilds and reshuffles before the draw completes.
type Shoe struct {
	cards     []Card
	numDecks  int
	capacity  int
	threshold float64
	rng       *rand.Rand
}

// NewShoe builds a shuffled shoe of numDecks standard decks. The RNG is
// explicit so shuffles are reproducible in tests.
func NewShoe(rng *rand.Rand, numDecks int) *Shoe {
	s := &Shoe{
		numDecks:  numDecks,
		threshold: DefaultReshuffleThreshold,
		rng:       rng,
	}
	s.rebuild()
	return s
}

// NewStacked builds a shoe that deals the given cards in the listed order.
// Intended for tests that need exact deal sequences.
func NewStacked(cards ...Card) *Shoe {
	s := &Shoe{
		numDecks:  1,
		threshold: DefaultReshuffleThreshold,
		cards:     make([]Card, len(cards)),
	}
	// Draw pops from the back, so store in reverse.
	for i, c := range cards {
		s.cards[len(cards)-1-i] = c
	}
	s.capacity = len(s.cards)
	return s
}

// SetReshuffleThreshold overrides the default low-shoe threshold fraction.
func (s *Shoe) SetReshuffleThreshold(t float64) {
	s.threshold = t
}

func (s *Shoe) rebuild() {
	s.cards = make([]Card, 0, s.numDecks*52)
	for d := 0; d < s.numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
	s.capacity = len(s.cards)
}

// shuffle is a Fisher-Yates pass over the remaining cards.
func (s *Shoe) shuffle() {
	if s.rng == nil {
		s.rng = randutil.New(time.Now().UnixNano())
	}
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the next card. An empty shoe is rebuilt and
// reshuffled first, so Draw cannot fail.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.rebuild()
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card
}

// Size returns the number of cards remaining.
func (s *Shoe) Size() int {
	return len(s.cards)
}

// Capacity returns the shoe size at the last full shuffle.
func (s *Shoe) Capacity() int {
	return s.capacity
}

// NeedsReshuffle reports whether the shoe has dropped below its reshuffle
// threshold. Checked between rounds, never mid-round.
func (s *Shoe) NeedsReshuffle() bool {
	return float64(len(s.cards)) < float64(s.capacity)*s.threshold
}

// Reshuffle rebuilds the shoe to its full deck count and shuffles.
func (s *Shoe) Reshuffle() {
	s.rebuild()
}
