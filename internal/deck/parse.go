package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses a compact card string like "As Kh Td 8c" or "AsKhTd8c"
// into cards. Ranks are 2-9, T (or 10), J, Q, K, A; suits are s, h, d, c.
// Parsing is case insensitive.
func ParseCards(s string) ([]Card, error) {
	cards := []Card{}
	runes := []rune(strings.ToLower(strings.ReplaceAll(s, " ", "")))

	for i := 0; i < len(runes); {
		var rank Rank
		switch runes[i] {
		case '2', '3', '4', '5', '6', '7', '8', '9':
			rank = Rank(runes[i] - '0')
			i++
		case 't':
			rank = Ten
			i++
		case '1':
			if i+1 >= len(runes) || runes[i+1] != '0' {
				return nil, fmt.Errorf("invalid rank at position %d in %q", i, s)
			}
			rank = Ten
			i += 2
		case 'j':
			rank = Jack
			i++
		case 'q':
			rank = Queen
			i++
		case 'k':
			rank = King
			i++
		case 'a':
			rank = Ace
			i++
		default:
			return nil, fmt.Errorf("invalid rank %q in %q", runes[i], s)
		}

		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit for final card in %q", s)
		}

		var suit Suit
		switch runes[i] {
		case 's':
			suit = Spades
		case 'h':
			suit = Hearts
		case 'd':
			suit = Diamonds
		case 'c':
			suit = Clubs
		default:
			return nil, fmt.Errorf("invalid suit %q in %q", runes[i], s)
		}
		i++

		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on invalid input.
// Intended for tests and fixed fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
