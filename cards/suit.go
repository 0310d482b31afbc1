// Package cards holds the static catalog for a standard 52-card deck:
// suits, ranks, and the identities built from them.
package cards

import "fmt"

// Color is the color of a suit.
type Color uint8

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "Red"
	}
	return "Black"
}

// Suit is one of the four suits. Its value is also its index.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

var suitNames = [NumSuits]string{"Spades", "Hearts", "Clubs", "Diamonds"}

// Suits returns all suits in index order.
func Suits() []Suit {
	return []Suit{Spades, Hearts, Clubs, Diamonds}
}

// SuitFromIndex returns the suit with index i (0-3).
func SuitFromIndex(i int) (Suit, error) {
	if i < 0 || i >= NumSuits {
		return 0, fmt.Errorf("suit index %d out of range", i)
	}
	return Suit(i), nil
}

// SuitFromLetter returns the suit whose name starts with the given letter.
func SuitFromLetter(l byte) (Suit, error) {
	for _, s := range Suits() {
		if s.Letter() == l {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit letter %q", l)
}

func (s Suit) Index() int {
	return int(s)
}

func (s Suit) Name() string {
	return suitNames[s]
}

// Letter is the single-character code for this suit, used in card codes
// and Win pile names.
func (s Suit) Letter() byte {
	return suitNames[s][0]
}

func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

func (s Suit) String() string {
	return s.Name()
}
