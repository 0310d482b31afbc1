package cards

import (
	"fmt"
	"strconv"
)

// Rank is a card rank. Its value is the face value, Ace=1 through King=13.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the number of ranks per suit.
const NumRanks = 13

var rankNames = [NumRanks + 1]string{"", "Ace", "Two", "Three", "Four", "Five",
	"Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

// Ranks returns all ranks in ascending order.
func Ranks() []Rank {
	rs := make([]Rank, NumRanks)
	for i := range rs {
		rs[i] = Rank(i + 1)
	}
	return rs
}

// RankFromIndex returns the rank with zero-based index i (0 is the Ace).
func RankFromIndex(i int) (Rank, error) {
	if i < 0 || i >= NumRanks {
		return 0, fmt.Errorf("rank index %d out of range", i)
	}
	return Rank(i + 1), nil
}

// RankFromCode is the inverse of Code.
func RankFromCode(code string) (Rank, error) {
	switch code {
	case "A":
		return Ace, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	v, err := strconv.Atoi(code)
	if err != nil || v < 2 || v > 10 {
		return 0, fmt.Errorf("unknown rank code %q", code)
	}
	return Rank(v), nil
}

func (r Rank) Value() int {
	return int(r)
}

// Index is the zero-based position of the rank within its suit.
func (r Rank) Index() int {
	return int(r) - 1
}

func (r Rank) Name() string {
	return rankNames[r]
}

// Code is the short display code: a numeral for 2-10, otherwise the first
// letter of the rank name.
func (r Rank) Code() string {
	if r == Ace || r > Ten {
		return rankNames[r][:1]
	}
	return strconv.Itoa(int(r))
}

func (r Rank) String() string {
	return r.Name()
}
