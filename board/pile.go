package board

import (
	"strings"

	"github.com/domino14/klondike/cards"
)

// Kind is the kind of a pile. It is derived from the pile name and never
// stored.
type Kind uint8

const (
	// KindCycle is the Draw or Discard pile. Only single cards leave it.
	KindCycle Kind = iota
	// KindCenter is one of the seven tableau piles.
	KindCenter
	// KindWin is one of the four suit foundations.
	KindWin
)

func (k Kind) String() string {
	switch k {
	case KindCycle:
		return "Cycle"
	case KindCenter:
		return "Center"
	case KindWin:
		return "Win"
	}
	return "none"
}

// PileName names one of the 13 fixed piles.
type PileName string

const (
	Draw    PileName = "Draw"
	Discard PileName = "Discard"
	Pile1   PileName = "1"
	Pile2   PileName = "2"
	Pile3   PileName = "3"
	Pile4   PileName = "4"
	Pile5   PileName = "5"
	Pile6   PileName = "6"
	Pile7   PileName = "7"
	WinS    PileName = "WinS"
	WinH    PileName = "WinH"
	WinC    PileName = "WinC"
	WinD    PileName = "WinD"
)

// NumPiles is the number of piles on a board.
const NumPiles = 13

// pileOrder is the canonical order, used for snapshots and card scans.
var pileOrder = [NumPiles]PileName{
	Draw, Discard,
	Pile1, Pile2, Pile3, Pile4, Pile5, Pile6, Pile7,
	WinS, WinH, WinC, WinD,
}

var pileIndex = map[PileName]int{}

func init() {
	for i, p := range pileOrder {
		pileIndex[p] = i
	}
}

// PileNames returns all pile names in canonical order.
func PileNames() []PileName {
	ps := make([]PileName, NumPiles)
	copy(ps, pileOrder[:])
	return ps
}

// CenterPiles returns the seven tableau pile names, 1 through 7.
func CenterPiles() []PileName {
	ps := make([]PileName, 7)
	copy(ps, pileOrder[2:9])
	return ps
}

// CenterPile returns the name of tableau pile n (1-7).
func CenterPile(n int) PileName {
	return pileOrder[n+1]
}

// WinPileFor returns the foundation for a suit.
func WinPileFor(s cards.Suit) PileName {
	return PileName("Win" + string(s.Letter()))
}

// Valid reports whether p is one of the 13 piles.
func (p PileName) Valid() bool {
	_, ok := pileIndex[p]
	return ok
}

// Index is the position of p in the canonical pile order. p must be Valid.
func (p PileName) Index() int {
	return pileIndex[p]
}

// Kind derives the pile kind from its name: all digits is a center pile,
// a Win prefix is a foundation, anything else cycles.
func (p PileName) Kind() Kind {
	s := string(p)
	switch {
	case s != "" && strings.Trim(s, "0123456789") == "":
		return KindCenter
	case strings.HasPrefix(s, "Win"):
		return KindWin
	default:
		return KindCycle
	}
}

// IsDestination reports whether moves may end on this pile. Names that are
// not one of the 13 piles never are.
func (p PileName) IsDestination() bool {
	return p.Valid() && p.Kind() != KindCycle
}

func (p PileName) String() string {
	return string(p)
}
