package cards

import (
	"fmt"
	"strings"
)

// DeckSize is the number of distinct identities in a deck.
const DeckSize = NumSuits * NumRanks

// Identity is a (suit, rank) pair. Exactly DeckSize of them exist. It is
// comparable and can be used directly as a map key.
type Identity struct {
	Suit Suit
	Rank Rank
}

// New returns the identity for the given suit and rank.
func New(s Suit, r Rank) Identity {
	return Identity{Suit: s, Rank: r}
}

// FromIndices builds an identity from a suit index (0-3) and a rank index
// (0-12), the format used by fixed deals.
func FromIndices(suitIdx, rankIdx int) (Identity, error) {
	s, err := SuitFromIndex(suitIdx)
	if err != nil {
		return Identity{}, err
	}
	r, err := RankFromIndex(rankIdx)
	if err != nil {
		return Identity{}, err
	}
	return New(s, r), nil
}

// Parse reads a card code such as "SA", "H10" or "DK". Surrounding
// brackets are not accepted here; see the board snapshot parser.
func Parse(code string) (Identity, error) {
	code = strings.TrimSpace(code)
	if len(code) < 2 {
		return Identity{}, fmt.Errorf("card code %q too short", code)
	}
	s, err := SuitFromLetter(code[0])
	if err != nil {
		return Identity{}, err
	}
	r, err := RankFromCode(code[1:])
	if err != nil {
		return Identity{}, err
	}
	return New(s, r), nil
}

// MustParse is Parse for tests and static tables.
func MustParse(code string) Identity {
	id, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return id
}

// All returns the 52 identities, suit-major.
func All() []Identity {
	ids := make([]Identity, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			ids = append(ids, New(s, r))
		}
	}
	return ids
}

// Index is a dense index in [0, DeckSize).
func (id Identity) Index() int {
	return id.Suit.Index()*NumRanks + id.Rank.Index()
}

// Valid reports whether the identity is one of the 52 real cards.
func (id Identity) Valid() bool {
	return id.Suit < NumSuits && id.Rank >= Ace && id.Rank <= King
}

// Color is shorthand for the suit color.
func (id Identity) Color() Color {
	return id.Suit.Color()
}

// String is the card code, e.g. "S2" or "HQ". It does not depend on
// whether the card is face down, so it doubles as a memoization key.
func (id Identity) String() string {
	return string(id.Suit.Letter()) + id.Rank.Code()
}

// LongName is e.g. "Queen of Hearts".
func (id Identity) LongName() string {
	return id.Rank.Name() + " of " + id.Suit.Name()
}

// IsWinTarget reports whether target is the card id must sit on in its
// foundation: same suit, one rank lower. Aces have no win target.
func (id Identity) IsWinTarget(target Identity) bool {
	if id.Rank == Ace {
		return false
	}
	return target.Suit == id.Suit && target.Rank+1 == id.Rank
}

// IsCenterTarget reports whether id may be placed on target in a center
// pile: opposite color, one rank higher. Kings have no center target.
func (id Identity) IsCenterTarget(target Identity) bool {
	if id.Rank == King {
		return false
	}
	return target.Color() != id.Color() && target.Rank == id.Rank+1
}
