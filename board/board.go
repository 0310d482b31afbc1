// Package board holds the solitaire layout: thirteen named piles of cards,
// and the bookkeeping that keeps each card's structural flags in sync with
// its position.
package board

import (
	"errors"
	"fmt"

	"github.com/domino14/klondike/cards"
)

// ErrIdentityConservation is returned when an identity is missing from the
// board or appears on it more than once.
var ErrIdentityConservation = errors.New("identity conservation violated")

// A Board maps each of the 13 piles to an ordered sequence of cards.
// Index 0 of a pile is its bottom.
type Board struct {
	piles [NumPiles][]*Card
}

// NewBoard returns a board with all piles empty.
func NewBoard() *Board {
	return &Board{}
}

// Pile returns the cards of pile p, bottom first. The slice belongs to the
// board; do not modify it.
func (b *Board) Pile(p PileName) []*Card {
	return b.piles[p.Index()]
}

// Len is the number of cards in pile p.
func (b *Board) Len(p PileName) int {
	return len(b.piles[p.Index()])
}

// Top returns the top card of p, or nil if it is empty.
func (b *Board) Top(p PileName) *Card {
	pile := b.piles[p.Index()]
	if len(pile) == 0 {
		return nil
	}
	return pile[len(pile)-1]
}

// Bottom returns the bottom card of p, or nil if it is empty.
func (b *Board) Bottom(p PileName) *Card {
	pile := b.piles[p.Index()]
	if len(pile) == 0 {
		return nil
	}
	return pile[0]
}

// IndexOf returns the index of the card with the given identity in p,
// or -1.
func (b *Board) IndexOf(p PileName, id cards.Identity) int {
	for i, c := range b.piles[p.Index()] {
		if c.id == id {
			return i
		}
	}
	return -1
}

// Push places c on top of p. Flags are not recomputed; call Resync.
func (b *Board) Push(p PileName, c *Card) {
	c.pile = p
	idx := p.Index()
	b.piles[idx] = append(b.piles[idx], c)
}

// RemoveRun removes every card from index from to the top of p and
// returns them in their original order.
func (b *Board) RemoveRun(p PileName, from int) []*Card {
	idx := p.Index()
	pile := b.piles[idx]
	run := make([]*Card, len(pile)-from)
	copy(run, pile[from:])
	b.piles[idx] = pile[:from:from]
	return run
}

// RemoveAt removes the single card at index i of p.
func (b *Board) RemoveAt(p PileName, i int) *Card {
	idx := p.Index()
	pile := b.piles[idx]
	c := pile[i]
	rest := make([]*Card, 0, len(pile)-1)
	rest = append(rest, pile[:i]...)
	rest = append(rest, pile[i+1:]...)
	b.piles[idx] = rest
	return c
}

// AppendRun places run on top of p, preserving order.
func (b *Board) AppendRun(p PileName, run []*Card) {
	for _, c := range run {
		b.Push(p, c)
	}
}

// Cards returns every card on the board, pile by pile in canonical order,
// bottom to top within each pile.
func (b *Board) Cards() []*Card {
	all := make([]*Card, 0, cards.DeckSize)
	for _, pile := range b.piles {
		all = append(all, pile...)
	}
	return all
}

// Find returns the card with the given identity, or nil.
func (b *Board) Find(id cards.Identity) *Card {
	for _, pile := range b.piles {
		for _, c := range pile {
			if c.id == id {
				return c
			}
		}
	}
	return nil
}

// CardAbove returns the card directly on top of c in its pile, or nil.
func (b *Board) CardAbove(c *Card) *Card {
	pile := b.piles[c.pile.Index()]
	for i, pc := range pile {
		if pc == c {
			if i+1 < len(pile) {
				return pile[i+1]
			}
			return nil
		}
	}
	return nil
}

// EmptyCenterPiles lists the tableau piles holding no cards.
func (b *Board) EmptyCenterPiles() []PileName {
	var empty []PileName
	for _, p := range CenterPiles() {
		if b.Len(p) == 0 {
			empty = append(empty, p)
		}
	}
	return empty
}

// AllFaceUp reports whether p is non-empty and holds no face-down card.
func (b *Board) AllFaceUp(p PileName) bool {
	pile := b.Pile(p)
	if len(pile) == 0 {
		return false
	}
	for _, c := range pile {
		if c.facedown {
			return false
		}
	}
	return true
}

// NumFacedown counts hidden cards across all piles.
func (b *Board) NumFacedown() int {
	n := 0
	for _, pile := range b.piles {
		for _, c := range pile {
			if c.facedown {
				n++
			}
		}
	}
	return n
}

// IsSolved reports whether every card rests on its foundation.
func (b *Board) IsSolved() bool {
	n := 0
	for _, s := range cards.Suits() {
		n += b.Len(WinPileFor(s))
	}
	return n == cards.DeckSize
}

// Resync recomputes the structural flags of every card in p after the pile
// has been restructured. A newly exposed center top is turned face up.
func (b *Board) Resync(p PileName) {
	pile := b.piles[p.Index()]
	kind := p.Kind()
	n := len(pile)
	for i, c := range pile {
		isTop := i == n-1
		if isTop && kind == KindCenter && c.facedown {
			c.Flip()
		}
		c.pile = p
		c.nothingAbove = isTop
		c.blankBelow = kind != KindWin && i == 0
		c.facedownBelow = kind != KindWin && i > 0 && pile[i-1].facedown
		switch kind {
		case KindCycle:
			c.movable = true
		case KindWin:
			c.movable = isTop
		case KindCenter:
			c.movable = !c.facedown
		}
	}
}

// ResyncAll resyncs every pile.
func (b *Board) ResyncAll() {
	for _, p := range pileOrder {
		b.Resync(p)
	}
}

// Validate checks that each of the 52 identities appears exactly once and
// that every card knows which pile it is in.
func (b *Board) Validate() error {
	var seen [cards.DeckSize]int
	for _, p := range pileOrder {
		for i, c := range b.Pile(p) {
			if !c.id.Valid() {
				return fmt.Errorf("%w: invalid identity %v in pile %v", ErrIdentityConservation, c.id, p)
			}
			if c.pile != p {
				return fmt.Errorf("%w: %v at %v[%d] thinks it is in %v",
					ErrIdentityConservation, c.id, p, i, c.pile)
			}
			seen[c.id.Index()]++
		}
	}
	for _, id := range cards.All() {
		switch n := seen[id.Index()]; {
		case n == 0:
			return fmt.Errorf("%w: %v is missing", ErrIdentityConservation, id)
		case n > 1:
			return fmt.Errorf("%w: %v appears %d times", ErrIdentityConservation, id, n)
		}
	}
	return nil
}

// Copy returns a deep copy of the board. Cards in the copy are new values.
func (b *Board) Copy() *Board {
	cp := &Board{}
	for i, pile := range b.piles {
		cp.piles[i] = make([]*Card, len(pile))
		for j, c := range pile {
			cp.piles[i][j] = c.copy()
		}
	}
	return cp
}
