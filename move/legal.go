package move

import (
	"errors"
	"fmt"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
)

// ErrIllegalMove is returned by Legal for moves that break placement rules.
var ErrIllegalMove = errors.New("illegal move")

// IsRun reports whether pile cards form a face-up Klondike sequence:
// alternating colors, each card one rank below the one beneath it.
func IsRun(pile []*board.Card) bool {
	for i, c := range pile {
		if c.Facedown() {
			return false
		}
		if i > 0 && !c.IsCenterTarget(pile[i-1]) {
			return false
		}
	}
	return true
}

// Legal checks m against the placement rules on board b as it is now:
// foundations take one card at a time, same suit, ascending from the Ace;
// tableau piles take an alternating descending run, and only a King may
// start an empty one.
func Legal(b *board.Board, m *Move) error {
	id := m.card.ID()
	if !m.newStack.IsDestination() {
		return fmt.Errorf("%w: %v cannot go to %v", ErrIllegalDestination, id, m.newStack)
	}
	if m.newStack == m.oldStack {
		return fmt.Errorf("%w: %v is already in %v", ErrIllegalMove, id, m.newStack)
	}
	idx := b.IndexOf(m.oldStack, id)
	if idx < 0 {
		return fmt.Errorf("%w: %v not found in pile %v", ErrInvariant, id, m.oldStack)
	}
	src := b.Pile(m.oldStack)
	card := src[idx]

	var run []*board.Card
	switch m.oldStack.Kind() {
	case board.KindCycle:
		run = src[idx : idx+1]
	default:
		if card.Facedown() {
			return fmt.Errorf("%w: %v is face down", ErrIllegalMove, id)
		}
		run = src[idx:]
		if !IsRun(run) {
			return fmt.Errorf("%w: cards above %v are not a run", ErrIllegalMove, id)
		}
	}

	top := b.Top(m.newStack)
	switch m.newStack.Kind() {
	case board.KindWin:
		if len(run) != 1 {
			return fmt.Errorf("%w: %v has %d cards above it", ErrIllegalMove, id, len(run)-1)
		}
		if m.newStack != card.WinPile() {
			return fmt.Errorf("%w: %v does not belong on %v", ErrIllegalMove, id, m.newStack)
		}
		if top == nil {
			if id.Rank != cards.Ace {
				return fmt.Errorf("%w: %v cannot start %v", ErrIllegalMove, id, m.newStack)
			}
			return nil
		}
		if !card.IsWinTarget(top) {
			return fmt.Errorf("%w: %v cannot go on %v", ErrIllegalMove, id, top.ID())
		}
	case board.KindCenter:
		if top == nil {
			if id.Rank != cards.King {
				return fmt.Errorf("%w: only a King may start %v", ErrIllegalMove, m.newStack)
			}
			return nil
		}
		if top.Facedown() || !card.IsCenterTarget(top) {
			return fmt.Errorf("%w: %v cannot go on %v", ErrIllegalMove, id, top.ID())
		}
	}
	return nil
}
