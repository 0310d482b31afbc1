package move

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/domino14/klondike/board"
)

// A Chain is a sequence of moves where each move clears the way for the
// next. The last move frees the card the chain was built for.
type Chain []*Move

// Concat joins chains into a new chain without touching the inputs.
func Concat(chains ...Chain) Chain {
	n := 0
	for _, c := range chains {
		n += len(c)
	}
	out := make(Chain, 0, n)
	for _, c := range chains {
		out = append(out, c...)
	}
	return out
}

// Last returns the final move, or nil for an empty chain.
func (c Chain) Last() *Move {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// Type is the type of the final move, or MoveTypeNone for an empty chain.
func (c Chain) Type() MoveType {
	if len(c) == 0 {
		return MoveTypeNone
	}
	return c.Last().Action()
}

// String lists the moves in order, comma-separated.
func (c Chain) String() string {
	descs := make([]string, len(c))
	for i, m := range c {
		descs[i] = m.ShortDescription()
	}
	return strings.Join(descs, ", ")
}

// Key is a signature of the chain's moves, used to drop duplicates.
func (c Chain) Key() uint64 {
	return xxhash.Sum64String(c.String())
}

// Apply performs every move of the chain on b, in order.
func (c Chain) Apply(b *board.Board) error {
	for i, m := range c {
		if err := m.Apply(b); err != nil {
			return fmt.Errorf("move %d of %d: %w", i+1, len(c), err)
		}
	}
	return nil
}

// Replay applies the chain to a copy of b, checking each move with Legal
// first. b itself is not modified.
func (c Chain) Replay(b *board.Board) (*board.Board, error) {
	cp := b.Copy()
	for i, m := range c {
		if err := Legal(cp, m); err != nil {
			return nil, fmt.Errorf("move %d (%v): %w", i+1, m.ShortDescription(), err)
		}
		if err := m.Apply(cp); err != nil {
			return nil, fmt.Errorf("move %d (%v): %w", i+1, m.ShortDescription(), err)
		}
	}
	return cp, nil
}
