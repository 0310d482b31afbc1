package move

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/board"
)

var (
	// ErrInvariant means the board no longer matches what a move was built
	// against. Analysis of the board cannot safely continue.
	ErrInvariant = errors.New("board invariant violated")
	// ErrIllegalDestination is returned for moves that end on a Cycle pile.
	ErrIllegalDestination = errors.New("illegal destination pile")
)

// MoveType classifies a move by where it ends.
type MoveType uint8

const (
	// MoveTypeCenter ends on a tableau pile.
	MoveTypeCenter MoveType = iota
	// MoveTypeWin ends on a foundation.
	MoveTypeWin
	// MoveTypeNone is the type of an empty chain.
	MoveTypeNone
)

func (t MoveType) String() string {
	switch t {
	case MoveTypeWin:
		return "Win"
	case MoveTypeCenter:
		return "Center"
	}
	return "None"
}

// TypeFor returns the move type for a move ending on p.
func TypeFor(p board.PileName) MoveType {
	if p.Kind() == board.KindWin {
		return MoveTypeWin
	}
	return MoveTypeCenter
}

// Move transfers a card, and every card above it when it leaves a center
// or Win pile, to another pile.
type Move struct {
	card   *board.Card
	target *board.Card
	// oldStack is where the card was when the move was built.
	oldStack board.PileName
	newStack board.PileName
	action   MoveType
}

// NewMove creates a move of card onto target in pile newStack. target is nil
// when the card goes to an empty pile or an empty foundation. The source
// pile is captured now.
func NewMove(card, target *board.Card, newStack board.PileName) *Move {
	return &Move{
		card:     card,
		target:   target,
		oldStack: card.Pile(),
		newStack: newStack,
		action:   TypeFor(newStack),
	}
}

func (m *Move) Card() *board.Card        { return m.card }
func (m *Move) Target() *board.Card      { return m.target }
func (m *Move) OldStack() board.PileName { return m.oldStack }
func (m *Move) NewStack() board.PileName { return m.newStack }
func (m *Move) Action() MoveType         { return m.action }
func (m *Move) SetNewStack(p board.PileName) {
	m.newStack = p
	m.action = TypeFor(p)
}

// ShortDescription is e.g. "S2 (3) => SA (WinS)".
func (m *Move) ShortDescription() string {
	target := "Blank"
	if m.target != nil {
		target = m.target.ID().String()
	}
	return fmt.Sprintf("%v (%v) => %v (%v)", m.card.ID(), m.oldStack, target, m.newStack)
}

func (m *Move) String() string {
	return fmt.Sprintf("<%p action: %v %v>", m, m.action, m.ShortDescription())
}

// Apply performs the move on b. The card is looked up by identity in the
// source pile, so a move built on one board can be applied to a copy of it.
// Placement rules are not checked here; see Legal.
func (m *Move) Apply(b *board.Board) error {
	if !m.newStack.IsDestination() {
		return fmt.Errorf("%w: %v cannot go to %v", ErrIllegalDestination, m.card.ID(), m.newStack)
	}
	id := m.card.ID()
	idx := b.IndexOf(m.oldStack, id)
	if idx < 0 {
		return fmt.Errorf("%w: %v not found in pile %v", ErrInvariant, id, m.oldStack)
	}

	var run []*board.Card
	switch m.oldStack.Kind() {
	case board.KindCycle:
		c := b.RemoveAt(m.oldStack, idx)
		if c.Facedown() {
			c.Flip()
		}
		run = []*board.Card{c}
	default:
		run = b.RemoveRun(m.oldStack, idx)
		if idx > 0 {
			if exposed := b.Pile(m.oldStack)[idx-1]; exposed.Facedown() {
				exposed.Flip()
			}
		}
	}
	b.AppendRun(m.newStack, run)
	b.Resync(m.oldStack)
	b.Resync(m.newStack)

	log.Debug().Str("move", m.ShortDescription()).Int("run", len(run)).Msg("applied-move")
	return nil
}
