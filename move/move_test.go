package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
)

const moveSnapshot = `
Draw: [DA] S2
1: [S5] H10
2: [S6] C9 H8
3:
4: ... CK
WinS: SA
`

func find(b *board.Board, code string) *board.Card {
	return b.Find(cards.MustParse(code))
}

func TestApplyCenterRun(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)

	m := NewMove(find(b, "C9"), find(b, "H10"), board.Pile1)
	is.Equal(m.Action(), MoveTypeCenter)
	is.Equal(m.OldStack(), board.Pile2)
	is.NoErr(Legal(b, m))
	is.NoErr(m.Apply(b))
	is.NoErr(b.Validate())

	is.Equal(b.Len(board.Pile1), 4)
	is.Equal(b.Top(board.Pile1).ID().String(), "H8")
	is.Equal(b.Pile(board.Pile1)[2].ID().String(), "C9")
	// The run keeps its order and every card knows its new pile.
	for _, c := range b.Pile(board.Pile1) {
		is.Equal(c.Pile(), board.Pile1)
	}

	// The exposed card is turned over.
	s6 := b.Top(board.Pile2)
	is.Equal(s6.ID().String(), "S6")
	is.True(!s6.Facedown())
	is.True(s6.Movable())
	is.True(s6.IsCritical())
	is.True(!find(b, "H10").HasNothingAbove())
}

func TestApplyCyclePopsOneCard(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)

	da := find(b, "DA")
	is.True(da.Facedown())
	m := NewMove(da, nil, board.WinD)
	is.Equal(m.Action(), MoveTypeWin)
	is.NoErr(Legal(b, m))
	is.NoErr(m.Apply(b))

	// Only the Ace moved, even though S2 sat above it.
	is.Equal(b.Len(board.Draw), 1)
	is.Equal(b.Top(board.Draw).ID().String(), "S2")
	is.True(b.Top(board.Draw).HasBlankBelow())
	is.Equal(b.Len(board.WinD), 1)
	is.True(!find(b, "DA").Facedown())
	is.NoErr(b.Validate())
}

func TestApplyToWinPile(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)

	sa := find(b, "SA")
	s2 := find(b, "S2")
	m := NewMove(s2, sa, board.WinS)
	is.Equal(m.ShortDescription(), "S2 (Draw) => SA (WinS)")
	is.NoErr(Legal(b, m))
	is.NoErr(m.Apply(b))
	is.True(!sa.Movable())
	is.True(s2.Movable())
	is.True(s2.InWinPile())
}

func TestApplyErrors(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)

	m := NewMove(find(b, "C9"), find(b, "H10"), board.Pile1)
	is.NoErr(m.Apply(b))
	err := m.Apply(b)
	is.True(errors.Is(err, ErrInvariant))

	err = NewMove(find(b, "CK"), nil, board.Draw).Apply(b)
	is.True(errors.Is(err, ErrIllegalDestination))
	err = NewMove(find(b, "CK"), nil, board.Discard).Apply(b)
	is.True(errors.Is(err, ErrIllegalDestination))
	// A pile name that is not on the board.
	err = NewMove(find(b, "CK"), nil, board.PileName("8")).Apply(b)
	is.True(errors.Is(err, ErrIllegalDestination))
	// Nothing moved.
	is.Equal(find(b, "CK").Pile(), board.Pile4)
	is.Equal(b.Len(board.Draw), 2)
	is.NoErr(b.Validate())
}

func TestLegal(t *testing.T) {
	b := board.MustParseSnapshot(moveSnapshot)

	cases := []struct {
		name   string
		card   string
		target string
		pile   board.PileName
		err    error
	}{
		{"king to empty", "CK", "", board.Pile3, nil},
		{"non-king to empty", "H10", "", board.Pile3, ErrIllegalMove},
		{"wrong color", "H8", "H10", board.Pile1, ErrIllegalMove},
		{"wrong foundation", "S2", "", board.WinH, ErrIllegalMove},
		{"next rank to foundation", "S2", "SA", board.WinS, nil},
		{"ace to own empty foundation", "DA", "", board.WinD, nil},
		{"run to foundation", "C9", "", board.WinC, ErrIllegalMove},
		{"face down source", "S6", "", board.Pile3, ErrIllegalMove},
		{"to cycle pile", "H8", "", board.Discard, ErrIllegalDestination},
		{"to unknown pile", "CK", "", board.PileName("8"), ErrIllegalDestination},
		{"same pile", "H8", "", board.Pile2, ErrIllegalMove},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			var target *board.Card
			if tc.target != "" {
				target = find(b, tc.target)
			}
			err := Legal(b, NewMove(find(b, tc.card), target, tc.pile))
			if tc.err == nil {
				is.NoErr(err)
				return
			}
			is.True(errors.Is(err, tc.err))
		})
	}
}

func TestIsRun(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)
	is.True(IsRun(b.Pile(board.Pile2)[1:]))
	is.True(!IsRun(b.Pile(board.Pile2)))
	is.True(IsRun(nil))
}

func TestChain(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)
	before := b.ToDisplayText()

	first := Chain{NewMove(find(b, "C9"), find(b, "H10"), board.Pile1)}
	second := Chain{NewMove(find(b, "CK"), nil, board.Pile3)}
	c := Concat(first, second)
	is.Equal(len(c), 2)
	is.Equal(len(first), 1)
	is.Equal(c.Last().Card().ID().String(), "CK")
	is.Equal(c.Type(), MoveTypeCenter)
	is.Equal(c.String(), "C9 (2) => H10 (1), CK (4) => Blank (3)")

	again := Concat(Chain{NewMove(find(b, "C9"), find(b, "H10"), board.Pile1)}, second)
	is.Equal(c.Key(), again.Key())
	is.True(c.Key() != first.Key())
	is.Equal(Chain{}.Last(), nil)
	is.Equal(Chain{}.Type(), MoveTypeNone)
	is.Equal(Chain(nil).Type(), MoveTypeNone)
	is.Equal(MoveTypeNone.String(), "None")

	after, err := c.Replay(b)
	is.NoErr(err)
	is.Equal(b.ToDisplayText(), before)
	is.Equal(after.Len(board.Pile3), 1)
	is.Equal(after.Len(board.Pile1), 4)
	is.NoErr(after.Validate())

	is.NoErr(c.Apply(b))
	is.Equal(b.ToDisplayText(), after.ToDisplayText())
}

func TestReplayRejectsIllegal(t *testing.T) {
	is := is.New(t)
	b := board.MustParseSnapshot(moveSnapshot)
	c := Chain{NewMove(find(b, "H10"), nil, board.Pile3)}
	_, err := c.Replay(b)
	is.True(errors.Is(err, ErrIllegalMove))
}
