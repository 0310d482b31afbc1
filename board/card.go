package board

import (
	"fmt"

	"github.com/domino14/klondike/cards"
)

// A Card is one physical card on the board: its identity plus where it is
// and what is around it. There is exactly one Card per identity on a board.
type Card struct {
	id       cards.Identity
	pile     PileName
	facedown bool
	movable  bool

	// nothingAbove is set for the topmost card of a pile.
	nothingAbove bool
	// facedownBelow is set when the card directly below is face down.
	facedownBelow bool
	// blankBelow is set for the bottom card of a non-Win pile.
	blankBelow bool
}

// NewCard creates a face-up, movable card that is not yet on a pile.
func NewCard(id cards.Identity) *Card {
	return &Card{id: id, movable: true}
}

func (c *Card) ID() cards.Identity { return c.id }
func (c *Card) Suit() cards.Suit   { return c.id.Suit }
func (c *Card) Rank() cards.Rank   { return c.id.Rank }
func (c *Card) Pile() PileName     { return c.pile }
func (c *Card) Kind() Kind         { return c.pile.Kind() }
func (c *Card) Facedown() bool     { return c.facedown }
func (c *Card) Movable() bool      { return c.movable }

func (c *Card) HasNothingAbove() bool  { return c.nothingAbove }
func (c *Card) HasFacedownBelow() bool { return c.facedownBelow }
func (c *Card) HasBlankBelow() bool    { return c.blankBelow }

// Flip turns the card over.
func (c *Card) Flip() {
	c.facedown = !c.facedown
}

func (c *Card) SetPile(p PileName)          { c.pile = p }
func (c *Card) SetFacedown(f bool)          { c.facedown = f }
func (c *Card) SetMovable(m bool)           { c.movable = m }
func (c *Card) SetNothingAbove(v bool)      { c.nothingAbove = v }
func (c *Card) SetFacedownBelow(v bool)     { c.facedownBelow = v }
func (c *Card) SetBlankBelow(v bool)        { c.blankBelow = v }
func (c *Card) Matches(other *Card) bool    { return c.id == other.id }
func (c *Card) InSamePile(other *Card) bool { return c.pile == other.pile }

// WinPile is the foundation this card belongs on.
func (c *Card) WinPile() PileName {
	return WinPileFor(c.id.Suit)
}

// InWinPile reports whether the card rests on its own foundation.
func (c *Card) InWinPile() bool {
	return c.pile == c.WinPile()
}

// IsWinTarget reports whether target is directly below c in c's foundation.
func (c *Card) IsWinTarget(target *Card) bool {
	return c.id.IsWinTarget(target.id)
}

// IsCenterTarget reports whether c may be stacked on target in a center pile.
func (c *Card) IsCenterTarget(target *Card) bool {
	return c.id.IsCenterTarget(target.id)
}

// IsCritical reports whether progress depends on moving this card: it is a
// face-up center card that would reveal a hidden card or empty its pile.
func (c *Card) IsCritical() bool {
	if c.Kind() != KindCenter || c.facedown {
		return false
	}
	return c.facedownBelow || c.blankBelow
}

// Code is the card code, bracketed when the card is face down and
// showFacedown is set.
func (c *Card) Code(showFacedown bool) string {
	if showFacedown && c.facedown {
		return "[" + c.id.String() + "]"
	}
	return c.id.String()
}

func (c *Card) String() string {
	return fmt.Sprintf("<%s pile:%s fd:%v mv:%v top:%v fdb:%v bb:%v>",
		c.id, c.pile, c.facedown, c.movable, c.nothingAbove, c.facedownBelow,
		c.blankBelow)
}

func (c *Card) copy() *Card {
	cp := *c
	return &cp
}
