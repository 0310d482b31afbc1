package turn

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
	"github.com/domino14/klondike/move"
)

// TargetType restricts which chains Resolve returns, by the type of their
// last move.
type TargetType uint8

const (
	TargetWin TargetType = 1 << iota
	TargetCenter
	TargetBoth = TargetWin | TargetCenter
)

// Allows reports whether a chain ending in a move of type mt passes.
func (a TargetType) Allows(mt move.MoveType) bool {
	switch mt {
	case move.MoveTypeWin:
		return a&TargetWin != 0
	case move.MoveTypeCenter:
		return a&TargetCenter != 0
	}
	return false
}

func (a TargetType) String() string {
	switch a {
	case TargetWin:
		return "Win"
	case TargetCenter:
		return "Center"
	case TargetBoth:
		return "Both"
	}
	return "none"
}

// tail is a chain that makes a target ready, and the pile the card being
// resolved will then go to.
type tail struct {
	chain move.Chain
	dest  board.PileName
}

// Resolve returns every chain, this turn, after which card c has been moved,
// restricted to chains whose last move is allowed. Results are cached per
// identity for the life of the turn; a card whose resolution is still in
// progress resolves to nothing, which breaks dependency cycles.
func (t *Turn) Resolve(c *board.Card, allowed TargetType) []move.Chain {
	id := c.ID()
	if t.visited[id.Index()] {
		return filterChains(t.cache[id], allowed)
	}
	t.visited[id.Index()] = true
	t.cache[id] = nil

	if !c.Movable() && !c.InWinPile() {
		log.Debug().Str("card", id.String()).Msg("not-movable")
		return nil
	}

	var chains []move.Chain
	switch c.Rank() {
	case cards.Ace:
		chains = t.resolveWin(c)
	case cards.King:
		chains = append(t.resolveWin(c), t.resolveKing(c)...)
	default:
		chains = append(t.resolveWin(c), t.resolveCenter(c)...)
	}
	chains = t.bound(chains)
	t.cache[id] = chains

	log.Debug().Str("card", id.String()).Int("chains", len(chains)).Msg("resolved")
	return filterChains(chains, allowed)
}

// clearing returns the prefixes that leave c free to make a move of type mt.
// A nil prefix means c is free already. An empty result means c cannot be
// freed this turn.
func (t *Turn) clearing(c *board.Card, mt move.MoveType) []move.Chain {
	if c.Kind() == board.KindCycle || c.HasNothingAbove() {
		return []move.Chain{nil}
	}
	if mt == move.MoveTypeCenter && c.Kind() == board.KindCenter {
		idx := t.board.IndexOf(c.Pile(), c.ID())
		if move.IsRun(t.board.Pile(c.Pile())[idx:]) {
			// The run travels with c.
			return []move.Chain{nil}
		}
	}
	above := t.board.CardAbove(c)
	if above == nil {
		return nil
	}
	return t.Resolve(above, TargetBoth)
}

func (t *Turn) resolveWin(c *board.Card) []move.Chain {
	if c.InWinPile() {
		return nil
	}
	prefixes := t.clearing(c, move.MoveTypeWin)
	if len(prefixes) == 0 {
		return nil
	}
	winPile := c.WinPile()

	if c.Rank() == cards.Ace {
		if t.board.Len(winPile) != 0 {
			return nil
		}
		return extend(prefixes, []tail{{dest: winPile}}, c, nil)
	}

	target := t.board.Find(cards.New(c.Suit(), c.Rank()-1))
	var tails []tail
	if target == t.board.Top(winPile) {
		tails = []tail{{dest: winPile}}
	} else {
		for _, ch := range t.Resolve(target, TargetWin) {
			tails = append(tails, tail{chain: ch, dest: winPile})
		}
	}
	return extend(prefixes, tails, c, target)
}

func (t *Turn) resolveCenter(c *board.Card) []move.Chain {
	prefixes := t.clearing(c, move.MoveTypeCenter)
	if len(prefixes) == 0 {
		return nil
	}
	var chains []move.Chain
	for _, s := range cards.Suits() {
		if s.Color() == c.Suit().Color() {
			continue
		}
		target := t.board.Find(cards.New(s, c.Rank()+1))
		if target.InSamePile(c) {
			continue
		}
		chains = append(chains, extend(prefixes, t.centerTails(target), c, target)...)
		chains = t.trim(chains)
	}
	return chains
}

// centerTails returns the ways target can be made ready to take a card on a
// center pile.
func (t *Turn) centerTails(target *board.Card) []tail {
	if target.Facedown() && target.Kind() != board.KindCycle {
		return nil
	}
	var tails []tail
	switch target.Kind() {
	case board.KindCenter:
		if target.HasNothingAbove() {
			return []tail{{dest: target.Pile()}}
		}
		for _, ch := range t.Resolve(t.board.CardAbove(target), TargetBoth) {
			tails = append(tails, tail{chain: ch, dest: target.Pile()})
		}
	default:
		for _, ch := range t.Resolve(target, TargetCenter) {
			tails = append(tails, tail{chain: ch, dest: ch.Last().NewStack()})
		}
	}
	return tails
}

func (t *Turn) resolveKing(c *board.Card) []move.Chain {
	prefixes := t.clearing(c, move.MoveTypeCenter)
	if len(prefixes) == 0 {
		return nil
	}
	var chains []move.Chain
	for _, p := range board.CenterPiles() {
		if p == c.Pile() {
			continue
		}
		switch {
		case t.board.Len(p) == 0:
			chains = append(chains, extend(prefixes, []tail{{dest: p}}, c, nil)...)
		case t.board.AllFaceUp(p):
			var tails []tail
			for _, ch := range t.Resolve(t.board.Bottom(p), TargetBoth) {
				tails = append(tails, tail{chain: ch, dest: p})
			}
			chains = append(chains, extend(prefixes, tails, c, nil)...)
		}
		chains = t.trim(chains)
	}
	return chains
}

// extend builds prefix + tail + (c onto target) for every prefix and tail.
func extend(prefixes []move.Chain, tails []tail, c, target *board.Card) []move.Chain {
	out := make([]move.Chain, 0, len(prefixes)*len(tails))
	for _, tl := range tails {
		m := move.NewMove(c, target, tl.dest)
		for _, p := range prefixes {
			out = append(out, move.Concat(p, tl.chain, move.Chain{m}))
		}
	}
	return out
}

// trim keeps an intermediate result from growing far past the chain limit.
func (t *Turn) trim(chains []move.Chain) []move.Chain {
	if len(chains) > 4*t.chainLimit {
		return t.bound(chains)
	}
	return chains
}

// bound drops duplicate chains and keeps at most chainLimit of them,
// longest first.
func (t *Turn) bound(chains []move.Chain) []move.Chain {
	chains = lo.UniqBy(chains, func(c move.Chain) uint64 {
		return c.Key()
	})
	if len(chains) <= t.chainLimit {
		return chains
	}
	sortByLength(chains)
	log.Debug().Int("found", len(chains)).Int("limit", t.chainLimit).Msg("bounding-chains")
	return chains[:t.chainLimit]
}

// futile reports whether the chain ends by moving a King off the bottom of
// a center pile onto another center pile. That trades one empty pile for
// another and reveals nothing.
func futile(c move.Chain) bool {
	m := c.Last()
	if m == nil {
		return true
	}
	if m.Action() != move.MoveTypeCenter {
		return false
	}
	card := m.Card()
	return card.Rank() == cards.King && card.Kind() == board.KindCenter && card.HasBlankBelow()
}

func filterChains(chains []move.Chain, allowed TargetType) []move.Chain {
	return lo.Filter(chains, func(c move.Chain, _ int) bool {
		return allowed.Allows(c.Type())
	})
}

func sortByLength(chains []move.Chain) {
	sort.SliceStable(chains, func(i, j int) bool {
		return len(chains[i]) > len(chains[j])
	})
}
