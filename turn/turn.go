// Package turn finds, for one board position, the chains of moves that free
// each critical card, and applies the best of them.
package turn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
	"github.com/domino14/klondike/move"
	"github.com/domino14/klondike/zobrist"
)

// DefaultChainLimit bounds the chains kept per card.
const DefaultChainLimit = 256

var (
	// ErrStaleTurn is returned when the board was changed after the turn
	// was built.
	ErrStaleTurn = errors.New("board changed since turn was built")
	// ErrNoChains is returned by MakeMoves when nothing can be played.
	ErrNoChains = errors.New("no chains to play")
)

// A Turn analyzes a single board position. It must be discarded once any
// move has been applied to the board.
type Turn struct {
	board *board.Board
	hash  uint64

	visited [cards.DeckSize]bool
	cache   map[cards.Identity][]move.Chain

	chainLimit int
	checked    bool
	critical   []*board.Card
	chains     []move.Chain
}

// NewTurn starts a turn on b. The board must not be modified until the
// turn is done with it.
func NewTurn(b *board.Board) *Turn {
	return &Turn{
		board:      b,
		hash:       zobrist.Default().Hash(b),
		cache:      make(map[cards.Identity][]move.Chain),
		chainLimit: DefaultChainLimit,
	}
}

func (t *Turn) SetChainLimit(n int) {
	if n > 0 {
		t.chainLimit = n
	}
}

func (t *Turn) Board() *board.Board { return t.board }

// CheckBoard resolves every critical card and ranks the chains found,
// longest first. Chains that do not replay legally on the board are
// dropped, and so are chains that only shift a bottom King to another
// center pile.
func (t *Turn) CheckBoard() {
	t.critical = lo.Filter(t.board.Cards(), func(c *board.Card, _ int) bool {
		return c.IsCritical()
	})

	var found []move.Chain
	for _, c := range t.critical {
		found = append(found, t.Resolve(c, TargetBoth)...)
	}
	found = lo.UniqBy(found, func(c move.Chain) uint64 {
		return c.Key()
	})

	t.chains = lo.Filter(found, func(c move.Chain, _ int) bool {
		if futile(c) {
			log.Debug().Str("chain", c.String()).Msg("skipping-futile-chain")
			return false
		}
		if _, err := c.Replay(t.board); err != nil {
			log.Debug().Err(err).Str("chain", c.String()).Msg("dropping-chain")
			return false
		}
		return true
	})
	sortByLength(t.chains)
	t.checked = true

	log.Debug().Int("critical", len(t.critical)).Int("found", len(found)).
		Int("valid", len(t.chains)).Msg("checked-board")
}

func (t *Turn) ensureChecked() {
	if !t.checked {
		t.CheckBoard()
	}
}

// HasPossibleMoves reports whether any chain can be played.
func (t *Turn) HasPossibleMoves() bool {
	t.ensureChecked()
	return len(t.chains) > 0
}

// CriticalCards returns the face-up center cards whose move would reveal a
// card or empty a pile.
func (t *Turn) CriticalCards() []*board.Card {
	t.ensureChecked()
	return t.critical
}

// Chains returns the ranked chains, best first.
func (t *Turn) Chains() []move.Chain {
	t.ensureChecked()
	return t.chains
}

// MakeMoves pops the best chain and applies it to the board, returning the
// board and the chain played.
func (t *Turn) MakeMoves() (*board.Board, move.Chain, error) {
	t.ensureChecked()
	if len(t.chains) == 0 {
		return t.board, nil, ErrNoChains
	}
	if h := zobrist.Default().Hash(t.board); h != t.hash {
		return t.board, nil, fmt.Errorf("%w: hash %x, expected %x", ErrStaleTurn, h, t.hash)
	}
	chain := t.chains[0]
	t.chains = t.chains[1:]
	if err := chain.Apply(t.board); err != nil {
		return t.board, chain, fmt.Errorf("applying %v: %w", chain, err)
	}
	return t.board, chain, nil
}

func (t *Turn) String() string {
	t.ensureChecked()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d critical card(s), %d chain(s)\n", len(t.critical), len(t.chains))
	for i, c := range t.chains {
		fmt.Fprintf(&sb, "%3d. [%d] %v\n", i+1, len(c), c)
	}
	return sb.String()
}
