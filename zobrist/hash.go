package zobrist

import (
	"sync"

	"lukechampine.com/frand"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
)

const bignum = 1<<63 - 2

// MaxDepth is the most cards a single pile can hold.
const MaxDepth = cards.DeckSize

// generate a zobrist hash for a solitaire layout.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	// posTable is indexed by identity, then pile, then depth*2+facedown.
	posTable [cards.DeckSize][board.NumPiles][]uint64
}

func (z *Zobrist) Initialize() {
	for i := 0; i < cards.DeckSize; i++ {
		for p := 0; p < board.NumPiles; p++ {
			z.posTable[i][p] = make([]uint64, MaxDepth*2)
			for j := 0; j < MaxDepth*2; j++ {
				z.posTable[i][p][j] = frand.Uint64n(bignum) + 1
			}
		}
	}
}

func (z *Zobrist) key(c *board.Card, depth int) uint64 {
	fd := 0
	if c.Facedown() {
		fd = 1
	}
	return z.posTable[c.ID().Index()][c.Pile().Index()][depth*2+fd]
}

// Hash computes the hash of every card's pile, depth and face.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for _, p := range board.PileNames() {
		for depth, c := range b.Pile(p) {
			key ^= z.key(c, depth)
		}
	}
	return key
}

// AddPile folds the contents of pile p into key. Calling it once before a
// pile changes and once after updates the hash for that pile.
func (z *Zobrist) AddPile(key uint64, b *board.Board, p board.PileName) uint64 {
	for depth, c := range b.Pile(p) {
		key ^= z.key(c, depth)
	}
	return key
}

var (
	defaultZobrist *Zobrist
	once           sync.Once
)

// Default returns a process-wide table, built on first use. It is read-only
// afterwards and safe to share between goroutines.
func Default() *Zobrist {
	once.Do(func() {
		defaultZobrist = &Zobrist{}
		defaultZobrist.Initialize()
	})
	return defaultZobrist
}
