package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
)

// ErrBadDeal is returned for fixed deals that are not exactly one deck.
var ErrBadDeal = errors.New("bad deal")

// A Deal is a fixed card order: 52 (suit index, rank index) pairs. The
// first card goes to pile 1, the next two to pile 2, and so on; the last
// 24 go to Draw.
type Deal struct {
	Name  string   `yaml:"name"`
	Cards [][2]int `yaml:"cards"`
}

var fixtures = map[string]*Deal{
	"fixture1": {Name: "fixture1", Cards: [][2]int{
		{3, 9}, {0, 0}, {0, 9}, {2, 1}, {0, 8}, {1, 7}, {1, 1}, {1, 12},
		{3, 4}, {2, 4}, {0, 5}, {2, 9}, {2, 5}, {1, 4}, {3, 0}, {0, 10},
		{1, 8}, {1, 2}, {0, 12}, {0, 11}, {0, 1}, {1, 11}, {2, 10}, {0, 4},
		{3, 8}, {2, 11}, {1, 3}, {3, 11}, {3, 6}, {1, 9}, {2, 6}, {2, 0},
		{1, 10}, {0, 6}, {2, 2}, {3, 10}, {0, 2}, {3, 12}, {3, 1}, {2, 7},
		{1, 6}, {3, 7}, {3, 2}, {2, 3}, {0, 3}, {3, 5}, {2, 12}, {1, 5},
		{1, 0}, {3, 3}, {0, 7}, {2, 8},
	}},
	"fixture2": {Name: "fixture2", Cards: [][2]int{
		{3, 10}, {2, 10}, {3, 3}, {1, 6}, {2, 6}, {1, 10}, {3, 7}, {1, 3},
		{0, 7}, {0, 6}, {2, 12}, {1, 12}, {1, 5}, {0, 0}, {0, 8}, {2, 0},
		{3, 11}, {1, 7}, {1, 1}, {1, 0}, {3, 2}, {2, 4}, {0, 9}, {3, 0},
		{1, 11}, {0, 1}, {2, 2}, {1, 4}, {3, 5}, {2, 11}, {1, 2}, {2, 8},
		{3, 4}, {3, 8}, {1, 8}, {2, 5}, {0, 5}, {0, 2}, {2, 7}, {3, 6},
		{0, 11}, {3, 9}, {0, 3}, {3, 12}, {0, 10}, {0, 4}, {2, 9}, {0, 12},
		{2, 3}, {3, 1}, {2, 1}, {1, 9},
	}},
}

// Fixture returns a built-in deal by name.
func Fixture(name string) (*Deal, error) {
	d, ok := fixtures[name]
	if !ok {
		return nil, fmt.Errorf("no fixture named %q", name)
	}
	return d, nil
}

// FixtureNames lists the built-in deals.
func FixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for n := range fixtures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseDeal reads a deal from YAML.
func ParseDeal(data []byte) (*Deal, error) {
	d := &Deal{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDeal, err)
	}
	if _, err := d.Identities(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadDealFile reads a YAML deal file.
func LoadDealFile(path string) (*Deal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := ParseDeal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = path
	}
	return d, nil
}

// Identities validates the deal and returns its cards in order.
func (d *Deal) Identities() ([]cards.Identity, error) {
	if len(d.Cards) != cards.DeckSize {
		return nil, fmt.Errorf("%w: %d cards, need %d", ErrBadDeal, len(d.Cards), cards.DeckSize)
	}
	var seen [cards.DeckSize]bool
	ids := make([]cards.Identity, len(d.Cards))
	for i, pair := range d.Cards {
		id, err := cards.FromIndices(pair[0], pair[1])
		if err != nil {
			return nil, fmt.Errorf("%w: card %d: %w", ErrBadDeal, i, err)
		}
		if seen[id.Index()] {
			return nil, fmt.Errorf("%w: %v dealt twice", ErrBadDeal, id)
		}
		seen[id.Index()] = true
		ids[i] = id
	}
	return ids, nil
}

// Shuffled returns the deck in random order. A non-zero seed always gives
// the same order.
func Shuffled(seed uint64) []cards.Identity {
	ids := cards.All()
	swap := func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }
	if seed == 0 {
		frand.Shuffle(len(ids), swap)
		return ids
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	frand.NewCustom(key[:], 1024, 12).Shuffle(len(ids), swap)
	return ids
}

// DealBoard lays out ids: pile i gets i cards with only the top one face
// up, and the rest go face down to Draw.
func DealBoard(ids []cards.Identity) (*board.Board, error) {
	if len(ids) != cards.DeckSize {
		return nil, fmt.Errorf("%w: %d cards, need %d", ErrBadDeal, len(ids), cards.DeckSize)
	}
	b := board.NewBoard()
	next := 0
	for i := 1; i <= 7; i++ {
		p := board.CenterPile(i)
		for j := 0; j < i; j++ {
			c := board.NewCard(ids[next])
			c.SetFacedown(j != i-1)
			b.Push(p, c)
			next++
		}
	}
	for ; next < len(ids); next++ {
		c := board.NewCard(ids[next])
		c.SetFacedown(true)
		b.Push(board.Draw, c)
	}
	b.ResyncAll()
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDeal, err)
	}
	return b, nil
}
