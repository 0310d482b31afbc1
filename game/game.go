// Package game deals a solitaire layout and plays it turn by turn, each
// turn applying the best chain of moves the analyzer finds.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/move"
	"github.com/domino14/klondike/turn"
	"github.com/domino14/klondike/zobrist"
)

const DefaultTurnLimit = 15

// ErrGameOver is returned when a turn is asked of a finished game.
var ErrGameOver = errors.New("game is over")

// Outcome is how a game ended, if it has.
type Outcome uint8

const (
	Playing Outcome = iota
	// Solved means every card reached its foundation.
	Solved
	// Stuck means a turn found no chain to play.
	Stuck
	// TurnLimit means the game ran out of turns.
	TurnLimit
	// Aborted means the board broke an invariant and play stopped.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Solved:
		return "solved"
	case Stuck:
		return "stuck"
	case TurnLimit:
		return "turn limit"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// TurnRecord describes one played turn.
type TurnRecord struct {
	Turn     int
	Chain    string
	Moves    int
	Critical int
	Options  int
	Facedown int
	Hash     uint64
}

// Game is one deal being played. It is not safe for concurrent use.
type Game struct {
	name  string
	board *board.Board

	turnLimit  int
	chainLimit int

	turnnum int
	outcome Outcome
	history []TurnRecord
	// seen holds the hash of every position reached so far.
	seen map[uint64]int
}

// NewGame starts a game on an already dealt board.
func NewGame(name string, b *board.Board) *Game {
	g := &Game{
		name:       name,
		board:      b,
		turnLimit:  DefaultTurnLimit,
		chainLimit: turn.DefaultChainLimit,
		seen:       map[uint64]int{},
	}
	g.seen[zobrist.Default().Hash(b)] = 0
	if b.IsSolved() {
		g.outcome = Solved
	}
	return g
}

// NewFromDeal lays out a fixed deal and starts a game on it.
func NewFromDeal(d *Deal) (*Game, error) {
	ids, err := d.Identities()
	if err != nil {
		return nil, err
	}
	b, err := DealBoard(ids)
	if err != nil {
		return nil, err
	}
	return NewGame(d.Name, b), nil
}

// NewShuffled deals a shuffled deck. See Shuffled for the seed.
func NewShuffled(seed uint64) (*Game, error) {
	b, err := DealBoard(Shuffled(seed))
	if err != nil {
		return nil, err
	}
	name := "random"
	if seed != 0 {
		name = fmt.Sprintf("seed-%d", seed)
	}
	return NewGame(name, b), nil
}

// NewFromConfig picks the deal the configuration asks for: a deal file, then
// a fixture, then a shuffle.
func NewFromConfig(cfg *config.Config) (*Game, error) {
	var (
		g   *Game
		err error
	)
	switch {
	case cfg.GetString(config.ConfigDealFile) != "":
		var d *Deal
		d, err = LoadDealFile(cfg.GetString(config.ConfigDealFile))
		if err == nil {
			g, err = NewFromDeal(d)
		}
	case cfg.GetString(config.ConfigFixture) != "":
		var d *Deal
		d, err = Fixture(cfg.GetString(config.ConfigFixture))
		if err == nil {
			g, err = NewFromDeal(d)
		}
	default:
		g, err = NewShuffled(cfg.GetUint64(config.ConfigSeed))
	}
	if err != nil {
		return nil, err
	}
	g.SetTurnLimit(cfg.GetInt(config.ConfigTurnLimit))
	g.SetChainLimit(cfg.GetInt(config.ConfigMaxChainsPerCard))
	return g, nil
}

func (g *Game) SetTurnLimit(n int) {
	if n > 0 {
		g.turnLimit = n
	}
}

func (g *Game) SetChainLimit(n int) {
	if n > 0 {
		g.chainLimit = n
	}
}

func (g *Game) Name() string          { return g.name }
func (g *Game) Board() *board.Board   { return g.board }
func (g *Game) Turn() int             { return g.turnnum }
func (g *Game) TurnLimit() int        { return g.turnLimit }
func (g *Game) Outcome() Outcome      { return g.outcome }
func (g *Game) History() []TurnRecord { return g.history }
func (g *Game) Playing() bool         { return g.outcome == Playing }

// Analyze builds a turn on the current board without playing it.
func (g *Game) Analyze() *turn.Turn {
	t := turn.NewTurn(g.board)
	t.SetChainLimit(g.chainLimit)
	t.CheckBoard()
	return t
}

// NextTurn plays one turn and returns the chain played. It returns a nil
// chain when the game ends instead; Outcome then says why. A board with no
// chains is Stuck even when the turn limit has also been reached.
func (g *Game) NextTurn() (move.Chain, error) {
	if g.outcome != Playing {
		return nil, ErrGameOver
	}
	t := g.Analyze()
	if !t.HasPossibleMoves() {
		g.outcome = Stuck
		log.Debug().Int("turn", g.turnnum+1).Msg("no-chains")
		return nil, nil
	}
	if g.turnnum >= g.turnLimit {
		g.outcome = TurnLimit
		return nil, nil
	}
	critical, options := len(t.CriticalCards()), len(t.Chains())
	_, chain, err := t.MakeMoves()
	if err != nil {
		g.outcome = Aborted
		return nil, fmt.Errorf("turn %d: %w", g.turnnum+1, err)
	}
	if err := g.board.Validate(); err != nil {
		g.outcome = Aborted
		return nil, fmt.Errorf("turn %d: %w", g.turnnum+1, err)
	}
	g.turnnum++

	h := zobrist.Default().Hash(g.board)
	if prev, ok := g.seen[h]; ok {
		log.Debug().Int("turn", g.turnnum).Int("first-seen", prev).Msg("repeated-position")
	} else {
		g.seen[h] = g.turnnum
	}
	g.history = append(g.history, TurnRecord{
		Turn:     g.turnnum,
		Chain:    chain.String(),
		Moves:    len(chain),
		Critical: critical,
		Options:  options,
		Facedown: g.board.NumFacedown(),
		Hash:     h,
	})
	log.Info().Int("turn", g.turnnum).Str("chain", chain.String()).
		Str("card", chain.Last().Card().ID().String()).Msg("played-turn")

	if g.board.IsSolved() {
		g.outcome = Solved
	}
	return chain, nil
}

// Play runs turns until the game ends or ctx is done.
func (g *Game) Play(ctx context.Context) (Outcome, error) {
	for g.outcome == Playing {
		if err := ctx.Err(); err != nil {
			return g.outcome, err
		}
		if _, err := g.NextTurn(); err != nil {
			return g.outcome, err
		}
	}
	log.Debug().Str("game", g.name).Str("outcome", g.outcome.String()).
		Int("turns", g.turnnum).Msg("game-over")
	return g.outcome, nil
}
