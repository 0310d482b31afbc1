// Package automatic plays games without a human at the keyboard, one at a
// time or many at once, and collects what happened.
package automatic

import (
	"context"
	"fmt"

	"github.com/domino14/klondike/board"
	"github.com/domino14/klondike/cards"
	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/game"
)

// GameResult is the end state of one automatically played game.
type GameResult struct {
	Name         string
	Seed         uint64
	Outcome      game.Outcome
	Turns        int
	Moves        int
	FacedownLeft int
	CardsHome    int
}

// GameRunner plays full games from a configuration.
type GameRunner struct {
	config  *config.Config
	logchan chan string
	game    *game.Game
}

// NewGameRunner creates a runner. If logchan is not nil, one CSV line per
// turn is sent to it.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	return &GameRunner{logchan: logchan, config: cfg}
}

// Init deals a new game. A zero seed shuffles randomly.
func (r *GameRunner) Init(seed uint64) error {
	g, err := game.NewShuffled(seed)
	if err != nil {
		return err
	}
	g.SetTurnLimit(r.config.GetInt(config.ConfigTurnLimit))
	g.SetChainLimit(r.config.GetInt(config.ConfigMaxChainsPerCard))
	r.game = g
	return nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayFull plays the current game until it ends.
func (r *GameRunner) PlayFull(ctx context.Context, seed uint64) (GameResult, error) {
	g := r.game
	moves := 0
	for g.Playing() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		chain, err := g.NextTurn()
		if err != nil {
			return GameResult{}, err
		}
		if chain == nil {
			break
		}
		moves += len(chain)
		if r.logchan != nil {
			rec := g.History()[len(g.History())-1]
			r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%q\n",
				g.Name(), rec.Turn, rec.Moves, rec.Options, rec.Critical,
				rec.Facedown, rec.Chain)
		}
	}
	return GameResult{
		Name:         g.Name(),
		Seed:         seed,
		Outcome:      g.Outcome(),
		Turns:        g.Turn(),
		Moves:        moves,
		FacedownLeft: g.Board().NumFacedown(),
		CardsHome:    cardsHome(g.Board()),
	}, nil
}

func cardsHome(b *board.Board) int {
	n := 0
	for _, s := range cards.Suits() {
		n += b.Len(board.WinPileFor(s))
	}
	return n
}
