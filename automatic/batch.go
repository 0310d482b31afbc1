package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/game"
	"github.com/domino14/klondike/stats"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int

	// playing admits one batch at a time. IsPlaying only reports it.
	playing atomic.Bool
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

// ErrBatchRunning is returned when a batch is started while another one is
// still playing.
var ErrBatchRunning = errors.New("games are already being played, please wait till complete")

const turnLogHeader = "game,turn,moves,options,critical,facedown,chain\n"

// BatchSummary aggregates the results of a batch.
type BatchSummary struct {
	Games        int
	Outcomes     map[game.Outcome]int
	Turns        stats.Summary
	Moves        stats.Summary
	FacedownLeft stats.Summary
	CardsHome    stats.Summary
	Results      []GameResult
}

// PlayBatch plays numGames shuffled games, at most threads at a time. If the
// config has a seed, game i uses seed+i, so a batch can be replayed. If
// turnLog is not nil, every turn of every game is written to it as CSV.
func PlayBatch(ctx context.Context, cfg *config.Config, numGames, threads int,
	turnLog io.Writer) (*BatchSummary, error) {

	if !playing.CompareAndSwap(false, true) {
		return nil, ErrBatchRunning
	}
	IsPlaying.Add(1)
	defer func() {
		IsPlaying.Add(-1)
		playing.Store(false)
	}()

	if threads < 1 {
		threads = 1
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	var logChan chan string
	var logWriter sync.WaitGroup
	if turnLog != nil {
		logChan = make(chan string, 100)
		logWriter.Add(1)
		go func() {
			defer logWriter.Done()
			io.WriteString(turnLog, turnLogHeader)
			for msg := range logChan {
				io.WriteString(turnLog, msg)
			}
		}()
	}

	baseSeed := cfg.GetUint64(config.ConfigSeed)
	results := make([]GameResult, numGames)
	var progress stats.Statistic
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < numGames; i++ {
		i := i
		g.Go(func() error {
			var seed uint64
			if baseSeed != 0 {
				seed = baseSeed + uint64(i)
			}
			r := NewGameRunner(logChan, cfg)
			if err := r.Init(seed); err != nil {
				return err
			}
			res, err := r.PlayFull(gctx, seed)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res
			GamesPlayed.Add(1)

			progressMu.Lock()
			progress.Push(float64(res.Turns))
			if progress.Iterations()%100 == 0 {
				log.Info().Int("games", progress.Iterations()).
					Float64("mean-turns", progress.Mean()).Msg("batch-progress")
			}
			progressMu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
		logWriter.Wait()
	}
	if err != nil {
		return nil, err
	}
	return summarize(results), nil
}

func summarize(results []GameResult) *BatchSummary {
	field := func(f func(GameResult) int) []float64 {
		return lo.Map(results, func(r GameResult, _ int) float64 {
			return float64(f(r))
		})
	}
	return &BatchSummary{
		Games: len(results),
		Outcomes: lo.CountValuesBy(results, func(r GameResult) game.Outcome {
			return r.Outcome
		}),
		Turns:        stats.Summarize(field(func(r GameResult) int { return r.Turns })),
		Moves:        stats.Summarize(field(func(r GameResult) int { return r.Moves })),
		FacedownLeft: stats.Summarize(field(func(r GameResult) int { return r.FacedownLeft })),
		CardsHome:    stats.Summarize(field(func(r GameResult) int { return r.CardsHome })),
		Results:      results,
	}
}

func (s *BatchSummary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d games\n", s.Games)
	for _, o := range []game.Outcome{game.Solved, game.Stuck, game.TurnLimit} {
		fmt.Fprintf(&sb, "  %-10s %d\n", o.String()+":", s.Outcomes[o])
	}
	fmt.Fprintf(&sb, "Turns:          %v\n", s.Turns)
	fmt.Fprintf(&sb, "Moves:          %v\n", s.Moves)
	fmt.Fprintf(&sb, "Face down left: %v\n", s.FacedownLeft)
	fmt.Fprintf(&sb, "Cards home:     %v\n", s.CardsHome)
	return sb.String()
}
