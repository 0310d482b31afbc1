package automatic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/klondike/config"
	"github.com/domino14/klondike/game"
)

func batchConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSeed, 1234)
	cfg.Set(config.ConfigTurnLimit, 5)
	return cfg
}

func TestPlayBatch(t *testing.T) {
	var buf bytes.Buffer
	summary, err := PlayBatch(context.Background(), batchConfig(), 8, 3, &buf)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Games)
	total := 0
	for _, n := range summary.Outcomes {
		total += n
	}
	assert.Equal(t, 8, total)
	assert.Zero(t, summary.Outcomes[game.Playing])
	assert.Equal(t, 8, summary.Turns.N)
	assert.LessOrEqual(t, summary.Turns.Max, 5.0)

	turns := 0
	for i, r := range summary.Results {
		assert.Equal(t, uint64(1234+i), r.Seed)
		assert.Equal(t, fmt.Sprintf("seed-%d", 1234+i), r.Name)
		turns += r.Turns
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, turnLogHeader, lines[0]+"\n")
	assert.Len(t, lines, turns+1)

	assert.Contains(t, summary.String(), "8 games")
	assert.Zero(t, IsPlaying.Value())
}

func TestPlayBatchIsReproducible(t *testing.T) {
	a, err := PlayBatch(context.Background(), batchConfig(), 4, 2, nil)
	require.NoError(t, err)
	b, err := PlayBatch(context.Background(), batchConfig(), 4, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Results, b.Results)
}

func TestPlayBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlayBatch(ctx, batchConfig(), 4, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGameRunner(t *testing.T) {
	logchan := make(chan string, 100)
	r := NewGameRunner(logchan, batchConfig())
	require.NoError(t, r.Init(99))
	res, err := r.PlayFull(context.Background(), 99)
	require.NoError(t, err)
	close(logchan)

	assert.Equal(t, "seed-99", res.Name)
	assert.NotEqual(t, game.Playing, res.Outcome)
	assert.Equal(t, r.Game().Turn(), res.Turns)
	n := 0
	for range logchan {
		n++
	}
	assert.Equal(t, res.Turns, n)
}

func TestPlayBatchOneAtATime(t *testing.T) {
	require.True(t, playing.CompareAndSwap(false, true))
	_, err := PlayBatch(context.Background(), batchConfig(), 2, 1, nil)
	assert.ErrorIs(t, err, ErrBatchRunning)
	playing.Store(false)

	// Only one of several batches started together gets in.
	const callers = 8
	var (
		wg      sync.WaitGroup
		started atomic.Int32
		refused atomic.Int32
		release = make(chan struct{})
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-release
			_, err := PlayBatch(context.Background(), batchConfig(), 20, 1, nil)
			if errors.Is(err, ErrBatchRunning) {
				refused.Add(1)
				return
			}
			started.Add(1)
		}()
	}
	close(release)
	wg.Wait()
	assert.GreaterOrEqual(t, started.Load(), int32(1))
	assert.Equal(t, int32(callers), started.Load()+refused.Load())
	assert.False(t, playing.Load())
	assert.Zero(t, IsPlaying.Value())
}
