package chbased

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statistics "github.com/shashank-93rao/statinfer"
)

func TestQueryAfterEventSeesIt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stats, err := NewStats(ctx)
	require.NoError(t, err)

	_, err = stats.Mean(ctx)
	assert.ErrorIs(t, err, statistics.ErrEmpty)

	for i := 1; i <= 50; i++ {
		require.NoError(t, stats.Event(ctx, float64(i)))
		count, err := stats.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, i, count)
		maxVal, err := stats.Max(ctx)
		require.NoError(t, err)
		assert.Equal(t, float64(i), maxVal)
	}

	mean, err := stats.Mean(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25.5, mean, 1e-12)
	variance, err := stats.Variance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 212.5, variance, 1e-9)
}

func TestConcurrentWritersEachSeeTheirEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stats, err := NewStats(ctx)
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			x := float64(100 + id)
			assert.NoError(t, stats.Event(ctx, x))
			maxVal, err := stats.Max(ctx)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, maxVal, x)
		}(i)
	}
	wg.Wait()

	count, err := stats.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 8, count)
}

func TestEventAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stats, err := NewStats(ctx)
	require.NoError(t, err)
	require.NoError(t, stats.Event(ctx, 1))

	cancel()
	assert.ErrorIs(t, stats.Event(context.Background(), 2), context.Canceled)
	_, err = stats.Count(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallerContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stats, err := NewStats(ctx)
	require.NoError(t, err)

	callerCtx, callerCancel := context.WithCancel(context.Background())
	callerCancel()
	// The caller gives up; the dispatcher keeps running for others.
	_ = stats.Event(callerCtx, 1)
	require.NoError(t, stats.Event(ctx, 2))
	maxVal, err := stats.Max(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, maxVal)
}

func TestRejectsNonFinite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stats, err := NewStats(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, stats.Event(ctx, math.NaN()), statistics.ErrNotFinite)
	count, err := stats.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
