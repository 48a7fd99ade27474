package lockbased

// Synchronous event push with lock based computation

import (
	"context"
	"sync"

	statistics "github.com/shashank-93rao/statinfer"
	"github.com/shashank-93rao/statinfer/pkg/stats/running"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

// Embeds the running values.
// Also holds the synchronization mechanisms
type lockBasedStats struct {
	lock   sync.RWMutex
	values *running.Values
}

// Event takes in an observation and folds it into the statistics while
// holding the write lock. Any read made after Event returns reflects it.
func (stats *lockBasedStats) Event(ctx context.Context, x float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stats.lock.Lock()
	defer stats.lock.Unlock()
	return stats.values.Add(x)
}

// Count returns the number of recorded events.
func (stats *lockBasedStats) Count(ctx context.Context) (int64, error) {
	stats.lock.RLock()
	defer stats.lock.RUnlock()
	return stats.values.Count(), nil
}

// Min returns the smallest recorded event.
func (stats *lockBasedStats) Min(ctx context.Context) (float64, error) {
	stats.lock.RLock()
	defer stats.lock.RUnlock()
	return stats.values.Min()
}

// Max returns the largest recorded event.
func (stats *lockBasedStats) Max(ctx context.Context) (float64, error) {
	stats.lock.RLock()
	defer stats.lock.RUnlock()
	return stats.values.Max()
}

// Mean returns the running mean.
func (stats *lockBasedStats) Mean(ctx context.Context) (float64, error) {
	stats.lock.RLock()
	defer stats.lock.RUnlock()
	return stats.values.Mean()
}

// Variance returns the running unbiased variance.
func (stats *lockBasedStats) Variance(ctx context.Context) (float64, error) {
	stats.lock.RLock()
	defer stats.lock.RUnlock()
	return stats.values.Variance()
}

// Quantile takes the write lock: the digest may compress itself while answering.
func (stats *lockBasedStats) Quantile(ctx context.Context, q float64) (float64, error) {
	stats.lock.Lock()
	defer stats.lock.Unlock()
	return stats.values.Quantile(q)
}

// NewStats returns a statistics calculator guarded by a read-write lock.
// Writers serialize on the lock; readers share it.
func NewStats(ctx context.Context) (statistics.Statistics, error) {
	values, err := running.New()
	if err != nil {
		return nil, err
	}
	statslog.Zero.Debug().Str("engine", "LB").Msg("created accumulator")
	return &lockBasedStats{values: values}, nil
}
