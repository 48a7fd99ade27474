package statistics

import (
	"context"
	"errors"
)

var (
	// ErrEmpty is returned by queries on an accumulator that has not seen any event.
	ErrEmpty = errors.New("no events recorded")

	// ErrTooFew is returned by Variance before the second event.
	ErrTooFew = errors.New("at least two events are required")

	// ErrNotFinite rejects NaN and infinite events.
	ErrNotFinite = errors.New("event is not a finite number")
)

// Statistics accumulates a stream of observations and answers summary
// queries about everything recorded so far.
type Statistics interface {
	Event(ctx context.Context, x float64) error

	Count(ctx context.Context) (int64, error)

	Min(ctx context.Context) (float64, error)

	Max(ctx context.Context) (float64, error)

	Mean(ctx context.Context) (float64, error)

	// Variance is the unbiased (n-1) sample variance.
	Variance(ctx context.Context) (float64, error)

	// Quantile returns an estimate of the q-th quantile, q in [0, 1].
	Quantile(ctx context.Context, q float64) (float64, error)
}
