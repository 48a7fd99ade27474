package chbased

// Async event push with channel based request dispatcher

import (
	"context"

	statistics "github.com/shashank-93rao/statinfer"
	"github.com/shashank-93rao/statinfer/pkg/stats/running"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

// A request is either an event to record or a query to answer. Both travel
// on the same channel, so a query observes every event sent before it by
// the same goroutine.
type request struct {
	event  float64
	query  func(values *running.Values) (float64, error)
	answer chan answer
}

type answer struct {
	value float64
	err   error
}

// Holds the communication channel to the dispatcher goroutine
type channelBasedStats struct {
	reqChan chan request
	done    <-chan struct{}
	ctx     context.Context
}

// Event hands an observation to the dispatcher and waits for it to be
// folded in. It returns the context error once the dispatcher has stopped.
func (stats *channelBasedStats) Event(ctx context.Context, x float64) error {
	_, err := stats.do(ctx, request{event: x})
	return err
}

// Count returns the number of recorded events.
func (stats *channelBasedStats) Count(ctx context.Context) (int64, error) {
	v, err := stats.ask(ctx, func(values *running.Values) (float64, error) {
		return float64(values.Count()), nil
	})
	return int64(v), err
}

// Min returns the smallest recorded event.
func (stats *channelBasedStats) Min(ctx context.Context) (float64, error) {
	return stats.ask(ctx, (*running.Values).Min)
}

// Max returns the largest recorded event.
func (stats *channelBasedStats) Max(ctx context.Context) (float64, error) {
	return stats.ask(ctx, (*running.Values).Max)
}

// Mean returns the running mean.
func (stats *channelBasedStats) Mean(ctx context.Context) (float64, error) {
	return stats.ask(ctx, (*running.Values).Mean)
}

// Variance returns the running unbiased variance.
func (stats *channelBasedStats) Variance(ctx context.Context) (float64, error) {
	return stats.ask(ctx, (*running.Values).Variance)
}

// Quantile returns the t-digest estimate of the q-th quantile.
func (stats *channelBasedStats) Quantile(ctx context.Context, q float64) (float64, error) {
	return stats.ask(ctx, func(values *running.Values) (float64, error) {
		return values.Quantile(q)
	})
}

func (stats *channelBasedStats) ask(ctx context.Context, query func(*running.Values) (float64, error)) (float64, error) {
	return stats.do(ctx, request{query: query})
}

func (stats *channelBasedStats) do(ctx context.Context, req request) (float64, error) {
	req.answer = make(chan answer, 1)
	select {
	case stats.reqChan <- req: // Send request
	case <-stats.done:
		return 0, stats.ctx.Err()
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case resp := <-req.answer: // Wait for response
		return resp.value, resp.err
	case <-stats.done:
		// The dispatcher may have answered right before stopping.
		select {
		case resp := <-req.answer:
			return resp.value, resp.err
		default:
			return 0, stats.ctx.Err()
		}
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// NewStats returns a statistics calculator whose state is owned by a single
// dispatcher goroutine. Calling this function starts that goroutine. It is
// very important that the context passed as an argument is cancelled at the
// end. Failure to do so will leave the dispatcher dangling.
func NewStats(ctx context.Context) (statistics.Statistics, error) {
	values, err := running.New()
	if err != nil {
		return nil, err
	}
	done := make(chan struct{})
	statsObj := &channelBasedStats{
		reqChan: make(chan request, 100),
		done:    done,
		ctx:     ctx,
	}
	go runDispatcherThread(ctx, statsObj.reqChan, values, done)
	return statsObj, nil
}

// Starts the dispatcher thread
func runDispatcherThread(ctx context.Context, reqChan <-chan request, values *running.Values, done chan<- struct{}) {
	statslog.Zero.Debug().Str("engine", "CH").Msg("starting the dispatcher thread")
	defer close(done)
	for {
		select {
		case <-ctx.Done(): // If caller chain cancelled
			statslog.Zero.Debug().Str("engine", "CH").Msg("context cancelled, stopping dispatcher thread")
			return
		case req := <-reqChan:
			if ctx.Err() != nil {
				return // cancelled while the request was queued
			}
			if req.query == nil {
				req.answer <- answer{err: values.Add(req.event)}
				continue
			}
			v, err := req.query(values)
			req.answer <- answer{value: v, err: err}
		}
	}
}
