// Package simulate repeats sampling experiments to measure the empirical
// coverage of interval estimates and to describe sampling distributions.
//
// Trial i always draws from a stream seeded with sampling.TrialSeed(Seed, i),
// so results do not depend on how many workers run the trials.
package simulate

import (
	"context"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	statistics "github.com/shashank-93rao/statinfer"
	"github.com/shashank-93rao/statinfer/pkg/inference"
	"github.com/shashank-93rao/statinfer/pkg/sampling"
	"github.com/shashank-93rao/statinfer/pkg/stats/factory"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

// ErrBadExperiment reports an incomplete or inconsistent Experiment.
var ErrBadExperiment = errors.New("invalid experiment")

// Experiment describes repeated two-sample draws.
type Experiment struct {
	Population1 Source
	Population2 Source
	N1, N2      int

	Alpha  float64
	Trials int
	Seed   uint64
	// Workers bounds concurrent trials; zero means GOMAXPROCS.
	Workers int
	// Engine selects the accumulator summarising the sampling distribution.
	Engine factory.StatsType

	// Known population variances, used by the known-variance interval and
	// for the theoretical standard error.
	Var1, Var2 float64

	// TrueDifference is mu2 - mu1, TrueRatio is sigma1^2 / sigma2^2.
	TrueDifference float64
	TrueRatio      float64
}

func (e Experiment) validate() error {
	switch {
	case e.Population1 == nil || e.Population2 == nil:
		return errors.Wrap(ErrBadExperiment, "both populations are required")
	case e.N1 < 2 || e.N2 < 2:
		return errors.Wrapf(ErrBadExperiment, "sample sizes %d and %d, need at least 2", e.N1, e.N2)
	case e.Trials < 1:
		return errors.Wrapf(ErrBadExperiment, "%d trials", e.Trials)
	case !(e.Alpha > 0 && e.Alpha < 1):
		return errors.Wrapf(ErrBadExperiment, "significance level %v not in (0, 1)", e.Alpha)
	}
	return nil
}

func (e Experiment) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e Experiment) engine() factory.StatsType {
	if e.Engine == "" {
		return factory.LB
	}
	return e.Engine
}

// Coverage counts how many trial intervals contained the true parameter.
type Coverage struct {
	Label  string
	Hits   int
	Trials int
}

func (c Coverage) Rate() float64 {
	if c.Trials == 0 {
		return 0
	}
	return float64(c.Hits) / float64(c.Trials)
}

// Distribution summarises the per-trial point estimates.
type Distribution struct {
	Count  int64
	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	Max    float64
}

// MeanResult is the outcome of MeanCoverage.
type MeanResult struct {
	Coverage []Coverage
	// Estimates describes mean2 - mean1 across trials.
	Estimates Distribution
	// TheoreticalSE is sqrt(Var1/N1 + Var2/N2).
	TheoreticalSE float64
}

// RatioResult is the outcome of RatioCoverage.
type RatioResult struct {
	Coverage Coverage
	// Ratios describes S1^2 / S2^2 across trials.
	Ratios Distribution
}

// MeanCoverage runs the experiment and counts, for each variance
// assumption, how often the interval covers TrueDifference.
func MeanCoverage(ctx context.Context, e Experiment) (MeanResult, error) {
	if err := e.validate(); err != nil {
		return MeanResult{}, err
	}
	assumptions := inference.Assumptions(e.Var1, e.Var2)
	hits := make([][]bool, len(assumptions))
	for i := range hits {
		hits[i] = make([]bool, e.Trials)
	}

	dist, err := runTrials(ctx, e, func(trial int, s1, s2 []float64) (float64, error) {
		var estimate float64
		for k, a := range assumptions {
			md, err := inference.DifferenceOfMeans(s1, s2, e.Alpha, a)
			if err != nil {
				return 0, errors.WithMessagef(err, "trial %d, %v", trial, a.Kind)
			}
			hits[k][trial] = md.Interval.Contains(e.TrueDifference)
			estimate = md.Estimate
		}
		return estimate, nil
	})
	if err != nil {
		return MeanResult{}, err
	}

	result := MeanResult{
		Estimates:     dist,
		TheoreticalSE: math.Sqrt(e.Var1/float64(e.N1) + e.Var2/float64(e.N2)),
	}
	for k, a := range assumptions {
		result.Coverage = append(result.Coverage, tally(a.Kind.String(), hits[k]))
	}
	return result, nil
}

// RatioCoverage runs the experiment and counts how often the variance-ratio
// interval covers TrueRatio.
func RatioCoverage(ctx context.Context, e Experiment) (RatioResult, error) {
	if err := e.validate(); err != nil {
		return RatioResult{}, err
	}
	if !(e.TrueRatio > 0) {
		return RatioResult{}, errors.Wrapf(ErrBadExperiment, "true ratio %v must be positive", e.TrueRatio)
	}
	hits := make([]bool, e.Trials)

	dist, err := runTrials(ctx, e, func(trial int, s1, s2 []float64) (float64, error) {
		ri, err := inference.VarianceRatio(s1, s2, e.Alpha)
		if err != nil {
			return 0, errors.WithMessagef(err, "trial %d", trial)
		}
		hits[trial] = ri.Interval.Contains(e.TrueRatio)
		return ri.Ratio, nil
	})
	if err != nil {
		return RatioResult{}, err
	}
	return RatioResult{Coverage: tally("variance ratio", hits), Ratios: dist}, nil
}

func tally(label string, hits []bool) Coverage {
	c := Coverage{Label: label, Trials: len(hits)}
	for _, h := range hits {
		if h {
			c.Hits++
		}
	}
	return c
}

// runTrials draws both samples for every trial on a bounded errgroup, hands
// them to eval and feeds the returned estimate into an accumulator. eval may
// only write state indexed by its own trial number.
func runTrials(ctx context.Context, e Experiment, eval func(trial int, s1, s2 []float64) (float64, error)) (Distribution, error) {
	// The accumulator must outlive the errgroup context.
	accCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	acc, err := factory.GetStats(accCtx, e.engine())
	if err != nil {
		return Distribution{}, err
	}

	statslog.Zero.Debug().
		Int("trials", e.Trials).
		Int("workers", e.workers()).
		Uint64("seed", e.Seed).
		Msg("running trials")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for i := 0; i < e.Trials; i++ {
		trial := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stream := sampling.NewStream(sampling.TrialSeed(e.Seed, trial))
			s1, err := e.Population1.Draw(stream, e.N1)
			if err != nil {
				return errors.WithMessagef(err, "trial %d sample1", trial)
			}
			s2, err := e.Population2.Draw(stream, e.N2)
			if err != nil {
				return errors.WithMessagef(err, "trial %d sample2", trial)
			}
			estimate, err := eval(trial, s1, s2)
			if err != nil {
				return err
			}
			return acc.Event(gctx, estimate)
		})
	}
	if err := g.Wait(); err != nil {
		return Distribution{}, err
	}

	statslog.Zero.Debug().Int("trials", e.Trials).Msg("trials finished")
	return summarize(accCtx, acc)
}

func summarize(ctx context.Context, acc statistics.Statistics) (Distribution, error) {
	var d Distribution
	var err error
	if d.Count, err = acc.Count(ctx); err != nil {
		return d, err
	}
	if d.Mean, err = acc.Mean(ctx); err != nil {
		return d, err
	}
	if d.Min, err = acc.Min(ctx); err != nil {
		return d, err
	}
	if d.Max, err = acc.Max(ctx); err != nil {
		return d, err
	}
	if d.Median, err = acc.Quantile(ctx, 0.5); err != nil {
		return d, err
	}
	// A single trial has no spread.
	variance, err := acc.Variance(ctx)
	if err != nil && !errors.Is(err, statistics.ErrTooFew) {
		return d, err
	}
	d.StdDev = math.Sqrt(variance)
	return d, nil
}
