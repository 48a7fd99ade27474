package main

import (
	"context"
	"math"
	"strconv"

	"github.com/pkg/errors"

	statistics "github.com/shashank-93rao/statinfer"
	"github.com/shashank-93rao/statinfer/pkg/config"
	"github.com/shashank-93rao/statinfer/pkg/describe"
	"github.com/shashank-93rao/statinfer/pkg/report"
	"github.com/shashank-93rao/statinfer/pkg/sampling"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

// scenario holds two simulated finite populations and one sample of each.
// Both populations come from one stream seeded with PopulationSeed, drawn in
// order, and both samples from a second stream seeded with SampleSeed.
type scenario struct {
	population1, population2 []float64
	sample1, sample2         []float64
}

func buildScenario(cfg config.Run) (scenario, error) {
	var sc scenario
	var err error

	popStream := sampling.NewStream(cfg.PopulationSeed)
	p1, p2 := cfg.Population1, cfg.Population2
	if sc.population1, err = popStream.Normal(p1.Mu, p1.Sigma, p1.Size); err != nil {
		return sc, errors.WithMessage(err, "population 1")
	}
	if sc.population2, err = popStream.Normal(p2.Mu, p2.Sigma, p2.Size); err != nil {
		return sc, errors.WithMessage(err, "population 2")
	}

	sampleStream := sampling.NewStream(cfg.SampleSeed)
	if sc.sample1, err = sampleStream.Choose(sc.population1, cfg.N1); err != nil {
		return sc, errors.WithMessage(err, "sample 1")
	}
	if sc.sample2, err = sampleStream.Choose(sc.population2, cfg.N2); err != nil {
		return sc, errors.WithMessage(err, "sample 2")
	}

	statslog.Zero.Debug().
		Uint64("population_seed", cfg.PopulationSeed).
		Uint64("sample_seed", cfg.SampleSeed).
		Int("n1", cfg.N1).
		Int("n2", cfg.N2).
		Msg("scenario drawn")
	return sc, nil
}

var nan = math.NaN()

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

func knownVariances(cfg config.Run) (float64, float64) {
	return cfg.Population1.Sigma * cfg.Population1.Sigma, cfg.Population2.Sigma * cfg.Population2.Sigma
}

type namedValues struct {
	name   string
	values []float64
}

func summaries(sets ...namedValues) ([]report.NamedSummary, error) {
	out := make([]report.NamedSummary, 0, len(sets))
	for _, set := range sets {
		s, err := describe.Describe(set.values)
		if err != nil {
			return nil, errors.WithMessage(err, set.name)
		}
		out = append(out, report.NamedSummary{Name: set.name, Summary: s})
	}
	return out, nil
}

// accumulatorSummary reads a streaming summary back from acc. Quartiles are
// t-digest estimates.
func accumulatorSummary(ctx context.Context, acc statistics.Statistics) (describe.Summary, error) {
	var s describe.Summary
	count, err := acc.Count(ctx)
	if err != nil {
		return s, err
	}
	s.Count = int(count)
	if s.Mean, err = acc.Mean(ctx); err != nil {
		return s, err
	}
	if s.Min, err = acc.Min(ctx); err != nil {
		return s, err
	}
	if s.Max, err = acc.Max(ctx); err != nil {
		return s, err
	}
	for q, dst := range map[float64]*float64{0.25: &s.Q1, 0.5: &s.Median, 0.75: &s.Q3} {
		if *dst, err = acc.Quantile(ctx, q); err != nil {
			return s, err
		}
	}
	variance, err := acc.Variance(ctx)
	if err != nil && !errors.Is(err, statistics.ErrTooFew) {
		return s, err
	}
	s.StdDev = math.Sqrt(variance)
	return s, nil
}
