package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/config"
	"github.com/shashank-93rao/statinfer/pkg/dataset"
	"github.com/shashank-93rao/statinfer/pkg/inference"
	"github.com/shashank-93rao/statinfer/pkg/report"
	"github.com/shashank-93rao/statinfer/pkg/sampling"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

func (a *app) oneSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onesample",
		Short: "Mean, variance and prediction intervals from samples of increasing size",
		Long: "onesample draws one sample per size from the CSV column selected with --data, or from " +
			"simulated population 1 when no data is given, then checks whether one more observation " +
			"picked from the source falls inside the prediction interval.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := "population 1"
			var values []float64
			var err error
			if a.cfg.Data.Path != "" {
				name = a.cfg.Data.ValueField
				values, err = dataset.LoadFile(cmd.Context(), a.cfg.Data.Path, a.cfg.Data.Query())
			} else {
				p := a.cfg.Population1
				values, err = sampling.NormalPopulation(p.Mu, p.Sigma, p.Size, a.cfg.PopulationSeed)
			}
			if err != nil {
				return err
			}
			source, err := summaries(namedValues{name, values})
			if err != nil {
				return err
			}
			if err := a.out.Summaries("source", source); err != nil {
				return err
			}

			stream := sampling.NewStream(a.cfg.OneSample.Seed)
			var rows []report.SingleSampleRow
			for _, n := range a.cfg.OneSample.Sizes {
				sample, err := stream.Choose(values, n)
				if err != nil {
					return errors.WithMessagef(err, "sample of %d", n)
				}
				actual, err := stream.Pick(values)
				if err != nil {
					return err
				}
				s, err := inference.SingleSample(sample, a.cfg.OneSample.Alpha)
				if err != nil {
					return errors.WithMessagef(err, "sample of %d", n)
				}
				statslog.Zero.Debug().Int("n", n).Float64("actual", actual).Msg("single sample drawn")
				rows = append(rows, report.SingleSampleRow{Intervals: s, Actual: &actual})
			}
			return a.out.SingleSample("single-sample intervals", rows)
		},
	}

	d := config.DefaultRun()
	f := cmd.Flags()
	var sizes []int
	var alpha, mu, sigma float64
	var size int
	var seed, popSeed uint64
	f.IntSliceVar(&sizes, "sizes", d.OneSample.Sizes, "sample sizes")
	bind(a, cmd, "sizes", &sizes, func(r *config.Run, v []int) { r.OneSample.Sizes = v })
	f.Float64Var(&alpha, "alpha", d.OneSample.Alpha, "significance level")
	bind(a, cmd, "alpha", &alpha, func(r *config.Run, v float64) { r.OneSample.Alpha = v })
	f.Uint64Var(&seed, "seed", d.OneSample.Seed, "seed of the sampling stream")
	bind(a, cmd, "seed", &seed, func(r *config.Run, v uint64) { r.OneSample.Seed = v })
	f.Float64Var(&mu, "mu", d.Population1.Mu, "mean of the simulated population")
	bind(a, cmd, "mu", &mu, func(r *config.Run, v float64) { r.Population1.Mu = v })
	f.Float64Var(&sigma, "sigma", d.Population1.Sigma, "standard deviation of the simulated population")
	bind(a, cmd, "sigma", &sigma, func(r *config.Run, v float64) { r.Population1.Sigma = v })
	f.IntVar(&size, "size", d.Population1.Size, "size of the simulated population")
	bind(a, cmd, "size", &size, func(r *config.Run, v int) { r.Population1.Size = v })
	f.Uint64Var(&popSeed, "population-seed", d.PopulationSeed, "seed of the simulated population")
	bind(a, cmd, "population-seed", &popSeed, func(r *config.Run, v uint64) { r.PopulationSeed = v })
	a.dataFlags(cmd)
	return cmd
}
