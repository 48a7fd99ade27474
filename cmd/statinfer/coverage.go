package main

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/shashank-93rao/statinfer/pkg/config"
	"github.com/shashank-93rao/statinfer/pkg/simulate"
)

func (a *app) coverageCmd() *cobra.Command {
	var finite bool
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Repeat the two-sample experiment and count how often each interval covers the truth",
		Long: "coverage draws --trials pairs of samples, from the normal distributions or, with --finite, " +
			"without replacement from the simulated populations, and reports the empirical coverage of " +
			"the three mean-difference intervals and of the variance-ratio interval.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.experiment(finite)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			means, err := simulate.MeanCoverage(ctx, e)
			if err != nil {
				return err
			}
			level := 1 - a.cfg.Alpha
			if err := a.out.Coverage("coverage of mu2 - mu1 = "+num(e.TrueDifference), means.Coverage, level); err != nil {
				return err
			}
			if err := a.out.Distribution("sampling distribution", "mean2 - mean1", means.Estimates, means.TheoreticalSE); err != nil {
				return err
			}

			ratios, err := simulate.RatioCoverage(ctx, e)
			if err != nil {
				return err
			}
			if err := a.out.Coverage("coverage of sigma1^2 / sigma2^2 = "+num(e.TrueRatio), []simulate.Coverage{ratios.Coverage}, level); err != nil {
				return err
			}
			return a.out.Distribution("sampling distribution", "S1^2 / S2^2", ratios.Ratios, nan)
		},
	}

	a.scenarioFlags(cmd)
	a.engineFlag(cmd)
	d := config.DefaultRun()
	var trials, workers int
	cmd.Flags().IntVar(&trials, "trials", d.Trials, "number of repeated experiments")
	bind(a, cmd, "trials", &trials, func(r *config.Run, v int) { r.Trials = v })
	cmd.Flags().IntVar(&workers, "workers", d.Workers, "trials run concurrently")
	bind(a, cmd, "workers", &workers, func(r *config.Run, v int) { r.Workers = v })
	cmd.Flags().BoolVar(&finite, "finite", false, "sample without replacement from the simulated populations")
	return cmd
}

func (a *app) experiment(finite bool) (simulate.Experiment, error) {
	cfg := a.cfg
	e := simulate.Experiment{
		N1:      cfg.N1,
		N2:      cfg.N2,
		Alpha:   cfg.Alpha,
		Trials:  cfg.Trials,
		Seed:    cfg.SampleSeed,
		Workers: cfg.Workers,
		Engine:  cfg.StatsType(),
	}
	if !finite {
		p1, p2 := cfg.Population1, cfg.Population2
		e.Population1 = simulate.Normal{Mu: p1.Mu, Sigma: p1.Sigma}
		e.Population2 = simulate.Normal{Mu: p2.Mu, Sigma: p2.Sigma}
		e.Var1, e.Var2 = knownVariances(cfg)
		e.TrueDifference = p2.Mu - p1.Mu
		e.TrueRatio = e.Var1 / e.Var2
		return e, nil
	}

	sc, err := buildScenario(cfg)
	if err != nil {
		return e, err
	}
	// The truth is the finite population itself.
	mean1, var1 := stat.PopMeanVariance(sc.population1, nil)
	mean2, var2 := stat.PopMeanVariance(sc.population2, nil)
	e.Population1 = simulate.Finite{Values: sc.population1}
	e.Population2 = simulate.Finite{Values: sc.population2}
	e.Var1, e.Var2 = var1, var2
	e.TrueDifference = mean2 - mean1
	e.TrueRatio = var1 / var2
	return e, nil
}
