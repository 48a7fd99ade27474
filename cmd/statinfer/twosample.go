package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/inference"
	"github.com/shashank-93rao/statinfer/pkg/report"
)

func (a *app) twoSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twosample",
		Short: "Interval estimates of mu2 - mu1 under the three variance assumptions, with tests of mu1 = mu2",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := buildScenario(a.cfg)
			if err != nil {
				return err
			}
			rows, err := summaries(namedValues{"sample 1", sc.sample1}, namedValues{"sample 2", sc.sample2})
			if err != nil {
				return err
			}
			if err := a.out.Summaries("samples", rows); err != nil {
				return err
			}

			var1, var2 := knownVariances(a.cfg)
			var results []inference.MeanDifference
			for _, assumption := range inference.Assumptions(var1, var2) {
				md, err := inference.DifferenceOfMeans(sc.sample1, sc.sample2, a.cfg.Alpha, assumption)
				if err != nil {
					return errors.WithMessagef(err, "%v interval", assumption.Kind)
				}
				results = append(results, md)
			}
			truth := a.cfg.Population2.Mu - a.cfg.Population1.Mu
			if err := a.out.Intervals("mu2 - mu1", results, truth); err != nil {
				return err
			}

			tests, err := meanTests(sc.sample1, sc.sample2, var1, var2)
			if err != nil {
				return err
			}
			return a.out.Tests("tests of mu1 = mu2 and sigma1 = sigma2", tests, a.cfg.Alpha)
		},
	}
	a.scenarioFlags(cmd)
	return cmd
}

func meanTests(sample1, sample2 []float64, var1, var2 float64) ([]report.NamedTest, error) {
	z, err := inference.ZTest(sample1, sample2, var1, var2)
	if err != nil {
		return nil, errors.WithMessage(err, "z test")
	}
	pooled, err := inference.PooledTTest(sample1, sample2)
	if err != nil {
		return nil, errors.WithMessage(err, "pooled t test")
	}
	welch, err := inference.WelchTTest(sample1, sample2)
	if err != nil {
		return nil, errors.WithMessage(err, "Welch t test")
	}
	f, err := inference.FTest(sample1, sample2)
	if err != nil {
		return nil, errors.WithMessage(err, "F test")
	}
	return []report.NamedTest{
		{Name: "z (known variance)", Result: z},
		{Name: "pooled t", Result: pooled},
		{Name: "Welch t", Result: welch},
		{Name: "F (variance ratio)", Result: f},
	}, nil
}
