package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/inference"
	"github.com/shashank-93rao/statinfer/pkg/report"
)

func (a *app) ratioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratio",
		Short: "Interval estimate of sigma1^2 / sigma2^2 and per-sample variance intervals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := buildScenario(a.cfg)
			if err != nil {
				return err
			}
			ri, err := inference.VarianceRatio(sc.sample1, sc.sample2, a.cfg.Alpha)
			if err != nil {
				return err
			}
			var1, var2 := knownVariances(a.cfg)
			if err := a.out.Ratio("sigma1^2 / sigma2^2", ri, var1/var2); err != nil {
				return err
			}

			f, err := inference.FTest(sc.sample1, sc.sample2)
			if err != nil {
				return err
			}
			if err := a.out.Tests("test of sigma1 = sigma2", []report.NamedTest{{Name: "F", Result: f}}, a.cfg.Alpha); err != nil {
				return err
			}

			var rows []report.SingleSampleRow
			for i, sample := range [][]float64{sc.sample1, sc.sample2} {
				s, err := inference.SingleSample(sample, a.cfg.Alpha)
				if err != nil {
					return errors.WithMessagef(err, "sample %d", i+1)
				}
				rows = append(rows, report.SingleSampleRow{Intervals: s})
			}
			return a.out.SingleSample("per-sample intervals", rows)
		},
	}
	a.scenarioFlags(cmd)
	return cmd
}
