package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/describe"
)

func (a *app) populationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populations",
		Short: "Simulate the two populations, draw one sample of each and describe them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := buildScenario(a.cfg)
			if err != nil {
				return err
			}
			rows, err := summaries(
				namedValues{"population 1", sc.population1},
				namedValues{"population 2", sc.population2},
				namedValues{"sample 1", sc.sample1},
				namedValues{"sample 2", sc.sample2},
			)
			if err != nil {
				return err
			}
			if err := a.out.Summaries("populations and samples", rows); err != nil {
				return err
			}

			for _, set := range []namedValues{
				{"population 1", sc.population1},
				{"population 2", sc.population2},
			} {
				bins, err := describe.Histogram(set.values, a.cfg.Bins)
				if err != nil {
					return errors.WithMessage(err, set.name)
				}
				if err := a.out.Histogram(set.name, bins); err != nil {
					return err
				}
			}
			return nil
		},
	}
	a.scenarioFlags(cmd)
	a.binsFlag(cmd)
	return cmd
}
