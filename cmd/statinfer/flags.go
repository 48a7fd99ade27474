package main

import (
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/config"
)

// scenarioFlags registers the two-population scenario parameters.
func (a *app) scenarioFlags(cmd *cobra.Command) {
	d := config.DefaultRun()
	f := cmd.Flags()

	var alpha, mu1, mu2, sigma1, sigma2 float64
	var n1, n2, size int
	var popSeed, sampleSeed uint64

	f.Float64Var(&alpha, "alpha", d.Alpha, "significance level, intervals have level 1-alpha")
	bind(a, cmd, "alpha", &alpha, func(r *config.Run, v float64) { r.Alpha = v })
	f.Float64Var(&mu1, "mu1", d.Population1.Mu, "mean of population 1")
	bind(a, cmd, "mu1", &mu1, func(r *config.Run, v float64) { r.Population1.Mu = v })
	f.Float64Var(&mu2, "mu2", d.Population2.Mu, "mean of population 2")
	bind(a, cmd, "mu2", &mu2, func(r *config.Run, v float64) { r.Population2.Mu = v })
	f.Float64Var(&sigma1, "sigma1", d.Population1.Sigma, "standard deviation of population 1")
	bind(a, cmd, "sigma1", &sigma1, func(r *config.Run, v float64) { r.Population1.Sigma = v })
	f.Float64Var(&sigma2, "sigma2", d.Population2.Sigma, "standard deviation of population 2")
	bind(a, cmd, "sigma2", &sigma2, func(r *config.Run, v float64) { r.Population2.Sigma = v })
	f.IntVar(&size, "size", d.Population1.Size, "size of both simulated populations")
	bind(a, cmd, "size", &size, func(r *config.Run, v int) {
		r.Population1.Size = v
		r.Population2.Size = v
	})
	f.IntVar(&n1, "n1", d.N1, "size of sample 1")
	bind(a, cmd, "n1", &n1, func(r *config.Run, v int) { r.N1 = v })
	f.IntVar(&n2, "n2", d.N2, "size of sample 2")
	bind(a, cmd, "n2", &n2, func(r *config.Run, v int) { r.N2 = v })
	f.Uint64Var(&popSeed, "population-seed", d.PopulationSeed, "seed of the population stream")
	bind(a, cmd, "population-seed", &popSeed, func(r *config.Run, v uint64) { r.PopulationSeed = v })
	f.Uint64Var(&sampleSeed, "sample-seed", d.SampleSeed, "seed of the sampling stream")
	bind(a, cmd, "sample-seed", &sampleSeed, func(r *config.Run, v uint64) { r.SampleSeed = v })
}

// dataFlags registers the CSV query parameters.
func (a *app) dataFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	var path, encoding, filterField, filterValue, valueField string

	f.StringVar(&path, "data", "", "CSV file to read")
	bind(a, cmd, "data", &path, func(r *config.Run, v string) { r.Data.Path = v })
	f.StringVar(&encoding, "encoding", "utf-8", "text encoding of the CSV file, e.g. cp949")
	bind(a, cmd, "encoding", &encoding, func(r *config.Run, v string) { r.Data.Encoding = v })
	f.StringVar(&filterField, "filter-field", "", "keep rows where this column equals --filter-value")
	bind(a, cmd, "filter-field", &filterField, func(r *config.Run, v string) { r.Data.FilterField = v })
	f.StringVar(&filterValue, "filter-value", "", "value of --filter-field to keep")
	bind(a, cmd, "filter-value", &filterValue, func(r *config.Run, v string) { r.Data.FilterValue = v })
	f.StringVar(&valueField, "value-field", "", "numeric column to analyse")
	bind(a, cmd, "value-field", &valueField, func(r *config.Run, v string) { r.Data.ValueField = v })
}

func (a *app) binsFlag(cmd *cobra.Command) {
	var bins int
	cmd.Flags().IntVar(&bins, "bins", config.DefaultRun().Bins, "number of histogram bins")
	bind(a, cmd, "bins", &bins, func(r *config.Run, v int) { r.Bins = v })
}

func (a *app) engineFlag(cmd *cobra.Command) {
	var engine string
	cmd.Flags().StringVar(&engine, "engine", config.DefaultRun().Engine, "accumulator engine, LB (lock based) or CH (channel based)")
	bind(a, cmd, "engine", &engine, func(r *config.Run, v string) { r.Engine = v })
}
