package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/shashank-93rao/statinfer/pkg/dataset"
	"github.com/shashank-93rao/statinfer/pkg/stats/factory"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

// ErrInvalid is wrapped by Validate range failures. An unknown engine
// carries factory.ErrUnknownStatsType instead.
var ErrInvalid = errors.New("invalid run config")

type Population struct {
	Mu    float64 `json:"mu" toml:"mu" yaml:"mu"`
	Sigma float64 `json:"sigma" toml:"sigma" yaml:"sigma"`
	Size  int     `json:"size" toml:"size" yaml:"size"`
}

type OneSample struct {
	Sizes []int   `json:"sizes" toml:"sizes" yaml:"sizes"`
	Alpha float64 `json:"alpha" toml:"alpha" yaml:"alpha"`
	Seed  uint64  `json:"seed" toml:"seed" yaml:"seed"`
}

type Data struct {
	Path        string `json:"path" toml:"path" yaml:"path"`
	Encoding    string `json:"encoding" toml:"encoding" yaml:"encoding"`
	FilterField string `json:"filter_field" toml:"filter_field" yaml:"filter_field"`
	FilterValue string `json:"filter_value" toml:"filter_value" yaml:"filter_value"`
	ValueField  string `json:"value_field" toml:"value_field" yaml:"value_field"`
}

// Query converts the data section into a dataset query.
func (d Data) Query() dataset.Query {
	return dataset.Query{
		Encoding:    d.Encoding,
		FilterField: d.FilterField,
		FilterValue: d.FilterValue,
		ValueField:  d.ValueField,
	}
}

type Run struct {
	LogLevel string `json:"log_level" toml:"log_level" yaml:"log_level"`
	Format   string `json:"format" toml:"format" yaml:"format"`

	Alpha float64 `json:"alpha" toml:"alpha" yaml:"alpha"`

	Population1    Population `json:"population1" toml:"population1" yaml:"population1"`
	Population2    Population `json:"population2" toml:"population2" yaml:"population2"`
	PopulationSeed uint64     `json:"population_seed" toml:"population_seed" yaml:"population_seed"`
	SampleSeed     uint64     `json:"sample_seed" toml:"sample_seed" yaml:"sample_seed"`
	N1             int        `json:"n1" toml:"n1" yaml:"n1"`
	N2             int        `json:"n2" toml:"n2" yaml:"n2"`

	Trials  int    `json:"trials" toml:"trials" yaml:"trials"`
	Workers int    `json:"workers" toml:"workers" yaml:"workers"`
	Engine  string `json:"engine" toml:"engine" yaml:"engine"`
	Bins    int    `json:"bins" toml:"bins" yaml:"bins"`

	OneSample OneSample `json:"one_sample" toml:"one_sample" yaml:"one_sample"`
	Data      Data      `json:"data" toml:"data" yaml:"data"`
}

// DefaultRun is the two-population scenario: N(50, 10^2) against N(70, 10^2),
// 1200 members each, samples of 81 and 101 at alpha 0.05.
func DefaultRun() Run {
	return Run{
		LogLevel:       "info",
		Format:         "text",
		Alpha:          0.05,
		Population1:    Population{Mu: 50, Sigma: 10, Size: 1200},
		Population2:    Population{Mu: 70, Sigma: 10, Size: 1200},
		PopulationSeed: 42,
		SampleSeed:     123,
		N1:             81,
		N2:             101,
		Trials:         1000,
		Workers:        4,
		Engine:         string(factory.LB),
		Bins:           20,
		OneSample:      OneSample{Sizes: []int{10, 30, 100}, Alpha: 0.01, Seed: 42},
		Data:           Data{Encoding: "utf-8"},
	}
}

// LoadRunCfg reads the file at cfgPath over DefaultRun, so keys missing from
// the file keep their defaults.
func LoadRunCfg(cfgPath string) (Run, error) {
	cfg := DefaultRun()
	file, err := os.Open(cfgPath)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	if err := initRunConfig(file, cfgPath, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "load %s", cfgPath)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return cfg, err
	}
	statslog.Zero.Debug().Str("path", cfgPath).RawJSON("config", configBytes).Msg("running config")
	return cfg, nil
}

func initRunConfig(file *os.File, filepath string, cfg *Run) error {
	if strings.HasSuffix(filepath, ".toml") {
		_, err := toml.NewDecoder(file).Decode(cfg)
		return err
	}
	if strings.HasSuffix(filepath, ".yaml") || strings.HasSuffix(filepath, ".yml") {
		return yaml.NewDecoder(file).Decode(cfg)
	}
	if strings.HasSuffix(filepath, ".json") {
		return json.NewDecoder(file).Decode(cfg)
	}
	return fmt.Errorf("unknown config format type: %s. Use .toml, .yaml or .json suffix in filename", filepath)
}

// Validate checks the ranges every subcommand relies on.
func (r Run) Validate() error {
	if !(r.Alpha > 0 && r.Alpha < 1) {
		return errors.Wrapf(ErrInvalid, "alpha %v must be in (0, 1)", r.Alpha)
	}
	if !(r.OneSample.Alpha > 0 && r.OneSample.Alpha < 1) {
		return errors.Wrapf(ErrInvalid, "one_sample.alpha %v must be in (0, 1)", r.OneSample.Alpha)
	}
	for name, p := range map[string]Population{"population1": r.Population1, "population2": r.Population2} {
		if !(p.Sigma > 0) {
			return errors.Wrapf(ErrInvalid, "%s.sigma %v must be positive", name, p.Sigma)
		}
		if p.Size < 2 {
			return errors.Wrapf(ErrInvalid, "%s.size %d must be at least 2", name, p.Size)
		}
	}
	if r.N1 < 2 || r.N2 < 2 {
		return errors.Wrapf(ErrInvalid, "sample sizes %d and %d must be at least 2", r.N1, r.N2)
	}
	if r.N1 > r.Population1.Size || r.N2 > r.Population2.Size {
		return errors.Wrapf(ErrInvalid, "sample sizes %d and %d exceed the population sizes", r.N1, r.N2)
	}
	for _, n := range r.OneSample.Sizes {
		if n < 2 {
			return errors.Wrapf(ErrInvalid, "one_sample size %d must be at least 2", n)
		}
	}
	if r.Trials < 1 {
		return errors.Wrapf(ErrInvalid, "trials %d must be positive", r.Trials)
	}
	if r.Workers < 1 {
		return errors.Wrapf(ErrInvalid, "workers %d must be positive", r.Workers)
	}
	if _, err := factory.ParseStatsType(r.Engine); err != nil {
		return errors.WithMessage(err, "engine")
	}
	switch r.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalid, "format %q must be text or json", r.Format)
	}
	if r.Bins < 1 {
		return errors.Wrapf(ErrInvalid, "bins %d must be positive", r.Bins)
	}
	return nil
}

// StatsType returns the parsed accumulator engine.
func (r Run) StatsType() factory.StatsType {
	tp, err := factory.ParseStatsType(r.Engine)
	if err != nil {
		return factory.LB
	}
	return tp
}
