package main

import (
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/config"
	"github.com/shashank-93rao/statinfer/pkg/report"
	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

// app carries the resolved run config and printer to every subcommand.
type app struct {
	cfgPath string
	cfg     config.Run
	out     *report.Printer

	overrides []override
}

// override copies a flag value into the run config when the flag was set on
// the command line, so flags win over the config file.
type override struct {
	owner *cobra.Command
	name  string
	apply func(*config.Run)
}

func bind[T any](a *app, owner *cobra.Command, name string, value *T, apply func(*config.Run, T)) {
	a.overrides = append(a.overrides, override{
		owner: owner,
		name:  name,
		apply: func(r *config.Run) { apply(r, *value) },
	})
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.DefaultRun()

	root := &cobra.Command{
		Use:   "statinfer",
		Short: "Interval estimation and hypothesis tests for two samples",
		Long: "statinfer estimates the difference of two population means under known, equal or " +
			"unequal variances, the ratio of two variances, single-sample intervals, and measures " +
			"the coverage of those intervals by simulation.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgPath, "config", "c", "", "path to a .toml, .yaml or .json run config")

	var logLevel, format string
	flags.StringVar(&logLevel, "log-level", defaults.LogLevel, "debug, info, warning, error or fatal")
	bind(a, root, "log-level", &logLevel, func(r *config.Run, v string) { r.LogLevel = v })
	flags.StringVar(&format, "format", defaults.Format, "output format, text or json")
	bind(a, root, "format", &format, func(r *config.Run, v string) { r.Format = v })

	root.AddCommand(
		a.populationsCmd(),
		a.twoSampleCmd(),
		a.ratioCmd(),
		a.oneSampleCmd(),
		a.describeCmd(),
		a.coverageCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.DefaultRun()
	if a.cfgPath != "" {
		cfg, err := config.LoadRunCfg(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	for _, o := range a.overrides {
		if o.owner != cmd && o.owner != cmd.Root() {
			continue
		}
		if cmd.Flags().Changed(o.name) {
			o.apply(&a.cfg)
		}
	}

	if err := statslog.UpdateZeroLogLevel(a.cfg.LogLevel); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	format, err := report.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	a.out = report.New(cmd.OutOrStdout(), format)

	statslog.Zero.Debug().
		Str("command", cmd.Name()).
		Str("config", a.cfgPath).
		Float64("alpha", a.cfg.Alpha).
		Msg("run config resolved")
	return nil
}
