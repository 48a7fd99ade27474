package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shashank-93rao/statinfer/pkg/dataset"
	"github.com/shashank-93rao/statinfer/pkg/describe"
	"github.com/shashank-93rao/statinfer/pkg/report"
	"github.com/shashank-93rao/statinfer/pkg/stats/factory"
)

func (a *app) describeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [csv-file]",
		Short: "Summarise one CSV column, exactly and through a streaming accumulator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Data.Path = args[0]
			}
			data := a.cfg.Data
			if data.Path == "" || data.ValueField == "" {
				return errors.New("describe needs a CSV file and --value-field")
			}
			ctx := cmd.Context()

			values, err := dataset.LoadFile(ctx, data.Path, data.Query())
			if err != nil {
				return err
			}
			exact, err := describe.Describe(values)
			if err != nil {
				return errors.WithMessage(err, data.ValueField)
			}

			engine := a.cfg.StatsType()
			streamed, counts, err := streamSummary(ctx, engine, data.Path, data.Query())
			if err != nil {
				return err
			}
			if err := a.out.Note("%s: %d rows, %d matched, %d dropped as missing",
				data.Path, counts.Rows, counts.Matched, counts.Dropped); err != nil {
				return err
			}
			if err := a.out.Summaries(data.ValueField, []report.NamedSummary{
				{Name: "exact", Summary: exact},
				{Name: fmt.Sprintf("streaming (%s)", engine), Summary: streamed},
			}); err != nil {
				return err
			}

			bins, err := describe.Histogram(values, a.cfg.Bins)
			if err != nil {
				return err
			}
			return a.out.Histogram(data.ValueField, bins)
		},
	}
	a.dataFlags(cmd)
	a.binsFlag(cmd)
	a.engineFlag(cmd)
	return cmd
}

// streamSummary feeds the column into an accumulator in a single pass.
func streamSummary(ctx context.Context, engine factory.StatsType, path string, q dataset.Query) (describe.Summary, dataset.Counts, error) {
	// The accumulator lives until the summary has been read back.
	accCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	acc, err := factory.GetStats(accCtx, engine)
	if err != nil {
		return describe.Summary{}, dataset.Counts{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return describe.Summary{}, dataset.Counts{}, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	counts, err := dataset.Stream(accCtx, f, q, acc)
	if err != nil {
		return describe.Summary{}, counts, err
	}
	s, err := accumulatorSummary(accCtx, acc)
	return s, counts, err
}
