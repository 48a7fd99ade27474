package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank-93rao/statinfer/pkg/stats/factory"
)

type section struct {
	Kind  string          `json:"kind"`
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func runJSON(t *testing.T, args ...string) []section {
	t.Helper()
	out, err := execute(append(args, "--format", "json")...)
	require.NoError(t, err)

	var sections []section
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var s section
		require.NoError(t, json.Unmarshal([]byte(line), &s), line)
		sections = append(sections, s)
	}
	return sections
}

func find[T any](t *testing.T, sections []section, kind string) T {
	t.Helper()
	for _, s := range sections {
		if s.Kind == kind {
			var v T
			require.NoError(t, json.Unmarshal(s.Data, &v))
			return v
		}
	}
	require.Failf(t, "missing section", "%s", kind)
	var zero T
	return zero
}

type summaryRow struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

type intervalRow struct {
	Assumption string   `json:"assumption"`
	Estimate   float64  `json:"estimate"`
	StdErr     float64  `json:"std_err"`
	DF         *float64 `json:"df"`
	Lower      float64  `json:"lower"`
	Upper      float64  `json:"upper"`
	Level      float64  `json:"level"`
	Width      float64  `json:"width"`
	Covers     *bool    `json:"covers"`
}

type testRow struct {
	Name   string  `json:"name"`
	PValue float64 `json:"p_value"`
	Reject bool    `json:"reject"`
}

type coverageRow struct {
	Label  string  `json:"label"`
	Hits   int     `json:"hits"`
	Trials int     `json:"trials"`
	Rate   float64 `json:"rate"`
}

func TestTwoSampleScenario(t *testing.T) {
	sections := runJSON(t, "twosample")

	samples := find[[]summaryRow](t, sections, "summaries")
	require.Len(t, samples, 2)
	assert.Equal(t, 81, samples[0].Count)
	assert.Equal(t, 101, samples[1].Count)

	rows := find[[]intervalRow](t, sections, "intervals")
	require.Len(t, rows, 3)
	known, pooled, welch := rows[0], rows[1], rows[2]
	assert.Equal(t, "known variance", known.Assumption)
	assert.Nil(t, known.DF)
	require.NotNil(t, pooled.DF)
	assert.Equal(t, 180.0, *pooled.DF)
	require.NotNil(t, welch.DF)

	for _, r := range rows {
		assert.Equal(t, known.Estimate, r.Estimate)
		assert.InDelta(t, 0.95, r.Level, 1e-12)
		assert.InDelta(t, r.Upper-r.Lower, r.Width, 1e-9)
		assert.Less(t, r.Lower, r.Estimate)
		assert.Greater(t, r.Upper, r.Estimate)
		require.NotNil(t, r.Covers)
		assert.True(t, *r.Covers, r.Assumption)
		assert.True(t, r.Lower <= 20 && 20 <= r.Upper, r.Assumption)
	}
	// Populations of 1200 around 50 and 70 with sigma 10: SE near 1.4.
	assert.Less(t, math.Abs(known.Estimate-20), 5*known.StdErr)
	assert.LessOrEqual(t, known.Width, pooled.Width)
	assert.LessOrEqual(t, pooled.Width, welch.Width*(1+1e-3))
	assert.InEpsilon(t, pooled.Width, welch.Width, 0.06)

	tests := find[[]testRow](t, sections, "tests")
	require.Len(t, tests, 4)
	for _, r := range tests[:3] {
		assert.True(t, r.Reject, r.Name)
		assert.Less(t, r.PValue, 1e-6, r.Name)
	}
}

func TestTwoSampleIsReproducible(t *testing.T) {
	first, err := execute("twosample", "--format", "json")
	require.NoError(t, err)
	second, err := execute("twosample", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := execute("twosample", "--format", "json", "--sample-seed", "7")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("n1 = 30\nn2 = 35\nalpha = 0.1\n"), 0o600))

	sections := runJSON(t, "twosample", "--config", path, "--n2", "40")
	samples := find[[]summaryRow](t, sections, "summaries")
	assert.Equal(t, 30, samples[0].Count)
	assert.Equal(t, 40, samples[1].Count)

	rows := find[[]intervalRow](t, sections, "intervals")
	assert.InDelta(t, 0.9, rows[0].Level, 1e-12)
}

func TestPopulations(t *testing.T) {
	sections := runJSON(t, "populations", "--bins", "5")
	rows := find[[]summaryRow](t, sections, "summaries")
	require.Len(t, rows, 4)
	assert.Equal(t, []int{1200, 1200, 81, 101}, []int{rows[0].Count, rows[1].Count, rows[2].Count, rows[3].Count})
	assert.InDelta(t, 50, rows[0].Mean, 1.5)
	assert.InDelta(t, 70, rows[1].Mean, 1.5)

	var histograms int
	for _, s := range sections {
		if s.Kind == "histogram" {
			histograms++
			var bins []struct {
				Count int `json:"count"`
			}
			require.NoError(t, json.Unmarshal(s.Data, &bins))
			require.Len(t, bins, 5)
			total := 0
			for _, b := range bins {
				total += b.Count
			}
			assert.Equal(t, 1200, total)
		}
	}
	assert.Equal(t, 2, histograms)
}

func TestRatio(t *testing.T) {
	sections := runJSON(t, "ratio")
	ratio := find[struct {
		Ratio float64 `json:"ratio"`
		DF1   float64 `json:"df1"`
		DF2   float64 `json:"df2"`
		Lower float64 `json:"lower"`
		Upper float64 `json:"upper"`
	}](t, sections, "ratio")
	assert.Equal(t, 80.0, ratio.DF1)
	assert.Equal(t, 100.0, ratio.DF2)
	assert.Less(t, ratio.Lower, ratio.Ratio)
	assert.Greater(t, ratio.Upper, ratio.Ratio)

	perSample := find[[]struct {
		N          int       `json:"n"`
		VarianceCI []float64 `json:"variance_interval"`
	}](t, sections, "single_sample")
	require.Len(t, perSample, 2)
	assert.Equal(t, 81, perSample[0].N)
	assert.Equal(t, 101, perSample[1].N)
}

func TestOneSampleSimulated(t *testing.T) {
	sections := runJSON(t, "onesample", "--sizes", "10,30,100")
	rows := find[[]struct {
		N          int       `json:"n"`
		Prediction []float64 `json:"prediction_interval"`
		Actual     *float64  `json:"actual"`
		Predicted  *bool     `json:"predicted"`
	}](t, sections, "single_sample")
	require.Len(t, rows, 3)
	for i, n := range []int{10, 30, 100} {
		assert.Equal(t, n, rows[i].N)
		require.NotNil(t, rows[i].Actual)
		require.NotNil(t, rows[i].Predicted)
		inside := rows[i].Prediction[0] <= *rows[i].Actual && *rows[i].Actual <= rows[i].Prediction[1]
		assert.Equal(t, inside, *rows[i].Predicted)
	}
}

const rents = `region,rent
seoul,"1,000"
busan,700
seoul,1200
seoul,
seoul,900
seoul,1100
seoul,1300
busan,650
seoul,1000
seoul,950
seoul,1050
seoul,1250
seoul,800
`

func writeRents(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rents.csv")
	require.NoError(t, os.WriteFile(path, []byte(rents), 0o600))
	return path
}

func TestOneSampleFromData(t *testing.T) {
	path := writeRents(t)
	sections := runJSON(t, "onesample", "--data", path, "--value-field", "rent",
		"--filter-field", "region", "--filter-value", "seoul", "--sizes", "5,10")

	source := find[[]summaryRow](t, sections, "summaries")
	require.Len(t, source, 1)
	assert.Equal(t, 11, source[0].Count)
	assert.Equal(t, "rent", source[0].Name)

	_, err := execute("onesample", "--data", path, "--value-field", "rent",
		"--filter-field", "region", "--filter-value", "seoul", "--sizes", "50")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	path := writeRents(t)
	for _, engine := range []string{"lb", "CH"} {
		t.Run(engine, func(t *testing.T) {
			sections := runJSON(t, "describe", path, "--value-field", "rent",
				"--filter-field", "region", "--filter-value", "seoul", "--bins", "4", "--engine", engine)

			rows := find[[]summaryRow](t, sections, "summaries")
			require.Len(t, rows, 2)
			assert.Equal(t, "exact", rows[0].Name)
			assert.Equal(t, 11, rows[0].Count)
			assert.Equal(t, rows[0].Count, rows[1].Count)
			assert.InDelta(t, rows[0].Mean, rows[1].Mean, 1e-9)

			bins := find[[]struct {
				Count int `json:"count"`
			}](t, sections, "histogram")
			assert.Len(t, bins, 4)
		})
	}

	out, err := execute("describe", path, "--value-field", "rent")
	require.NoError(t, err)
	assert.Contains(t, out, "13 rows, 13 matched, 1 dropped")
	assert.Contains(t, out, "streaming (LB)")

	_, err = execute("describe", "--value-field", "rent")
	assert.Error(t, err)
}

func TestCoverage(t *testing.T) {
	sections := runJSON(t, "coverage", "--trials", "400", "--workers", "4", "--n1", "20", "--n2", "25")

	var coverage [][]coverageRow
	for _, s := range sections {
		if s.Kind == "coverage" {
			var rows []coverageRow
			require.NoError(t, json.Unmarshal(s.Data, &rows))
			coverage = append(coverage, rows)
		}
	}
	require.Len(t, coverage, 2)
	require.Len(t, coverage[0], 3)
	require.Len(t, coverage[1], 1)
	for _, rows := range coverage {
		for _, r := range rows {
			assert.Equal(t, 400, r.Trials, r.Label)
			assert.InDelta(t, 0.95, r.Rate, 0.04, r.Label)
		}
	}

	dist := find[struct {
		Count         int      `json:"count"`
		Mean          float64  `json:"mean"`
		TheoreticalSE *float64 `json:"theoretical_se"`
	}](t, sections, "distribution")
	assert.Equal(t, 400, dist.Count)
	assert.InDelta(t, 20, dist.Mean, 1)
	require.NotNil(t, dist.TheoreticalSE)
	assert.InDelta(t, math.Sqrt(100.0/20+100.0/25), *dist.TheoreticalSE, 1e-12)
}

func TestCoverageFinite(t *testing.T) {
	sections := runJSON(t, "coverage", "--finite", "--trials", "50", "--engine", "ch")
	rows := find[[]coverageRow](t, sections, "coverage")
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 50, r.Trials)
	}
}

func TestInvalidInvocations(t *testing.T) {
	for name, args := range map[string][]string{
		"alpha":    {"twosample", "--alpha", "2"},
		"format":   {"twosample", "--format", "xml"},
		"level":    {"twosample", "--log-level", "loud"},
		"sample":   {"twosample", "--n1", "5000"},
		"config":   {"twosample", "--config", "missing.ini"},
		"args":     {"twosample", "extra"},
		"encoding": {"describe", "x.csv", "--value-field", "v", "--encoding", "klingon"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(args...)
			assert.Error(t, err)
		})
	}
}

func TestUnknownEngine(t *testing.T) {
	_, err := execute("coverage", "--engine", "gpu")
	assert.ErrorIs(t, err, factory.ErrUnknownStatsType)
}

func TestTextOutput(t *testing.T) {
	out, err := execute("twosample")
	require.NoError(t, err)
	for _, want := range []string{"mu2 - mu1", "known variance", "Welch t", "covers 20"} {
		assert.Contains(t, out, want)
	}
}
