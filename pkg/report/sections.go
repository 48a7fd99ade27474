package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/shashank-93rao/statinfer/pkg/describe"
	"github.com/shashank-93rao/statinfer/pkg/inference"
	"github.com/shashank-93rao/statinfer/pkg/simulate"
)

// NamedSummary labels a descriptive summary, e.g. "population 1" or "sample 2".
type NamedSummary struct {
	Name    string
	Summary describe.Summary
}

type summaryJSON struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summaries prints one row per summary.
func (p *Printer) Summaries(title string, rows []NamedSummary) error {
	data := make([]summaryJSON, 0, len(rows))
	for _, r := range rows {
		s := r.Summary
		data = append(data, summaryJSON{
			Name: r.Name, Count: s.Count, Mean: s.Mean, StdDev: s.StdDev,
			Min: s.Min, Q1: s.Q1, Median: s.Median, Q3: s.Q3, Max: s.Max,
		})
	}
	return p.emit("summaries", title, data, func() string {
		cells := make([][]string, 0, len(rows))
		for _, r := range rows {
			s := r.Summary
			cells = append(cells, []string{
				r.Name, fmt.Sprint(s.Count), num(s.Mean), num(s.StdDev),
				num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max),
			})
		}
		return render([]string{"", "n", "mean", "sd", "min", "q1", "median", "q3", "max"},
			cells, 1, 2, 3, 4, 5, 6, 7, 8)
	})
}

type intervalJSON struct {
	Assumption string   `json:"assumption"`
	Estimate   float64  `json:"estimate"`
	StdErr     float64  `json:"std_err"`
	DF         *float64 `json:"df"`
	Critical   float64  `json:"critical"`
	Lower      float64  `json:"lower"`
	Upper      float64  `json:"upper"`
	Level      float64  `json:"level"`
	Width      float64  `json:"width"`
	Covers     *bool    `json:"covers,omitempty"`
}

// Intervals prints the mean-difference intervals side by side. When truth is
// not NaN a column reports whether each interval covers it.
func (p *Printer) Intervals(title string, results []inference.MeanDifference, truth float64) error {
	known := !math.IsNaN(truth)
	data := make([]intervalJSON, 0, len(results))
	for _, r := range results {
		row := intervalJSON{
			Assumption: r.Assumption.String(),
			Estimate:   r.Estimate,
			StdErr:     r.StdErr,
			DF:         finite(r.DF),
			Critical:   r.Critical,
			Lower:      r.Interval.Lower,
			Upper:      r.Interval.Upper,
			Level:      r.Interval.Level,
			Width:      r.Interval.Width(),
		}
		if known {
			covers := r.Interval.Contains(truth)
			row.Covers = &covers
		}
		data = append(data, row)
	}

	return p.emit("intervals", title, data, func() string {
		headers := []string{"assumption", "estimate", "se", "df", "critical", "lower", "upper", "width"}
		if known {
			headers = append(headers, "covers "+num(truth))
		}
		cells := make([][]string, 0, len(results))
		for _, r := range results {
			row := []string{
				r.Assumption.String(), num(r.Estimate), num(r.StdErr), num(r.DF), num(r.Critical),
				num(r.Interval.Lower), num(r.Interval.Upper), num(r.Interval.Width()),
			}
			if known {
				row = append(row, yesNo(r.Interval.Contains(truth)))
			}
			cells = append(cells, row)
		}
		return render(headers, cells, 1, 2, 3, 4, 5, 6, 7)
	})
}

// NamedTest labels a hypothesis test outcome.
type NamedTest struct {
	Name   string
	Result inference.TestResult
}

type testJSON struct {
	Name      string   `json:"name"`
	Statistic float64  `json:"statistic"`
	DF        *float64 `json:"df"`
	DF2       *float64 `json:"df2,omitempty"`
	PValue    float64  `json:"p_value"`
	Reject    bool     `json:"reject"`
}

// Tests prints the two-sided tests with their decision at alpha.
func (p *Printer) Tests(title string, tests []NamedTest, alpha float64) error {
	data := make([]testJSON, 0, len(tests))
	for _, t := range tests {
		row := testJSON{
			Name:      t.Name,
			Statistic: t.Result.Statistic,
			DF:        finite(t.Result.DF),
			PValue:    t.Result.PValue,
			Reject:    t.Result.Reject(alpha),
		}
		if t.Result.DF2 > 0 {
			row.DF2 = finite(t.Result.DF2)
		}
		data = append(data, row)
	}

	return p.emit("tests", title, data, func() string {
		cells := make([][]string, 0, len(tests))
		for _, t := range tests {
			df := num(t.Result.DF)
			if t.Result.DF2 > 0 {
				df += ", " + num(t.Result.DF2)
			}
			cells = append(cells, []string{
				t.Name, num(t.Result.Statistic), df, num(t.Result.PValue),
				yesNo(t.Result.Reject(alpha)),
			})
		}
		return render([]string{"test", "statistic", "df", "p-value", fmt.Sprintf("reject at %v", alpha)},
			cells, 1, 2, 3)
	})
}

type ratioJSON struct {
	Ratio  float64 `json:"ratio"`
	DF1    float64 `json:"df1"`
	DF2    float64 `json:"df2"`
	FUpper float64 `json:"f_upper"`
	FLower float64 `json:"f_lower"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Level  float64 `json:"level"`
	Covers *bool   `json:"covers,omitempty"`
}

// Ratio prints the variance-ratio interval. A NaN truth skips the coverage row.
func (p *Printer) Ratio(title string, r inference.RatioInterval, truth float64) error {
	data := ratioJSON{
		Ratio:  r.Ratio,
		DF1:    r.DF1,
		DF2:    r.DF2,
		FUpper: r.FUpper,
		FLower: r.FLower,
		Lower:  r.Interval.Lower,
		Upper:  r.Interval.Upper,
		Level:  r.Interval.Level,
	}
	if !math.IsNaN(truth) {
		covers := r.Interval.Contains(truth)
		data.Covers = &covers
	}

	return p.emit("ratio", title, data, func() string {
		cells := [][]string{
			{"S1^2 / S2^2", num(r.Ratio)},
			{"df", fmt.Sprintf("%v, %v", r.DF1, r.DF2)},
			{"F upper", num(r.FUpper)},
			{"F lower", num(r.FLower)},
			{num(100*r.Interval.Level) + "% interval", fmt.Sprintf("[%s, %s]", num(r.Interval.Lower), num(r.Interval.Upper))},
		}
		if data.Covers != nil {
			cells = append(cells, []string{"covers " + num(truth), yesNo(*data.Covers)})
		}
		return render([]string{"", "value"}, cells, 1)
	})
}

// SingleSampleRow pairs the one-sample intervals with an optional actual
// observation checked against the prediction interval.
type SingleSampleRow struct {
	Intervals inference.SingleSampleIntervals
	Actual    *float64
}

type singleJSON struct {
	N          int       `json:"n"`
	Mean       float64   `json:"mean"`
	StdDev     float64   `json:"std_dev"`
	TCritical  float64   `json:"t_critical"`
	MeanCI     []float64 `json:"mean_interval"`
	VarianceCI []float64 `json:"variance_interval"`
	Prediction []float64 `json:"prediction_interval"`
	Actual     *float64  `json:"actual,omitempty"`
	Predicted  *bool     `json:"predicted,omitempty"`
}

func bounds(i inference.Interval) []float64 {
	return []float64{i.Lower, i.Upper}
}

func pair(i inference.Interval) string {
	return fmt.Sprintf("[%s, %s]", num(i.Lower), num(i.Upper))
}

// SingleSample prints one row per sample size.
func (p *Printer) SingleSample(title string, rows []SingleSampleRow) error {
	data := make([]singleJSON, 0, len(rows))
	for _, r := range rows {
		s := r.Intervals
		row := singleJSON{
			N:          s.N,
			Mean:       s.Mean,
			StdDev:     s.StdDev,
			TCritical:  s.TCritical,
			MeanCI:     bounds(s.MeanInterval),
			VarianceCI: bounds(s.VarianceInterval),
			Prediction: bounds(s.PredictionInterval),
			Actual:     r.Actual,
		}
		if r.Actual != nil {
			in := s.PredictionInterval.Contains(*r.Actual)
			row.Predicted = &in
		}
		data = append(data, row)
	}

	return p.emit("single_sample", title, data, func() string {
		cells := make([][]string, 0, len(rows))
		for i, r := range rows {
			s := r.Intervals
			actual, in := "-", "-"
			if r.Actual != nil {
				actual, in = num(*r.Actual), yesNo(*data[i].Predicted)
			}
			cells = append(cells, []string{
				fmt.Sprint(s.N), num(s.Mean), num(s.StdDev), num(s.TCritical),
				pair(s.MeanInterval), pair(s.VarianceInterval), pair(s.PredictionInterval),
				actual, in,
			})
		}
		return render([]string{"n", "mean", "sd", "t", "mean interval", "variance interval",
			"prediction interval", "actual", "inside"}, cells, 0, 1, 2, 3, 7)
	})
}

type coverageJSON struct {
	Label  string  `json:"label"`
	Hits   int     `json:"hits"`
	Trials int     `json:"trials"`
	Rate   float64 `json:"rate"`
}

type distributionJSON struct {
	Name          string   `json:"name"`
	Count         int64    `json:"count"`
	Mean          float64  `json:"mean"`
	StdDev        float64  `json:"std_dev"`
	Min           float64  `json:"min"`
	Median        float64  `json:"median"`
	Max           float64  `json:"max"`
	TheoreticalSE *float64 `json:"theoretical_se,omitempty"`
}

// Coverage prints the hit rate of each interval against the nominal level.
func (p *Printer) Coverage(title string, rows []simulate.Coverage, level float64) error {
	data := make([]coverageJSON, 0, len(rows))
	for _, c := range rows {
		data = append(data, coverageJSON{Label: c.Label, Hits: c.Hits, Trials: c.Trials, Rate: c.Rate()})
	}
	return p.emit("coverage", title, data, func() string {
		cells := make([][]string, 0, len(rows))
		for _, c := range rows {
			cells = append(cells, []string{
				c.Label, fmt.Sprint(c.Hits), fmt.Sprint(c.Trials),
				fmt.Sprintf("%.4f", c.Rate()), fmt.Sprintf("%.4f", level),
			})
		}
		return render([]string{"interval", "hits", "trials", "rate", "nominal"}, cells, 1, 2, 3, 4)
	})
}

// Distribution prints the sampling distribution of a repeated estimate. A
// NaN theoreticalSE omits the comparison.
func (p *Printer) Distribution(title, name string, d simulate.Distribution, theoreticalSE float64) error {
	data := distributionJSON{
		Name: name, Count: d.Count, Mean: d.Mean, StdDev: d.StdDev,
		Min: d.Min, Median: d.Median, Max: d.Max,
		TheoreticalSE: finite(theoreticalSE),
	}
	return p.emit("distribution", title, data, func() string {
		headers := []string{"", "count", "mean", "sd", "min", "median", "max"}
		row := []string{name, fmt.Sprint(d.Count), num(d.Mean), num(d.StdDev), num(d.Min), num(d.Median), num(d.Max)}
		if data.TheoreticalSE != nil {
			headers = append(headers, "theoretical se")
			row = append(row, num(theoreticalSE))
		}
		return render(headers, [][]string{row}, 1, 2, 3, 4, 5, 6, 7)
	})
}

const barWidth = 40

type binJSON struct {
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// Histogram draws one bar per bin, scaled to the fullest bin.
func (p *Printer) Histogram(title string, bins []describe.Bin) error {
	data := make([]binJSON, 0, len(bins))
	for _, b := range bins {
		data = append(data, binJSON{Lower: b.Lower, Upper: b.Upper, Count: b.Count, Density: b.Density})
	}
	return p.emit("histogram", title, data, func() string {
		peak := 0
		for _, b := range bins {
			peak = max(peak, b.Count)
		}
		labels := make([]string, len(bins))
		width := 0
		for i, b := range bins {
			labels[i] = fmt.Sprintf("[%s, %s)", num(b.Lower), num(b.Upper))
			width = max(width, len(labels[i]))
		}

		var sb strings.Builder
		for i, b := range bins {
			n := 0
			if peak > 0 {
				n = int(math.Round(float64(b.Count) / float64(peak) * barWidth))
			}
			fmt.Fprintf(&sb, "%-*s %s %d\n", width, labels[i], strings.Repeat("█", n), b.Count)
		}
		return strings.TrimSuffix(sb.String(), "\n")
	})
}
