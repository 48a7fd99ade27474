// Package describe computes descriptive statistics and equal-width
// histograms over an in-memory sample.
package describe

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned for an empty sample.
var ErrNoData = errors.New("no data")

// Summary mirrors the usual count/mean/std/min/quartiles/max table.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // unbiased; zero for a single value
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarises values. Quartiles use linear interpolation of the
// empirical CDF.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoData
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s, nil
}

// Bin is one histogram bucket covering [Lower, Upper).
type Bin struct {
	Lower   float64
	Upper   float64
	Count   int
	Density float64 // Count / (total * width)
}

// Histogram splits [min, max] into bins equal-width buckets. The maximum
// falls in the last bucket.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	if bins < 1 {
		return nil, errors.Errorf("histogram needs at least one bin, got %d", bins)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	width := dividers[1] - dividers[0]
	// stat.Histogram buckets are half open; nudge the last edge past the max.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	out := make([]Bin, bins)
	total := float64(len(sorted))
	for i := range out {
		out[i] = Bin{
			Lower:   dividers[i],
			Upper:   dividers[i+1],
			Count:   int(counts[i]),
			Density: counts[i] / (total * width),
		}
	}
	out[bins-1].Upper = hi
	return out, nil
}
