package describe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[99-i] = float64(i + 1)
	}

	s, err := Describe(values)
	require.NoError(t, err)

	assert.Equal(t, 100, s.Count)
	assert.InDelta(t, 50.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(841.6666666666666), s.StdDev, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.InDelta(t, 25.5, s.Q1, 1)
	assert.InDelta(t, 50.5, s.Median, 1)
	assert.InDelta(t, 75.5, s.Q3, 1)
	assert.True(t, s.Min <= s.Q1 && s.Q1 <= s.Median && s.Median <= s.Q3 && s.Q3 <= s.Max)

	// input order is left alone
	assert.Equal(t, 100.0, values[0])
}

func TestDescribeSingleValue(t *testing.T) {
	s, err := Describe([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, s.Median)
	assert.Zero(t, s.StdDev)

	_, err = Describe(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistogram(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	bins, err := Histogram(values, 5)
	require.NoError(t, err)
	require.Len(t, bins, 5)

	counts := make([]int, len(bins))
	total := 0
	var area float64
	for i, b := range bins {
		counts[i] = b.Count
		total += b.Count
		area += b.Density * (b.Upper - b.Lower)
	}
	assert.Equal(t, []int{2, 2, 2, 2, 3}, counts)
	assert.Equal(t, 11, total)
	assert.InDelta(t, 1.0, area, 1e-9)
	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 10.0, bins[4].Upper)
}

func TestHistogramConstantValues(t *testing.T) {
	bins, err := Histogram([]float64{3, 3, 3}, 4)
	require.NoError(t, err)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestHistogramErrors(t *testing.T) {
	_, err := Histogram(nil, 3)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Histogram([]float64{1, 2}, 0)
	assert.Error(t, err)
}
