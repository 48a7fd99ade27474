package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleSample(t *testing.T) {
	got, err := SingleSample([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 8, got.N)
	assert.InDelta(t, 5.0, got.Mean, 1e-12)
	assert.InDelta(t, 32.0/7.0, got.Variance, 1e-12)
	assert.Equal(t, 7.0, got.DF)

	assert.InDelta(t, 3.21251208176379, got.MeanInterval.Lower, 1e-6)
	assert.InDelta(t, 6.787487918236209, got.MeanInterval.Upper, 1e-6)
	assert.InDelta(t, 1.9984057375215918, got.VarianceInterval.Lower, 1e-6)
	assert.InDelta(t, 18.936377067468243, got.VarianceInterval.Upper, 1e-5)
	assert.InDelta(t, -0.3624637547086289, got.PredictionInterval.Lower, 1e-6)
	assert.InDelta(t, 10.362463754708628, got.PredictionInterval.Upper, 1e-6)
}

func TestSingleSamplePredictionWiderThanMean(t *testing.T) {
	sample := []float64{812, 640, 955, 701, 1003, 590, 877, 760, 690, 925}
	for _, alpha := range []float64{0.01, 0.05, 0.1} {
		got, err := SingleSample(sample, alpha)
		require.NoError(t, err)
		assert.Greater(t, got.PredictionInterval.Width(), got.MeanInterval.Width())
		assert.True(t, got.VarianceInterval.Contains(got.Variance))
		assert.InDelta(t, 1-alpha, got.MeanInterval.Level, 1e-12)
	}
}

func TestSingleSampleErrors(t *testing.T) {
	_, err := SingleSample([]float64{4}, 0.05)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = SingleSample([]float64{4, 5}, -0.1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
