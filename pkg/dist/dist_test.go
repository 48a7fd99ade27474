package dist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantiles(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (float64, error)
		want float64
	}{
		{"z 0.975", func() (float64, error) { return NormalQuantile(0.975) }, 1.959963984540054},
		{"t 0.975 df10", func() (float64, error) { return StudentTQuantile(0.975, 10) }, 2.2281388519649385},
		{"t 0.995 df9", func() (float64, error) { return StudentTQuantile(0.995, 9) }, 3.2498355415921263},
		{"chi2 0.025 df9", func() (float64, error) { return ChiSquaredQuantile(0.025, 9) }, 2.7003894999803584},
		{"chi2 0.975 df9", func() (float64, error) { return ChiSquaredQuantile(0.975, 9) }, 19.02276780864163},
		{"F 0.95 (5,10)", func() (float64, error) { return FQuantile(0.95, 5, 10) }, 3.325834530413011},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestFReciprocalIdentity(t *testing.T) {
	for _, df := range [][2]float64{{80, 100}, {1, 1}, {4, 17}, {100, 80}} {
		for _, alpha := range []float64{0.01, 0.05, 0.1} {
			lo, err := FQuantile(alpha/2, df[0], df[1])
			require.NoError(t, err)
			hiSwapped, err := FQuantile(1-alpha/2, df[1], df[0])
			require.NoError(t, err)
			assert.InEpsilon(t, lo, 1/hiSwapped, 1e-9, "df=%v alpha=%v", df, alpha)
		}
	}
}

func TestCDFInvertsQuantile(t *testing.T) {
	for _, p := range []float64{0.025, 0.5, 0.975} {
		x, err := FQuantile(p, 7, 12)
		require.NoError(t, err)
		got, err := FCDF(x, 7, 12)
		require.NoError(t, err)
		assert.InDelta(t, p, got, 1e-9)

		x, err = StudentTQuantile(p, 6.5)
		require.NoError(t, err)
		got, err = StudentTCDF(x, 6.5)
		require.NoError(t, err)
		assert.InDelta(t, p, got, 1e-9)

		z, err := NormalQuantile(p)
		require.NoError(t, err)
		assert.InDelta(t, p, NormalCDF(z), 1e-12)
	}
}

func TestFCDFEdges(t *testing.T) {
	p, err := FCDF(0, 3, 4)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = FCDF(math.Inf(1), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestDomainErrors(t *testing.T) {
	_, err := NormalQuantile(0)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = NormalQuantile(math.NaN())
	assert.ErrorIs(t, err, ErrDomain)
	_, err = StudentTQuantile(0.5, 0)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = StudentTCDF(1, -3)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = ChiSquaredQuantile(1, 3)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = FQuantile(0.5, 3, math.Inf(1))
	assert.ErrorIs(t, err, ErrDomain)
	_, err = FCDF(1, 0, 3)
	assert.ErrorIs(t, err, ErrDomain)
}
