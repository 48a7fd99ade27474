package sampling

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestStreamIsReproducible(t *testing.T) {
	a, err := NewStream(42).Normal(50, 10, 20)
	require.NoError(t, err)
	b, err := NewStream(42).Normal(50, 10, 20)
	require.NoError(t, err)
	c, err := NewStream(43).Normal(50, 10, 20)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestNormalPopulationMoments(t *testing.T) {
	pop, err := NormalPopulation(50, 10, 20000, 42)
	require.NoError(t, err)
	require.Len(t, pop, 20000)

	mean, variance := stat.MeanVariance(pop, nil)
	// 20000 draws: SE of the mean is 0.07, of the variance about 1.
	assert.InDelta(t, 50, mean, 0.5)
	assert.InDelta(t, 100, variance, 6)
}

func TestChooseWithoutReplacement(t *testing.T) {
	population := make([]float64, 100)
	for i := range population {
		population[i] = float64(i)
	}

	s := NewStream(123)
	got, err := s.Choose(population, 40)
	require.NoError(t, err)
	require.Len(t, got, 40)

	seen := map[float64]bool{}
	for _, x := range got {
		assert.False(t, seen[x], "duplicate %v", x)
		seen[x] = true
	}

	all, err := s.Choose(population, 100)
	require.NoError(t, err)
	sort.Float64s(all)
	assert.Equal(t, population, all)

	_, err = s.Choose(population, 101)
	assert.ErrorIs(t, err, ErrSampleTooLarge)
	_, err = s.Choose(population, -1)
	assert.ErrorIs(t, err, ErrBadParameter)
}

func TestChooseWithReplacementAndPick(t *testing.T) {
	s := NewStream(7)
	got, err := s.ChooseWithReplacement([]float64{1, 2, 3}, 50)
	require.NoError(t, err)
	require.Len(t, got, 50)
	for _, x := range got {
		assert.Contains(t, []float64{1, 2, 3}, x)
	}

	_, err = s.ChooseWithReplacement(nil, 1)
	assert.ErrorIs(t, err, ErrSampleTooLarge)

	x, err := s.Pick([]float64{9})
	require.NoError(t, err)
	assert.Equal(t, 9.0, x)

	_, err = s.Pick(nil)
	assert.ErrorIs(t, err, ErrSampleTooLarge)
}

func TestBadParameters(t *testing.T) {
	_, err := NewStream(1).Normal(0, 0, 3)
	assert.ErrorIs(t, err, ErrBadParameter)
	_, err = NormalPopulation(0, 1, 0, 1)
	assert.ErrorIs(t, err, ErrBadParameter)
}

func TestTrialSeed(t *testing.T) {
	seen := map[uint64]bool{}
	for i := 0; i < 1000; i++ {
		s := TrialSeed(42, i)
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.Equal(t, TrialSeed(42, 5), TrialSeed(42, 5))
	assert.NotEqual(t, TrialSeed(42, 5), TrialSeed(43, 5))
}
