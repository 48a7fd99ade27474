// Package sampling draws reproducible random samples. Every draw goes
// through a Stream created from an explicit seed; nothing here touches a
// process-wide generator.
package sampling

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

var (
	// ErrSampleTooLarge is returned when more elements are requested without
	// replacement than the population holds.
	ErrSampleTooLarge = errors.New("sample larger than population")

	// ErrBadParameter reports an invalid distribution parameter or size.
	ErrBadParameter = errors.New("invalid sampling parameter")
)

// Stream is an owned pseudo-random stream. It is not safe for concurrent
// use; give each goroutine its own Stream.
type Stream struct {
	seed uint64
	src  rand.Source
	rng  *rand.Rand
}

// NewStream returns a stream seeded with seed. Equal seeds give equal draws.
func NewStream(seed uint64) *Stream {
	src := rand.NewSource(seed)
	return &Stream{seed: seed, src: src, rng: rand.New(src)}
}

func (s *Stream) Seed() uint64 {
	return s.seed
}

// Normal draws n values from Normal(mu, sigma).
func (s *Stream) Normal(mu, sigma float64, n int) ([]float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, errors.Wrapf(ErrBadParameter, "normal(%v, %v)", mu, sigma)
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrBadParameter, "size %d", n)
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out, nil
}

// Choose draws k elements of population without replacement.
func (s *Stream) Choose(population []float64, k int) ([]float64, error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrBadParameter, "size %d", k)
	}
	if k > len(population) {
		return nil, errors.Wrapf(ErrSampleTooLarge, "%d of %d", k, len(population))
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, len(population), s.src)
	out := make([]float64, k)
	for i, idx := range idxs {
		out[i] = population[idx]
	}
	return out, nil
}

// ChooseWithReplacement draws k elements of population with replacement.
func (s *Stream) ChooseWithReplacement(population []float64, k int) ([]float64, error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrBadParameter, "size %d", k)
	}
	if k > 0 && len(population) == 0 {
		return nil, errors.Wrap(ErrSampleTooLarge, "empty population")
	}
	out := make([]float64, k)
	for i := range out {
		out[i] = population[s.rng.Intn(len(population))]
	}
	return out, nil
}

// Pick returns one uniformly chosen element of population.
func (s *Stream) Pick(population []float64) (float64, error) {
	if len(population) == 0 {
		return 0, errors.Wrap(ErrSampleTooLarge, "empty population")
	}
	return population[s.rng.Intn(len(population))], nil
}

// NormalPopulation simulates a finite population of size values drawn from
// Normal(mu, sigma) with its own stream seeded by seed.
func NormalPopulation(mu, sigma float64, size int, seed uint64) ([]float64, error) {
	if size < 1 {
		return nil, errors.Wrapf(ErrBadParameter, "population size %d", size)
	}
	return NewStream(seed).Normal(mu, sigma, size)
}

// TrialSeed derives the seed of one trial from a base seed. Distinct trials
// get well separated seeds, so per-trial streams are not correlated.
func TrialSeed(base uint64, trial int) uint64 {
	return splitmix64(base ^ splitmix64(uint64(trial)+0x632BE59BD9B4E019))
}

// splitmix64 finalizer, see https://prng.di.unimi.it/splitmix64.c
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
