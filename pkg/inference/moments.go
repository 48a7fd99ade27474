package inference

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Moments summarises one sample.
type Moments struct {
	N        int
	Mean     float64
	Variance float64 // unbiased
	StdDev   float64
}

// Summarize returns the size, mean and unbiased variance of sample, which
// must hold at least two finite values.
func Summarize(sample []float64) (Moments, error) {
	if len(sample) < 2 {
		return Moments{}, errors.Wrapf(ErrInvalidInput, "sample of size %d, need at least 2", len(sample))
	}
	for i, x := range sample {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Moments{}, errors.Wrapf(ErrInvalidInput, "sample value %d is %v", i, x)
		}
	}
	mean, variance := stat.MeanVariance(sample, nil)
	return Moments{
		N:        len(sample),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}, nil
}

func checkAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return errors.Wrapf(ErrInvalidInput, "significance level %v not in (0, 1)", alpha)
	}
	return nil
}

func summarizeBoth(sample1, sample2 []float64) (Moments, Moments, error) {
	m1, err := Summarize(sample1)
	if err != nil {
		return Moments{}, Moments{}, errors.WithMessage(err, "sample1")
	}
	m2, err := Summarize(sample2)
	if err != nil {
		return Moments{}, Moments{}, errors.WithMessage(err, "sample2")
	}
	return m1, m2, nil
}
