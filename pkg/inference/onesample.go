package inference

import (
	"math"

	"github.com/pkg/errors"

	"github.com/shashank-93rao/statinfer/pkg/dist"
)

// SingleSampleIntervals groups the one-sample estimates at a common level.
type SingleSampleIntervals struct {
	Moments

	DF float64
	// TCritical is t_{1-alpha/2}(n-1), shared by the mean and prediction intervals.
	TCritical float64

	MeanInterval       Interval
	VarianceInterval   Interval
	PredictionInterval Interval
}

// SingleSample computes, at level 1-alpha:
//   - the t interval for the population mean,
//   - the chi-squared interval for the population variance,
//   - the t prediction interval for one future observation, whose margin
//     scales S by sqrt(1+1/n) instead of sqrt(1/n).
func SingleSample(sample []float64, alpha float64) (SingleSampleIntervals, error) {
	if err := checkAlpha(alpha); err != nil {
		return SingleSampleIntervals{}, err
	}
	m, err := Summarize(sample)
	if err != nil {
		return SingleSampleIntervals{}, err
	}

	n := float64(m.N)
	df := n - 1
	tCrit, err := dist.StudentTQuantile(1-alpha/2, df)
	if err != nil {
		return SingleSampleIntervals{}, errors.Wrapf(ErrNumericDomain, "t quantile: %v", err)
	}
	chiLower, err := dist.ChiSquaredQuantile(alpha/2, df)
	if err != nil {
		return SingleSampleIntervals{}, errors.Wrapf(ErrNumericDomain, "chi-squared quantile: %v", err)
	}
	chiUpper, err := dist.ChiSquaredQuantile(1-alpha/2, df)
	if err != nil {
		return SingleSampleIntervals{}, errors.Wrapf(ErrNumericDomain, "chi-squared quantile: %v", err)
	}

	return SingleSampleIntervals{
		Moments:            m,
		DF:                 df,
		TCritical:          tCrit,
		MeanInterval:       symmetric(m.Mean, tCrit*m.StdDev/math.Sqrt(n), alpha),
		PredictionInterval: symmetric(m.Mean, tCrit*m.StdDev*math.Sqrt(1+1/n), alpha),
		VarianceInterval: Interval{
			Lower: df * m.Variance / chiUpper,
			Upper: df * m.Variance / chiLower,
			Level: 1 - alpha,
		},
	}, nil
}
