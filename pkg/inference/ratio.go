package inference

import (
	"github.com/pkg/errors"

	"github.com/shashank-93rao/statinfer/pkg/dist"
)

// RatioInterval is the interval estimate of sigma1^2 / sigma2^2.
type RatioInterval struct {
	Sample1 Moments
	Sample2 Moments

	// Ratio is S1^2 / S2^2.
	Ratio float64
	DF1   float64
	DF2   float64
	// FUpper is F_{1-alpha/2}(DF1, DF2), FLower is F_{alpha/2}(DF1, DF2).
	FUpper   float64
	FLower   float64
	Interval Interval
}

// VarianceRatio builds the F-based 1-alpha confidence interval for
// sigma1^2 / sigma2^2:
//
//	[ratio / F_{1-alpha/2}(n1-1, n2-1), ratio * F_{1-alpha/2}(n2-1, n1-1)]
//
// The upper bound equals ratio / F_{alpha/2}(n1-1, n2-1).
func VarianceRatio(sample1, sample2 []float64, alpha float64) (RatioInterval, error) {
	if err := checkAlpha(alpha); err != nil {
		return RatioInterval{}, err
	}
	m1, m2, err := summarizeBoth(sample1, sample2)
	if err != nil {
		return RatioInterval{}, err
	}
	return ratioFromMoments(m1, m2, alpha)
}

func ratioFromMoments(m1, m2 Moments, alpha float64) (RatioInterval, error) {
	if m2.Variance == 0 {
		return RatioInterval{}, errors.Wrap(ErrNumericDomain, "sample2 has zero variance")
	}
	df1, df2 := float64(m1.N-1), float64(m2.N-1)

	fUpper, err := dist.FQuantile(1-alpha/2, df1, df2)
	if err != nil {
		return RatioInterval{}, errors.Wrapf(ErrNumericDomain, "F quantile: %v", err)
	}
	fUpperSwapped, err := dist.FQuantile(1-alpha/2, df2, df1)
	if err != nil {
		return RatioInterval{}, errors.Wrapf(ErrNumericDomain, "F quantile: %v", err)
	}

	ratio := m1.Variance / m2.Variance
	return RatioInterval{
		Sample1: m1,
		Sample2: m2,
		Ratio:   ratio,
		DF1:     df1,
		DF2:     df2,
		FUpper:  fUpper,
		FLower:  1 / fUpperSwapped,
		Interval: Interval{
			Lower: ratio / fUpper,
			Upper: ratio * fUpperSwapped,
			Level: 1 - alpha,
		},
	}, nil
}
