package inference

import (
	"math"

	"github.com/pkg/errors"

	"github.com/shashank-93rao/statinfer/pkg/dist"
)

// TestResult is the outcome of a two-sided hypothesis test.
type TestResult struct {
	Statistic float64
	// DF is the degrees of freedom of the reference distribution, +Inf for
	// the normal. For the F test it is the numerator df and DF2 the
	// denominator df; DF2 is zero otherwise.
	DF     float64
	DF2    float64
	PValue float64
}

// Reject reports whether the null hypothesis is rejected at level alpha.
func (r TestResult) Reject(alpha float64) bool {
	return r.PValue < alpha
}

// ZTest tests mu1 = mu2 with known population variances.
// The statistic is oriented as (mean2 - mean1) / SE.
func ZTest(sample1, sample2 []float64, var1, var2 float64) (TestResult, error) {
	return MeanTest(sample1, sample2, Known(var1, var2))
}

// PooledTTest is Student's two-sample t test assuming equal variances.
func PooledTTest(sample1, sample2 []float64) (TestResult, error) {
	return MeanTest(sample1, sample2, Pooled())
}

// WelchTTest is Welch's two-sample t test.
func WelchTTest(sample1, sample2 []float64) (TestResult, error) {
	return MeanTest(sample1, sample2, Welch())
}

// MeanTest runs the two-sided test of mu1 = mu2 matching assumption a.
func MeanTest(sample1, sample2 []float64, a Assumption) (TestResult, error) {
	m1, m2, err := summarizeBoth(sample1, sample2)
	if err != nil {
		return TestResult{}, err
	}
	se, df, err := standardError(m1, m2, a)
	if err != nil {
		return TestResult{}, err
	}
	if se == 0 {
		return TestResult{}, errors.Wrap(ErrNumericDomain, "zero standard error")
	}

	stat := (m2.Mean - m1.Mean) / se
	// Lower tail at -|stat| avoids cancellation in 1-cdf for large statistics.
	var tail float64
	if math.IsInf(df, 1) {
		tail = dist.NormalCDF(-math.Abs(stat))
	} else {
		tail, err = dist.StudentTCDF(-math.Abs(stat), df)
		if err != nil {
			return TestResult{}, errors.Wrapf(ErrNumericDomain, "t cdf: %v", err)
		}
	}
	return TestResult{Statistic: stat, DF: df, PValue: math.Min(1, 2*tail)}, nil
}

// FTest tests sigma1^2 = sigma2^2 with F = S1^2 / S2^2 on (n1-1, n2-1) df.
// The two-sided p-value 2*min(cdf, 1-cdf) does not depend on which sample
// is placed in the numerator.
func FTest(sample1, sample2 []float64) (TestResult, error) {
	m1, m2, err := summarizeBoth(sample1, sample2)
	if err != nil {
		return TestResult{}, err
	}
	if m2.Variance == 0 {
		return TestResult{}, errors.Wrap(ErrNumericDomain, "sample2 has zero variance")
	}

	df1, df2 := float64(m1.N-1), float64(m2.N-1)
	f := m1.Variance / m2.Variance
	cdf, err := dist.FCDF(f, df1, df2)
	if err != nil {
		return TestResult{}, errors.Wrapf(ErrNumericDomain, "F cdf: %v", err)
	}
	return TestResult{
		Statistic: f,
		DF:        df1,
		DF2:       df2,
		PValue:    math.Min(1, 2*math.Min(cdf, 1-cdf)),
	}, nil
}
