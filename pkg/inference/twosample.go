package inference

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/shashank-93rao/statinfer/pkg/dist"
)

// AssumptionKind names the variance assumption behind a two-sample interval.
type AssumptionKind int

const (
	// KnownVariance uses supplied population variances and the normal distribution.
	KnownVariance AssumptionKind = iota
	// EqualUnknownVariance pools the sample variances, Student's t with n1+n2-2 df.
	EqualUnknownVariance
	// UnequalUnknownVariance is Welch's interval with Welch–Satterthwaite df.
	UnequalUnknownVariance
)

func (k AssumptionKind) String() string {
	switch k {
	case KnownVariance:
		return "known variance"
	case EqualUnknownVariance:
		return "equal unknown variance"
	case UnequalUnknownVariance:
		return "unequal unknown variance"
	default:
		return fmt.Sprintf("AssumptionKind(%d)", int(k))
	}
}

// Assumption selects how the standard error and critical value are built.
// Construct one with Known, Pooled or Welch.
type Assumption struct {
	Kind AssumptionKind

	// Population variances, used only by KnownVariance.
	Var1 float64
	Var2 float64
}

// Known assumes the population variances are var1 and var2.
func Known(var1, var2 float64) Assumption {
	return Assumption{Kind: KnownVariance, Var1: var1, Var2: var2}
}

// Pooled assumes equal but unknown population variances.
func Pooled() Assumption {
	return Assumption{Kind: EqualUnknownVariance}
}

// Welch assumes unequal, unknown population variances.
func Welch() Assumption {
	return Assumption{Kind: UnequalUnknownVariance}
}

// Assumptions returns the three variants in the order reports list them.
func Assumptions(var1, var2 float64) []Assumption {
	return []Assumption{Known(var1, var2), Pooled(), Welch()}
}

// MeanDifference is the interval estimate of mu2 - mu1.
type MeanDifference struct {
	Assumption AssumptionKind

	Sample1 Moments
	Sample2 Moments

	// Estimate is mean(sample2) - mean(sample1).
	Estimate float64
	StdErr   float64
	// DF is +Inf for KnownVariance, where the critical value is normal.
	DF       float64
	Critical float64
	Margin   float64
	Interval Interval
}

// DifferenceOfMeans estimates mu2 - mu1 and its 1-alpha confidence interval
// under assumption a.
func DifferenceOfMeans(sample1, sample2 []float64, alpha float64, a Assumption) (MeanDifference, error) {
	if err := checkAlpha(alpha); err != nil {
		return MeanDifference{}, err
	}
	m1, m2, err := summarizeBoth(sample1, sample2)
	if err != nil {
		return MeanDifference{}, err
	}
	return differenceFromMoments(m1, m2, alpha, a)
}

func differenceFromMoments(m1, m2 Moments, alpha float64, a Assumption) (MeanDifference, error) {
	se, df, err := standardError(m1, m2, a)
	if err != nil {
		return MeanDifference{}, err
	}

	var critical float64
	if math.IsInf(df, 1) {
		critical, err = dist.NormalQuantile(1 - alpha/2)
	} else {
		critical, err = dist.StudentTQuantile(1-alpha/2, df)
	}
	if err != nil {
		return MeanDifference{}, errors.Wrapf(ErrNumericDomain, "critical value: %v", err)
	}

	estimate := m2.Mean - m1.Mean
	margin := critical * se
	return MeanDifference{
		Assumption: a.Kind,
		Sample1:    m1,
		Sample2:    m2,
		Estimate:   estimate,
		StdErr:     se,
		DF:         df,
		Critical:   critical,
		Margin:     margin,
		Interval:   symmetric(estimate, margin, alpha),
	}, nil
}

// standardError returns the standard error of mean2 - mean1 and the degrees
// of freedom of its reference distribution (+Inf for the normal).
func standardError(m1, m2 Moments, a Assumption) (se, df float64, err error) {
	n1, n2 := float64(m1.N), float64(m2.N)

	switch a.Kind {
	case KnownVariance:
		for _, v := range []float64{a.Var1, a.Var2} {
			if !(v > 0) || math.IsInf(v, 1) {
				return 0, 0, errors.Wrapf(ErrInvalidInput, "known variance %v must be positive and finite", v)
			}
		}
		return math.Sqrt(a.Var1/n1 + a.Var2/n2), math.Inf(1), nil

	case EqualUnknownVariance:
		df = n1 + n2 - 2
		pooled := ((n1-1)*m1.Variance + (n2-1)*m2.Variance) / df
		return math.Sqrt(pooled) * math.Sqrt(1/n1+1/n2), df, nil

	case UnequalUnknownVariance:
		v1, v2 := m1.Variance/n1, m2.Variance/n2
		denom := v1*v1/(n1-1) + v2*v2/(n2-1)
		if denom == 0 {
			return 0, 0, errors.Wrap(ErrNumericDomain, "Welch degrees of freedom undefined: both samples have zero variance")
		}
		return math.Sqrt(v1 + v2), (v1 + v2) * (v1 + v2) / denom, nil

	default:
		return 0, 0, errors.Wrapf(ErrInvalidInput, "unknown assumption %v", a.Kind)
	}
}
