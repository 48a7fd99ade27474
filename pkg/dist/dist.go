// Package dist exposes the quantile and CDF functions the estimators need:
// standard normal, Student's t, chi-squared and Fisher's F.
//
// The gonum distributions panic on out-of-range probabilities; these wrappers
// validate first and return ErrDomain instead.
package dist

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDomain reports a probability outside (0, 1) or a non-positive degree of freedom.
var ErrDomain = errors.New("argument outside distribution domain")

func checkProb(p float64) error {
	if !(p > 0 && p < 1) {
		return errors.Wrapf(ErrDomain, "probability %v not in (0, 1)", p)
	}
	return nil
}

func checkDF(name string, df float64) error {
	if !(df > 0) || math.IsInf(df, 1) {
		return errors.Wrapf(ErrDomain, "%s degrees of freedom %v must be positive and finite", name, df)
	}
	return nil
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// NormalQuantile returns z such that P(Z <= z) = p.
func NormalQuantile(p float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	return stdNormal.Quantile(p), nil
}

// NormalCDF returns P(Z <= x).
func NormalCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

func studentsT(df float64) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
}

// StudentTQuantile returns the p-quantile of Student's t. df may be fractional.
func StudentTQuantile(p, df float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	if err := checkDF("t", df); err != nil {
		return 0, err
	}
	return studentsT(df).Quantile(p), nil
}

// StudentTCDF returns P(T <= x) for T ~ t(df).
func StudentTCDF(x, df float64) (float64, error) {
	if err := checkDF("t", df); err != nil {
		return 0, err
	}
	return studentsT(df).CDF(x), nil
}

// ChiSquaredQuantile returns the p-quantile of chi-squared(df).
func ChiSquaredQuantile(p, df float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	if err := checkDF("chi-squared", df); err != nil {
		return 0, err
	}
	return distuv.ChiSquared{K: df}.Quantile(p), nil
}

// FQuantile returns the p-quantile of F(d1, d2).
//
// If Y ~ Beta(d1/2, d2/2) then d2*Y / (d1*(1-Y)) ~ F(d1, d2).
func FQuantile(p, d1, d2 float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	if err := checkFDF(d1, d2); err != nil {
		return 0, err
	}
	y := mathext.InvRegIncBeta(d1/2, d2/2, p)
	return d2 * y / (d1 * (1 - y)), nil
}

// FCDF returns P(X <= x) for X ~ F(d1, d2).
func FCDF(x, d1, d2 float64) (float64, error) {
	if err := checkFDF(d1, d2); err != nil {
		return 0, err
	}
	if x <= 0 {
		return 0, nil
	}
	if math.IsInf(x, 1) {
		return 1, nil
	}
	return mathext.RegIncBeta(d1/2, d2/2, d1*x/(d1*x+d2)), nil
}

func checkFDF(d1, d2 float64) error {
	if err := checkDF("F numerator", d1); err != nil {
		return err
	}
	return checkDF("F denominator", d2)
}
