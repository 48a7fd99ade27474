// Package inference computes classical interval estimates and hypothesis
// tests from numeric samples.
//
// Every function is a pure transform of its inputs. Sample moments use the
// unbiased (n-1) variance. Two-sample results are oriented as
// mean(sample2) - mean(sample1): a positive estimate means the second sample
// sits higher.
//
// Invalid arguments fail with ErrInvalidInput. Computations that would
// divide by zero on degenerate (zero-variance) samples fail with
// ErrNumericDomain rather than returning NaN or Inf.
package inference
