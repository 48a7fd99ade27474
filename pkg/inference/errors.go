package inference

import "github.com/pkg/errors"

var (
	// ErrInvalidInput reports a sample that is too small or non-finite, a
	// significance level outside (0, 1) or a non-positive known variance.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNumericDomain reports a degenerate sample whose statistic is undefined.
	ErrNumericDomain = errors.New("numeric domain error")
)
