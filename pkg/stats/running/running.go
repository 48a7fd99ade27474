// Package running holds the incremental state shared by the accumulator
// implementations. Values is not safe for concurrent use; callers provide
// their own synchronization.
package running

import (
	"math"

	"github.com/caio/go-tdigest"
	"github.com/pkg/errors"

	statistics "github.com/shashank-93rao/statinfer"
)

// Values holds Welford's running moments plus a t-digest for quantiles.
type Values struct {
	count int64
	mean  float64
	m2    float64
	min   float64
	max   float64

	digest *tdigest.TDigest
}

// New returns empty running values.
func New() (*Values, error) {
	// A local generator keeps the digest off the global math/rand source.
	digest, err := tdigest.New(tdigest.Compression(100), tdigest.LocalRandomNumberGenerator(1))
	if err != nil {
		return nil, errors.Wrap(err, "create t-digest")
	}
	return &Values{
		min:    math.Inf(1),
		max:    math.Inf(-1),
		digest: digest,
	}, nil
}

// Add folds x into the running values.
func (v *Values) Add(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return errors.Wrapf(statistics.ErrNotFinite, "event %v", x)
	}
	if err := v.digest.Add(x); err != nil {
		return errors.Wrap(err, "t-digest add")
	}

	v.count++
	//Welford: https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance
	delta := x - v.mean
	v.mean += delta / float64(v.count)
	v.m2 += delta * (x - v.mean)
	v.min = math.Min(v.min, x)
	v.max = math.Max(v.max, x)
	return nil
}

func (v *Values) Count() int64 {
	return v.count
}

func (v *Values) Min() (float64, error) {
	if v.count == 0 {
		return 0, statistics.ErrEmpty
	}
	return v.min, nil
}

func (v *Values) Max() (float64, error) {
	if v.count == 0 {
		return 0, statistics.ErrEmpty
	}
	return v.max, nil
}

func (v *Values) Mean() (float64, error) {
	if v.count == 0 {
		return 0, statistics.ErrEmpty
	}
	return v.mean, nil
}

// Variance returns the unbiased sample variance.
func (v *Values) Variance() (float64, error) {
	switch v.count {
	case 0:
		return 0, statistics.ErrEmpty
	case 1:
		return 0, statistics.ErrTooFew
	}
	return v.m2 / float64(v.count-1), nil
}

// Quantile returns the t-digest estimate of the q-th quantile.
func (v *Values) Quantile(q float64) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, errors.Errorf("quantile %v outside [0, 1]", q)
	}
	if v.count == 0 {
		return 0, statistics.ErrEmpty
	}
	return v.digest.Quantile(q), nil
}
