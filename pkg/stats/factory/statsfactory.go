package factory

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	statistics "github.com/shashank-93rao/statinfer"
	"github.com/shashank-93rao/statinfer/pkg/stats/async/chbased"
	"github.com/shashank-93rao/statinfer/pkg/stats/async/lockbased"
)

// ErrUnknownStatsType is returned for an engine name that is neither CH nor LB.
var ErrUnknownStatsType = errors.New("unknown stats calculator")

// StatsType is enum of various stats implementation
type StatsType string

const (
	CH StatsType = "CH"
	LB StatsType = "LB"
)

// ParseStatsType accepts the engine name in any case.
func ParseStatsType(s string) (StatsType, error) {
	switch tp := StatsType(strings.ToUpper(strings.TrimSpace(s))); tp {
	case CH, LB:
		return tp, nil
	default:
		return "", errors.Wrapf(ErrUnknownStatsType, "%q", s)
	}
}

func GetStats(ctx context.Context, tp StatsType) (statistics.Statistics, error) {
	switch tp {
	case LB:
		return lockbased.NewStats(ctx)
	case CH:
		return chbased.NewStats(ctx)
	default:
		return nil, errors.Wrapf(ErrUnknownStatsType, "%q", tp)
	}
}
