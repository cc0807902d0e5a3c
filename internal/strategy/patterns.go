package strategy

import (
	"math"

	"github.com/jwtly10/intrabar/internal/types"
)

// Engulfing classifies the two-bar engulfing relationship: the current body
// must fully contain and exceed the previous body in the opposite direction.
func Engulfing(prev, cur types.Bar) types.Bias {
	if prev.Open < prev.Close && cur.Open > cur.Close &&
		cur.Open >= prev.Close && cur.Close < prev.Open {
		return types.BiasBearish
	}
	if prev.Open > prev.Close && cur.Open < cur.Close &&
		cur.Open <= prev.Close && cur.Close > prev.Open {
		return types.BiasBullish
	}
	return types.BiasNone
}

// Doji classifies a single bar by wick dominance: a long upper shadow with a
// small body leans bullish, a long lower shadow leans bearish. The two
// conditions are mutually exclusive by construction.
func Doji(bar types.Bar) types.Bias {
	upper := bar.High - math.Max(bar.Open, bar.Close)
	lower := math.Min(bar.Open, bar.Close) - bar.Low
	body := math.Abs(bar.Open - bar.Close)

	switch {
	case upper > body && lower < upper:
		return types.BiasBullish
	case lower > body && upper < lower:
		return types.BiasBearish
	}
	return types.BiasNone
}
