package strategy

import (
	"math"

	"github.com/jwtly10/intrabar/internal/types"
)

// nearestLevel picks the level closest to price by absolute distance.
// Ties keep the earliest entry, so the result is stable for a given ordering.
func nearestLevel(levels []float64, price float64) (float64, bool) {
	if len(levels) == 0 {
		return 0, false
	}
	best := levels[0]
	for _, level := range levels[1:] {
		if math.Abs(level-price) < math.Abs(best-price) {
			best = level
		}
	}
	return best, true
}

// NearResistance reports whether the bar is testing the nearest resistance
// level from below: the High or the body top is within tol of it, while the
// body bottom and the Low remain under it (price has not broken through).
func NearResistance(bar types.Bar, levels []float64, tol float64) bool {
	level, ok := nearestLevel(levels, bar.High)
	if !ok {
		return false
	}
	bodyTop := math.Max(bar.Open, bar.Close)
	bodyBottom := math.Min(bar.Open, bar.Close)
	within := math.Abs(bar.High-level) <= tol || math.Abs(bodyTop-level) <= tol
	return within && bodyBottom < level && bar.Low < level
}

// NearSupport is the mirror: testing the nearest support level from above.
func NearSupport(bar types.Bar, levels []float64, tol float64) bool {
	level, ok := nearestLevel(levels, bar.Low)
	if !ok {
		return false
	}
	bodyTop := math.Max(bar.Open, bar.Close)
	bodyBottom := math.Min(bar.Open, bar.Close)
	within := math.Abs(bar.Low-level) <= tol || math.Abs(bodyBottom-level) <= tol
	return within && bodyTop > level && bar.High > level
}
