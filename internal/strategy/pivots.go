package strategy

import "github.com/jwtly10/intrabar/internal/types"

// IsSupport reports whether bar i is a local valley: Lows non-increasing into
// i over the n1 bars on its left and non-decreasing away from it over the n2
// bars on its right. Inequalities are non-strict, so a flat run can yield
// several adjacent pivots; that is accepted, not deduplicated.
//
// The caller must keep i-n1 >= 0 and i+n2 < len(bars); out-of-range indices
// are a caller error, not a boundary case.
func IsSupport(bars []types.Bar, i, n1, n2 int) bool {
	for k := i - n1 + 1; k <= i; k++ {
		if bars[k].Low > bars[k-1].Low {
			return false
		}
	}
	for k := i + 1; k <= i+n2; k++ {
		if bars[k].Low < bars[k-1].Low {
			return false
		}
	}
	return true
}

// IsResistance is the mirror of IsSupport on Highs: a local peak.
func IsResistance(bars []types.Bar, i, n1, n2 int) bool {
	for k := i - n1 + 1; k <= i; k++ {
		if bars[k].High < bars[k-1].High {
			return false
		}
	}
	for k := i + 1; k <= i+n2; k++ {
		if bars[k].High > bars[k-1].High {
			return false
		}
	}
	return true
}
