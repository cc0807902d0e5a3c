package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwtly10/intrabar/internal/types"
)

var testT0 = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

func barsFromLows(lows ...float64) []types.Bar {
	bars := make([]types.Bar, len(lows))
	for i, l := range lows {
		bars[i] = types.Bar{
			Timestamp: testT0.Add(time.Duration(i) * time.Minute),
			Open:      l + 1, High: l + 2, Low: l, Close: l + 1,
		}
	}
	return bars
}

func barsFromHighs(highs ...float64) []types.Bar {
	bars := make([]types.Bar, len(highs))
	for i, h := range highs {
		bars[i] = types.Bar{
			Timestamp: testT0.Add(time.Duration(i) * time.Minute),
			Open:      h - 1, High: h, Low: h - 2, Close: h - 1,
		}
	}
	return bars
}

func TestIsSupport_ValleyAtCenter(t *testing.T) {
	bars := barsFromLows(10, 9, 8, 9, 10)

	assert.True(t, IsSupport(bars, 2, 2, 2), "index 2 is a local valley")
	assert.False(t, IsSupport(bars, 3, 1, 1), "index 3 rises into the bar, not a valley")
}

func TestIsResistance_PeakAtCenter(t *testing.T) {
	bars := barsFromHighs(10, 11, 12, 11, 10)

	assert.True(t, IsResistance(bars, 2, 2, 2), "index 2 is a local peak")
	assert.False(t, IsResistance(bars, 1, 1, 1))
}

func TestPivots_FlatRunYieldsAdjacentPivots(t *testing.T) {
	// Non-strict inequalities: equal values satisfy both wings, so a flat run
	// produces several adjacent pivots. Accepted, not deduplicated.
	bars := barsFromLows(5, 5, 5, 5, 5)

	assert.True(t, IsSupport(bars, 1, 1, 1))
	assert.True(t, IsSupport(bars, 2, 1, 1))
	assert.True(t, IsSupport(bars, 3, 1, 1))
}

func TestPivots_PureFunctionOfWindow(t *testing.T) {
	bars := barsFromLows(10, 9, 8, 9, 10)

	first := IsSupport(bars, 2, 2, 2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsSupport(bars, 2, 2, 2), "repeated calls must agree")
	}
}
