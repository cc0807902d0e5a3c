package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/intrabar/internal/types"
)

func minuteBars(start time.Time, rows ...[4]float64) []types.Bar {
	bars := make([]types.Bar, len(rows))
	for i, r := range rows {
		bars[i] = types.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			Open:      r[0], High: r[1], Low: r[2], Close: r[3],
			Volume: 100,
		}
	}
	return bars
}

func TestResample_MinuteToFiveMinute(t *testing.T) {
	// 1m bars closing 09:01 through 09:05 all belong to the 5m bar labeled
	// 09:05, which covers (09:00, 09:05].
	start := time.Date(2024, 1, 2, 9, 1, 0, 0, time.UTC)
	bars := minuteBars(start,
		[4]float64{100, 101, 99, 100.5},
		[4]float64{100.5, 103, 100, 102},
		[4]float64{102, 102.5, 98, 99},
		[4]float64{99, 100, 98.5, 99.5},
		[4]float64{99.5, 101, 99, 100},
	)

	out, err := Resample(bars, 5*time.Minute)

	require.NoError(t, err)
	require.Len(t, out, 1)
	bar := out[0]
	assert.Equal(t, time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC), bar.Timestamp)
	assert.Equal(t, 100.0, bar.Open)
	assert.Equal(t, 103.0, bar.High)
	assert.Equal(t, 98.0, bar.Low)
	assert.Equal(t, 100.0, bar.Close)
	assert.Equal(t, 500.0, bar.Volume)
}

func TestResample_SplitsAcrossBucketBoundary(t *testing.T) {
	// 09:05 closes the first bucket; 09:06 opens the next one (labeled 09:10).
	start := time.Date(2024, 1, 2, 9, 4, 0, 0, time.UTC)
	bars := minuteBars(start,
		[4]float64{100, 101, 99, 100.5},
		[4]float64{100.5, 102, 100, 101},
		[4]float64{101, 103, 101, 102},
	)

	out, err := Resample(bars, 5*time.Minute)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC), out[0].Timestamp)
	assert.Equal(t, 101.0, out[0].Close)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 10, 0, 0, time.UTC), out[1].Timestamp)
	assert.Equal(t, 101.0, out[1].Open)
}

func TestResample_ExactBoundaryStaysInItsBucket(t *testing.T) {
	// A bar stamped exactly 09:05 closed at 09:05 and belongs to the 09:05
	// bucket, not the next one.
	bars := minuteBars(time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC),
		[4]float64{100, 101, 99, 100.5},
	)

	out, err := Resample(bars, 5*time.Minute)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC), out[0].Timestamp)
}

func TestResample_RejectsBadInput(t *testing.T) {
	bars := minuteBars(time.Date(2024, 1, 2, 9, 1, 0, 0, time.UTC),
		[4]float64{100, 101, 99, 100.5},
	)

	_, err := Resample(bars, 0)
	require.Error(t, err)

	disordered := append(bars, bars[0])
	_, err = Resample(disordered, 5*time.Minute)
	require.Error(t, err)
}

func TestResample_EmptyInput(t *testing.T) {
	out, err := Resample(nil, 5*time.Minute)

	require.NoError(t, err)
	assert.Empty(t, out)
}
