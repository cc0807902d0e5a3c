package marketdata

import (
	"fmt"
	"time"

	"github.com/jwtly10/intrabar/internal/types"
)

// Resample aggregates bars into fixed-interval bars using a right-closed
// convention: the output bar labeled T covers the interval (T-interval, T],
// so a bar's timestamp is the instant it actually closed. Input bars are
// assumed to follow the same labeling, which LoadCSV/ParseCSV data does.
func Resample(bars []types.Bar, interval time.Duration) ([]types.Bar, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid resample interval %s", interval)
	}

	var out []types.Bar
	for i, bar := range bars {
		if i > 0 && !bar.Timestamp.After(bars[i-1].Timestamp) {
			return nil, fmt.Errorf("bar %d: timestamps not strictly increasing", i)
		}

		end := bar.Timestamp.Truncate(interval)
		if bar.Timestamp.After(end) {
			end = end.Add(interval)
		}

		if n := len(out); n > 0 && out[n-1].Timestamp.Equal(end) {
			cur := &out[n-1]
			if bar.High > cur.High {
				cur.High = bar.High
			}
			if bar.Low < cur.Low {
				cur.Low = bar.Low
			}
			cur.Close = bar.Close
			cur.Volume += bar.Volume
			continue
		}

		out = append(out, types.Bar{
			Timestamp: end,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
		})
	}

	return out, nil
}
