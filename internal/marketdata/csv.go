// Package marketdata loads and resamples bar series for the backtester.
// It is the validation boundary: malformed rows and out-of-order timestamps
// are rejected here, so downstream code can assume a clean, strictly
// time-ordered sequence.
package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jwtly10/intrabar/internal/types"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// LoadCSV reads bars from a CSV file with columns
// timestamp,open,high,low,close[,volume]. A header row is skipped when the
// first field does not parse as a timestamp.
func LoadCSV(path string) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bar data: %w", err)
	}
	defer f.Close()

	bars, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("Loaded bars", "path", path, "count", len(bars))
	return bars, nil
}

func ParseCSV(r io.Reader) ([]types.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var bars []types.Bar
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		row++

		if len(record) < 5 {
			return nil, fmt.Errorf("row %d: want at least 5 columns, got %d", row, len(record))
		}

		ts, err := parseTimestamp(record[0])
		if err != nil {
			if row == 1 {
				// header row
				continue
			}
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		bar := types.Bar{Timestamp: ts}
		for i, dst := range []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close} {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad price %q", row, record[i+1])
			}
			*dst = v
		}
		if len(record) > 5 {
			v, err := strconv.ParseFloat(record[5], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad volume %q", row, record[5])
			}
			bar.Volume = v
		}

		if n := len(bars); n > 0 && !bar.Timestamp.After(bars[n-1].Timestamp) {
			return nil, fmt.Errorf("row %d: timestamp %s is not after previous bar %s",
				row, bar.Timestamp.Format(time.RFC3339), bars[n-1].Timestamp.Format(time.RFC3339))
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
