package tradingview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwtly10/intrabar/internal/account"
)

func TestGenerateTradePinescript(t *testing.T) {
	trades := []account.Trade{
		{
			ID:         1,
			Direction:  account.LONG,
			EntryTime:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			EntryPrice: 100,
			Stop:       95,
			Target:     110,
			ExitTime:   time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
			ExitPrice:  111,
			PnL:        350,
			ExitReason: "TAKE_PROFIT",
		},
		{
			ID:         2,
			Direction:  account.SHORT,
			EntryTime:  time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC),
			EntryPrice: 112,
			ExitTime:   time.Date(2024, 1, 2, 11, 15, 0, 0, time.UTC),
			ExitPrice:  115,
			PnL:        -1050,
			ExitReason: "MOMENTUM_FLIP",
		},
	}

	script := generateTradePinescript(trades)

	assert.Contains(t, script, `t1_entry = time == timestamp("UTC", 2024, 1, 2, 10, 0)`)
	assert.Contains(t, script, `#1 LONG\nEntry: 100.00\nStop: 95.00\nTarget: 110.00`)
	assert.Contains(t, script, `t1_exit = time == timestamp("UTC", 2024, 1, 2, 10, 30)`)
	assert.Contains(t, script, `PnL: 350.00\nTAKE_PROFIT`)

	// Winner green, loser red
	assert.Contains(t, script, `title="#1 EXIT", location=location.top, color=color.green`)
	assert.Contains(t, script, `title="#2 EXIT", location=location.top, color=color.red`)

	// No stop on the trade means no stop lines in the label
	assert.Contains(t, script, `#2 SHORT\nEntry: 112.00", textcolor=color.white`)
	assert.NotContains(t, script, `#2 SHORT\nEntry: 112.00\nStop`)
}

func TestGenerateTradePinescript_Empty(t *testing.T) {
	script := generateTradePinescript(nil)

	assert.Contains(t, script, "TRADE VALIDATION MARKERS")
	assert.NotContains(t, script, "plotshape")
}

func TestFormatPineTimestampConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 1, 2, 15, 30, 0, 0, loc) // 10:00 UTC

	assert.Equal(t, `timestamp("UTC", 2024, 1, 2, 10, 0)`, formatPineTimestamp(ts))
}
