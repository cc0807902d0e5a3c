package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/intrabar/internal/account"
)

func tradeAt(dir account.Direction, pnl float64, minsHeld int) account.Trade {
	entry := t0
	return account.Trade{
		Direction:  dir,
		EntryTime:  entry,
		ExitTime:   entry.Add(time.Duration(minsHeld) * time.Minute),
		PnL:        pnl,
		ExitReason: "TEST",
	}
}

func TestStatistics_Basic(t *testing.T) {
	r := &Results{
		Trades: []account.Trade{
			tradeAt(account.LONG, 350, 10),
			tradeAt(account.SHORT, -750, 20),
			tradeAt(account.SHORT, 0, 30),
		},
	}

	stats := r.Calculate()

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 1, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 100.0/3, stats.WinRate, 1e-9)
	assert.Equal(t, -400.0, stats.NetPnL)
	assert.Equal(t, 350.0, stats.GrossProfit)
	assert.Equal(t, -750.0, stats.GrossLoss)
	assert.InDelta(t, 350.0/750.0, stats.ProfitFactor, 1e-9)
	assert.Equal(t, 350.0, stats.AvgWin)
	assert.Equal(t, -750.0, stats.AvgLoss)
	assert.InDelta(t, -400.0/3, stats.ExpectedValue, 1e-9)
	assert.Equal(t, 20*time.Minute, stats.AvgTradeDuration)
}

func TestStatistics_ZeroPnLIsAWinOnNeitherSide(t *testing.T) {
	// Both sides use the same strict comparison: a scratch trade (exactly
	// zero after commission) counts neither long nor short as a win.
	r := &Results{
		Trades: []account.Trade{
			tradeAt(account.LONG, 0, 1),
			tradeAt(account.SHORT, 0, 1),
			tradeAt(account.LONG, 100, 1),
			tradeAt(account.SHORT, 100, 1),
		},
	}

	stats := r.Calculate()

	assert.InDelta(t, 50.0, stats.LongWinRate, 1e-9)
	assert.InDelta(t, 50.0, stats.ShortWinRate, 1e-9)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 0, stats.LosingTrades)
}

func TestStatistics_MaxDrawdownFromEquityCurve(t *testing.T) {
	r := &Results{
		Trades: []account.Trade{tradeAt(account.LONG, 100, 1)},
		Equity: []account.EquityPoint{
			{Timestamp: t0, Equity: 0},
			{Timestamp: t0.Add(time.Minute), Equity: 500},
			{Timestamp: t0.Add(2 * time.Minute), Equity: -200},
			{Timestamp: t0.Add(3 * time.Minute), Equity: 100},
		},
	}

	stats := r.Calculate()

	assert.Equal(t, 700.0, stats.MaxDrawdown, "peak 500 to trough -200")
}

func TestStatistics_EmptyLedger(t *testing.T) {
	r := &Results{}

	stats := r.Calculate()

	require.NotNil(t, stats)
	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.ProfitFactor, "no losers, no division")
}

func TestStatistics_Cached(t *testing.T) {
	r := &Results{Trades: []account.Trade{tradeAt(account.LONG, 100, 1)}}

	first := r.Calculate()
	second := r.Calculate()

	assert.Same(t, first, second)
}
