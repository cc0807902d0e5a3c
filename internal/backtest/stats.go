package backtest

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/jwtly10/intrabar/internal/account"
)

type Statistics struct {
	// Basic
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	LongWinRate   float64
	ShortWinRate  float64

	// P&L
	NetPnL       float64
	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64

	// Averages
	AvgWin        float64
	AvgLoss       float64
	ExpectedValue float64
	PnLStdDev     float64

	// Risk
	MaxDrawdown float64

	// Duration
	AvgTradeDuration time.Duration
}

func (r *Results) Calculate() *Statistics {
	// Return cached if already calculated
	if r.stats != nil {
		return r.stats
	}

	stats := &Statistics{
		TotalTrades: len(r.Trades),
	}

	if len(r.Trades) == 0 {
		r.stats = stats
		return stats
	}

	var totalWin, totalLoss float64
	var totalDuration time.Duration
	var longs, longWins, shorts, shortWins int
	pnls := make([]float64, 0, len(r.Trades))

	for _, trade := range r.Trades {
		pnls = append(pnls, trade.PnL)
		stats.NetPnL += trade.PnL

		// Zero-PnL trades count as a win on neither side; both sides use the
		// same strict comparison.
		if trade.PnL > 0 {
			stats.WinningTrades++
			totalWin += trade.PnL
		} else if trade.PnL < 0 {
			stats.LosingTrades++
			totalLoss += trade.PnL // Already negative
		}

		switch trade.Direction {
		case account.LONG:
			longs++
			if trade.PnL > 0 {
				longWins++
			}
		case account.SHORT:
			shorts++
			if trade.PnL > 0 {
				shortWins++
			}
		}

		totalDuration += trade.ExitTime.Sub(trade.EntryTime)
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	if longs > 0 {
		stats.LongWinRate = float64(longWins) / float64(longs) * 100
	}
	if shorts > 0 {
		stats.ShortWinRate = float64(shortWins) / float64(shorts) * 100
	}

	stats.GrossProfit = totalWin
	stats.GrossLoss = totalLoss

	if totalLoss != 0 {
		stats.ProfitFactor = totalWin / -totalLoss
	}

	if stats.WinningTrades > 0 {
		stats.AvgWin = totalWin / float64(stats.WinningTrades)
	}
	if stats.LosingTrades > 0 {
		stats.AvgLoss = totalLoss / float64(stats.LosingTrades)
	}

	stats.ExpectedValue = stat.Mean(pnls, nil)
	if len(pnls) > 1 {
		stats.PnLStdDev = stat.StdDev(pnls, nil)
	}

	// Drawdown over the per-bar equity curve, not just trade closes
	var peak, maxDD float64
	for i, point := range r.Equity {
		if i == 0 || point.Equity > peak {
			peak = point.Equity
		}
		if dd := peak - point.Equity; dd > maxDD {
			maxDD = dd
		}
	}
	stats.MaxDrawdown = maxDD

	stats.AvgTradeDuration = totalDuration / time.Duration(stats.TotalTrades)

	r.stats = stats
	return stats
}

func (s *Statistics) Print() {
	p := message.NewPrinter(language.English)

	p.Println("\n=== Backtest Results ===")
	p.Printf("Total Trades:     %d\n", s.TotalTrades)
	p.Printf("Winning Trades:   %d (%.2f%%)\n", s.WinningTrades, s.WinRate)
	p.Printf("Losing Trades:    %d\n", s.LosingTrades)
	p.Printf("Long Win Rate:    %.2f%%\n", s.LongWinRate)
	p.Printf("Short Win Rate:   %.2f%%\n\n", s.ShortWinRate)

	p.Printf("Net PnL:          %.2f\n", s.NetPnL)
	p.Printf("Gross Profit:     %.2f\n", s.GrossProfit)
	p.Printf("Gross Loss:       %.2f\n", s.GrossLoss)
	p.Printf("Profit Factor:    %.2f\n\n", s.ProfitFactor)

	p.Printf("Avg Win:          %.2f\n", s.AvgWin)
	p.Printf("Avg Loss:         %.2f\n", s.AvgLoss)
	p.Printf("Expected Value:   %.2f per trade (stddev %.2f)\n\n", s.ExpectedValue, s.PnLStdDev)

	p.Printf("Max Drawdown:     %.2f\n", s.MaxDrawdown)
	p.Printf("Avg Duration:     %s\n", s.AvgTradeDuration.Round(time.Minute))
}
