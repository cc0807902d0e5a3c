package backtest

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwtly10/intrabar/internal/account"
)

// Results is the read-only output of one run: the completed trade ledger and
// the per-bar equity curve. Reporting consumes it; nothing feeds back in.
type Results struct {
	Strategy string
	Trades   []account.Trade
	Equity   []account.EquityPoint

	stats *Statistics
}

func (r *Results) PrintTrades() {
	p := message.NewPrinter(language.English)

	p.Println("\n=== Trade List ===")
	for _, trade := range r.Trades {
		p.Printf("#%d | %s | Entry: %.2f @ %s | Exit: %.2f @ %s | PnL: %.2f | %s\n",
			trade.ID,
			trade.Direction,
			trade.EntryPrice,
			trade.EntryTime.Format("2006-01-02 15:04"),
			trade.ExitPrice,
			trade.ExitTime.Format("2006-01-02 15:04"),
			trade.PnL,
			trade.ExitReason,
		)
	}
}
