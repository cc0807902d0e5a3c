package tradingview

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jwtly10/intrabar/internal/account"
)

func allowDump() bool {
	// Get OS Env for dump DEBUG_DUMP=1 etc
	debugDump := os.Getenv("DEBUG_DUMP")
	if debugDump == "1" {
		slog.Info("DEBUG_DUMP=1, dumping to stdout")
		return true
	}

	return false
}

func DumpPineScript(trades []account.Trade) {
	if !allowDump() {
		return
	}

	fmt.Println(generateTradePinescript(trades))
}

// generateTradePinescript renders the ledger as Pine Script chart markers:
// one entry label and one exit label per trade, the exit colored by PnL sign,
// so a run can be eyeballed against the chart it traded.
func generateTradePinescript(trades []account.Trade) string {
	var sb strings.Builder

	sb.WriteString("// ============================================\n")
	sb.WriteString("// TRADE VALIDATION MARKERS\n")
	sb.WriteString("// ============================================\n\n")

	for _, trade := range trades {
		entryTimestamp := formatPineTimestamp(trade.EntryTime)
		entryText := fmt.Sprintf("#%d %s\\nEntry: %.2f", trade.ID, trade.Direction, trade.EntryPrice)
		if trade.Stop > 0 {
			entryText += fmt.Sprintf("\\nStop: %.2f\\nTarget: %.2f", trade.Stop, trade.Target)
		}

		sb.WriteString(fmt.Sprintf("t%d_entry = time == %s\n", trade.ID, entryTimestamp))
		sb.WriteString(fmt.Sprintf("plotshape(t%d_entry, title=\"#%d %s Entry\", location=location.bottom, color=color.blue, style=shape.labelup, size=size.small, text=\"%s\", textcolor=color.white)\n\n",
			trade.ID, trade.ID, trade.Direction, entryText))

		exitTimestamp := formatPineTimestamp(trade.ExitTime)
		exitColor := "color.green"
		if trade.PnL < 0 {
			exitColor = "color.red"
		}
		exitText := fmt.Sprintf("#%d EXIT\\nExit: %.2f\\nPnL: %.2f\\n%s",
			trade.ID, trade.ExitPrice, trade.PnL, trade.ExitReason)

		sb.WriteString(fmt.Sprintf("t%d_exit = time == %s\n", trade.ID, exitTimestamp))
		sb.WriteString(fmt.Sprintf("plotshape(t%d_exit, title=\"#%d EXIT\", location=location.top, color=%s, style=shape.labeldown, size=size.small, text=\"%s\", textcolor=color.white)\n\n",
			trade.ID, trade.ID, exitColor, exitText))
	}

	return sb.String()
}

func formatPineTimestamp(t time.Time) string {
	utc := t.UTC()
	return fmt.Sprintf("timestamp(\"UTC\", %d, %d, %d, %d, %d)",
		utc.Year(), int(utc.Month()), utc.Day(), utc.Hour(), utc.Minute())
}
