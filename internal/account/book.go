// Package account owns the single-position state machine and the trade ledger
// for one backtest run. A Book is Flat or holds exactly one open position;
// opening while non-Flat is a caller contract violation and fails hard.
package account

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jwtly10/intrabar/internal/types"
)

const (
	LONG  Direction = "LONG"
	SHORT Direction = "SHORT"
)

type Direction string

// sign is +1 for LONG, -1 for SHORT.
func (d Direction) sign() float64 {
	if d == SHORT {
		return -1
	}
	return 1
}

type Config struct {
	Quantity   float64 // contracts per trade
	Commission float64 // flat, charged once per round trip
}

func DefaultConfig() Config {
	return Config{
		Quantity:   100,
		Commission: 750,
	}
}

type Position struct {
	Direction  Direction
	EntryTime  time.Time
	EntryPrice float64
	Stop       float64 // 0 = no price stop
	Target     float64 // 0 = no price target
	MaxLoss    float64 // 0 = no mark-to-market loss cap
}

// Trade is one ledger record. It is appended when the position opens with
// zero exit fields, and completed in place when the position closes. Exit
// fields of the last record are the only ledger mutation after creation.
type Trade struct {
	ID         int
	Direction  Direction
	EntryTime  time.Time
	EntryPrice float64
	Stop       float64
	Target     float64
	ExitTime   time.Time
	ExitPrice  float64
	PnL        float64
	ExitReason string
}

func (t Trade) Closed() bool {
	return !t.ExitTime.IsZero()
}

type EquityPoint struct {
	Timestamp time.Time
	Equity    float64 // cumulative realized + current unrealized
}

type Book struct {
	cfg        Config
	open       *Position
	trades     []Trade
	realized   float64
	unrealized float64
	equity     []EquityPoint
	nextID     int
}

func NewBook(cfg Config) *Book {
	if cfg.Quantity == 0 {
		cfg = DefaultConfig()
	}
	return &Book{
		cfg:    cfg,
		nextID: 1,
	}
}

func (b *Book) Flat() bool {
	return b.open == nil
}

// Position returns the open position, or nil when Flat.
func (b *Book) Position() *Position {
	return b.open
}

// Open transitions Flat -> Open(side) and appends a ledger record with zero
// exit fields. Calling Open while a position is held is a contract violation.
func (b *Book) Open(e types.Entry, ts time.Time) error {
	if b.open != nil {
		return fmt.Errorf("book already holds an open %s position from %s, refusing to overwrite",
			b.open.Direction, b.open.EntryTime.Format(time.RFC3339))
	}

	dir := LONG
	if e.Action == types.SELL {
		dir = SHORT
	}

	b.open = &Position{
		Direction:  dir,
		EntryTime:  ts,
		EntryPrice: e.Price,
		Stop:       e.Stop,
		Target:     e.Target,
		MaxLoss:    e.MaxLoss,
	}
	b.trades = append(b.trades, Trade{
		ID:         b.nextID,
		Direction:  dir,
		EntryTime:  ts,
		EntryPrice: e.Price,
		Stop:       e.Stop,
		Target:     e.Target,
	})
	b.nextID++

	slog.Info("Opened position", "id", b.trades[len(b.trades)-1].ID, "direction", dir,
		"price", e.Price, "stop", e.Stop, "target", e.Target, "max_loss", e.MaxLoss,
		"reason", e.Reason, "timestamp", ts)
	return nil
}

// pnl is the round-trip result at the given price, commission included.
func (b *Book) pnl(dir Direction, entry, price float64) float64 {
	return dir.sign()*b.cfg.Quantity*(price-entry) - b.cfg.Commission
}

// Mark recomputes the unrealized PnL of the open position at the given price
// and returns it. It never mutates the ledger. When Flat it returns zero.
func (b *Book) Mark(price float64) float64 {
	if b.open == nil {
		b.unrealized = 0
		return 0
	}
	b.unrealized = b.pnl(b.open.Direction, b.open.EntryPrice, price)
	return b.unrealized
}

// Close transitions Open -> Flat, realizes the PnL and completes the last
// ledger record in place. Calling Close while Flat is a contract violation.
func (b *Book) Close(price float64, ts time.Time, reason string) (Trade, error) {
	if b.open == nil {
		return Trade{}, fmt.Errorf("no open position to close at %s", ts.Format(time.RFC3339))
	}

	pnl := b.pnl(b.open.Direction, b.open.EntryPrice, price)

	last := &b.trades[len(b.trades)-1]
	last.ExitTime = ts
	last.ExitPrice = price
	last.PnL = pnl
	last.ExitReason = reason

	b.realized += pnl
	b.unrealized = 0
	b.open = nil

	slog.Info("Closed position", "id", last.ID, "direction", last.Direction,
		"exit_price", price, "pnl", pnl, "reason", reason, "timestamp", ts)
	return *last, nil
}

// CheckExit evaluates the open position's exit constraints against the bar's
// close price, in order: stop, target, mark-to-market loss cap. On a hit the
// position is closed at the close price (not clipped to the stop or target
// level) and the completed trade is returned.
func (b *Book) CheckExit(bar types.Bar) (Trade, bool) {
	if b.open == nil {
		return Trade{}, false
	}

	price := bar.Close
	reason := ""
	switch b.open.Direction {
	case LONG:
		if b.open.Stop > 0 && price <= b.open.Stop {
			reason = "STOP_LOSS"
		}
		if b.open.Target > 0 && price >= b.open.Target {
			reason = "TAKE_PROFIT"
		}
	case SHORT:
		if b.open.Stop > 0 && price >= b.open.Stop {
			reason = "STOP_LOSS"
		}
		if b.open.Target > 0 && price <= b.open.Target {
			reason = "TAKE_PROFIT"
		}
	}
	if reason == "" && b.open.MaxLoss > 0 && b.Mark(price) < -b.open.MaxLoss {
		reason = "MAX_LOSS"
	}
	if reason == "" {
		return Trade{}, false
	}

	trade, err := b.Close(price, bar.Timestamp, reason)
	if err != nil {
		// unreachable: the open check above guards this
		panic(err)
	}
	return trade, true
}

// RecordEquity marks the book to the bar's close and appends one equity point.
// Called exactly once per bar, after all exit/entry/flatten steps.
func (b *Book) RecordEquity(bar types.Bar) {
	b.Mark(bar.Close)
	b.equity = append(b.equity, EquityPoint{
		Timestamp: bar.Timestamp,
		Equity:    b.realized + b.unrealized,
	})
}

// Trades returns the ledger, oldest first. The last record may still be open.
func (b *Book) Trades() []Trade {
	return b.trades
}

// ClosedTrades returns only the completed ledger records.
func (b *Book) ClosedTrades() []Trade {
	out := make([]Trade, 0, len(b.trades))
	for _, t := range b.trades {
		if t.Closed() {
			out = append(out, t)
		}
	}
	return out
}

func (b *Book) Realized() float64 {
	return b.realized
}

func (b *Book) Unrealized() float64 {
	return b.unrealized
}

func (b *Book) Equity() []EquityPoint {
	return b.equity
}
