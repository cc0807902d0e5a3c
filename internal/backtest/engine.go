// Package backtest runs one signal strategy over a materialized bar series
// and produces a trade ledger and per-bar equity curve. Processing is
// single-threaded and strictly sequential; each run gets a fresh book.
package backtest

import (
	"fmt"
	"log/slog"

	"github.com/jwtly10/intrabar/internal/account"
	"github.com/jwtly10/intrabar/internal/types"
)

type Config struct {
	// SessionClose force-flattens any open position on the first bar at or
	// after this time of day, regardless of PnL. Zero disables it.
	SessionClose types.TimeOfDay
	Book         account.Config
}

func DefaultConfig() Config {
	return Config{
		SessionClose: types.TimeOfDay{Hour: 15, Minute: 15},
		Book:         account.DefaultConfig(),
	}
}

type Strategy interface {
	Name() string
	// ExitBar is consulted while a position is open, after the book's own
	// stop/target/loss-cap checks against the bar's close.
	ExitBar(bars []types.Bar, i int, book *account.Book) (reason string, exit bool)
	// EntryBar is consulted only while the book is Flat. Strategies must not
	// request entries inside the session flatten window.
	EntryBar(bars []types.Bar, i int, book *account.Book) *types.Entry
}

type Engine struct {
	Bars []types.Bar
	cfg  Config
}

func NewEngine(bars []types.Bar, cfg Config) *Engine {
	return &Engine{
		Bars: bars,
		cfg:  cfg,
	}
}

// Run executes the strategy over the bar series. Per bar, strictly ordered:
// exit checks, entry evaluation, session flatten, then one equity point.
// Getting this order wrong either looks ahead or double-counts a bar.
func (e *Engine) Run(strat Strategy) (*Results, error) {
	book := account.NewBook(e.cfg.Book)

	slog.Debug("Starting backtest", "strategy", strat.Name(), "total_bars", len(e.Bars))

	for i, bar := range e.Bars {
		if !book.Flat() {
			if _, closed := book.CheckExit(bar); !closed {
				if reason, exit := strat.ExitBar(e.Bars, i, book); exit {
					if _, err := book.Close(bar.Close, bar.Timestamp, reason); err != nil {
						return nil, fmt.Errorf("bar %d: %w", i, err)
					}
				}
			}
		}

		if book.Flat() {
			if entry := strat.EntryBar(e.Bars, i, book); entry != nil {
				if err := book.Open(*entry, bar.Timestamp); err != nil {
					return nil, fmt.Errorf("bar %d: %w", i, err)
				}
			}
		}

		if !book.Flat() && e.sessionClosed(bar) {
			if _, err := book.Close(bar.Close, bar.Timestamp, "SESSION_CLOSE"); err != nil {
				return nil, fmt.Errorf("bar %d: %w", i, err)
			}
		}

		book.RecordEquity(bar)
	}

	// Close anything still open at the end of the series
	if !book.Flat() && len(e.Bars) > 0 {
		last := e.Bars[len(e.Bars)-1]
		if _, err := book.Close(last.Close, last.Timestamp, "END_OF_DATA"); err != nil {
			return nil, err
		}
	}

	return &Results{
		Strategy: strat.Name(),
		Trades:   book.ClosedTrades(),
		Equity:   book.Equity(),
	}, nil
}

func (e *Engine) sessionClosed(bar types.Bar) bool {
	return !e.cfg.SessionClose.IsZero() &&
		!bar.Timestamp.Before(e.cfg.SessionClose.On(bar.Timestamp))
}
