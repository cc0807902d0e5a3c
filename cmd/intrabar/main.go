package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jwtly10/intrabar/internal/backtest"
	"github.com/jwtly10/intrabar/internal/marketdata"
	"github.com/jwtly10/intrabar/internal/strategy"
	"github.com/jwtly10/intrabar/internal/tradingview"
	"github.com/jwtly10/intrabar/internal/types"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Backtest failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		csvPath      = flag.String("csv", "", "bar data CSV (timestamp,open,high,low,close[,volume])")
		intervalStr  = flag.String("interval", "", "resample interval, e.g. 5m (empty = use bars as-is)")
		strategyName = flag.String("strategy", "priceaction", "strategy to run: priceaction or exhaustion")
		closeStr     = flag.String("session-close", "15:15", "flatten time of day HH:MM (empty = disabled)")
	)
	flag.Parse()

	if *csvPath == "" {
		return fmt.Errorf("-csv is required")
	}

	bars, err := marketdata.LoadCSV(*csvPath)
	if err != nil {
		return err
	}

	if *intervalStr != "" {
		interval, err := time.ParseDuration(*intervalStr)
		if err != nil {
			return fmt.Errorf("invalid -interval: %w", err)
		}
		if bars, err = marketdata.Resample(bars, interval); err != nil {
			return err
		}
		slog.Info("Resampled bars", "interval", interval, "count", len(bars))
	}

	cfg := backtest.DefaultConfig()
	if *closeStr == "" {
		cfg.SessionClose = types.TimeOfDay{}
	} else {
		if cfg.SessionClose, err = types.ParseTimeOfDay(*closeStr); err != nil {
			return fmt.Errorf("invalid -session-close: %w", err)
		}
	}

	// The two generators are separate strategies; exactly one runs per ledger.
	var strat backtest.Strategy
	switch *strategyName {
	case "priceaction":
		strat = strategy.NewPriceAction(strategy.DefaultPriceActionConfig())
	case "exhaustion":
		strat = strategy.NewExhaustion(strategy.DefaultExhaustionConfig())
	default:
		return fmt.Errorf("unknown strategy %q", *strategyName)
	}

	engine := backtest.NewEngine(bars, cfg)
	results, err := engine.Run(strat)
	if err != nil {
		return err
	}

	results.Calculate().Print()
	results.PrintTrades()
	tradingview.DumpPineScript(results.Trades)

	return nil
}
