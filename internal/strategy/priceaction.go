package strategy

import (
	"math"

	"github.com/jwtly10/intrabar/internal/account"
	"github.com/jwtly10/intrabar/internal/logging"
	"github.com/jwtly10/intrabar/internal/types"
)

var pivotLog = logging.New("pivot")

type PriceActionConfig struct {
	BackCandles int     // rolling lookback window width
	N1          int     // pivot bars required on the left
	N2          int     // pivot bars required on the right
	Tolerance   float64 // proximity tolerance in price units
	// EntryCutoff suppresses new entries at or after this time of day, so an
	// entry can never coincide with the session flatten. Zero disables it.
	EntryCutoff types.TimeOfDay
}

func DefaultPriceActionConfig() PriceActionConfig {
	return PriceActionConfig{
		BackCandles: 50,
		N1:          2,
		N2:          2,
		Tolerance:   3,
		EntryCutoff: types.TimeOfDay{Hour: 15, Minute: 0},
	}
}

// PriceAction trades candlestick reversals at pivot support and resistance:
// a bearish engulfing or bearish-leaning doji at resistance opens a short, the
// bullish mirror at support opens a long. Stops sit at the two-bar extreme,
// targets at 1:1 risk:reward.
type PriceAction struct {
	cfg PriceActionConfig
}

func NewPriceAction(cfg PriceActionConfig) *PriceAction {
	return &PriceAction{cfg: cfg}
}

func (s *PriceAction) Name() string {
	return "priceaction"
}

// levels rebuilds the support and resistance sets from scratch for the window
// ending at bar i. Only interior positions whose full n1/n2 wings fit inside
// the window are probed, so the pivot check never reads past bar i.
// Quadratic in BackCandles per bar; correctness over speed.
func (s *PriceAction) levels(bars []types.Bar, i int) (supports, resistances []float64) {
	start := i - s.cfg.BackCandles
	for j := start + s.cfg.N1; j <= i-s.cfg.N2; j++ {
		if IsSupport(bars, j, s.cfg.N1, s.cfg.N2) {
			supports = append(supports, bars[j].Low)
		}
		if IsResistance(bars, j, s.cfg.N1, s.cfg.N2) {
			resistances = append(resistances, bars[j].High)
		}
	}
	if pivotLog.Enabled() {
		pivotLog.Debug("Rebuilt pivot levels", "bar", i, "supports", supports, "resistances", resistances)
	}
	return supports, resistances
}

// Scan classifies bar i. The first BackCandles bars and the last N2 bars of
// the series never receive a signal. The bearish branch is evaluated first.
func (s *PriceAction) Scan(bars []types.Bar, i int) types.Bias {
	if i < s.cfg.BackCandles || i < 1 || i >= len(bars)-s.cfg.N2 {
		return types.BiasNone
	}

	supports, resistances := s.levels(bars, i)
	engulfing := Engulfing(bars[i-1], bars[i])
	doji := Doji(bars[i])

	if (engulfing == types.BiasBearish || doji == types.BiasBearish) &&
		NearResistance(bars[i], resistances, s.cfg.Tolerance) {
		return types.BiasBearish
	}
	if (engulfing == types.BiasBullish || doji == types.BiasBullish) &&
		NearSupport(bars[i], supports, s.cfg.Tolerance) {
		return types.BiasBullish
	}
	return types.BiasNone
}

// ExitBar: price-action positions exit on their stop/target, which the book
// checks itself, so there is no strategy-level exit here.
func (s *PriceAction) ExitBar(bars []types.Bar, i int, book *account.Book) (string, bool) {
	return "", false
}

func (s *PriceAction) EntryBar(bars []types.Bar, i int, book *account.Book) *types.Entry {
	if !book.Flat() {
		return nil
	}
	bar := bars[i]
	if !s.cfg.EntryCutoff.IsZero() && !bar.Timestamp.Before(s.cfg.EntryCutoff.On(bar.Timestamp)) {
		return nil
	}

	switch s.Scan(bars, i) {
	case types.BiasBearish:
		entry := bar.Close
		stop := math.Max(bar.High, bars[i-1].High)
		return &types.Entry{
			Action: types.SELL,
			Price:  entry,
			Stop:   stop,
			Target: entry - (stop - entry),
			Reason: "reversal at resistance",
		}
	case types.BiasBullish:
		entry := bar.Close
		stop := math.Min(bar.Low, bars[i-1].Low)
		return &types.Entry{
			Action: types.BUY,
			Price:  entry,
			Stop:   stop,
			Target: entry + (entry - stop),
			Reason: "reversal at support",
		}
	}
	return nil
}
