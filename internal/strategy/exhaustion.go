package strategy

import (
	"time"

	"github.com/jwtly10/intrabar/internal/account"
	"github.com/jwtly10/intrabar/internal/logging"
	"github.com/jwtly10/intrabar/internal/types"
)

var exhaustLog = logging.New("exhaust")

type ExhaustionConfig struct {
	ReturnSpan      int     // bars between the two closes of the return signal
	ReturnThreshold float64 // magnitude needed to bin a return as Up/Down
	MaxStreak       int     // entries allowed only while the streak is below this
	FlipStreak      int     // forced exit once the opposite streak exceeds this
	MaxLoss         float64 // mark-to-market loss cap handed to the book
	FastPeriod      int
	SlowPeriod      int
	SignalPeriod    int
	// Windows are the intraday intervals in which entries may fire. An empty
	// slice disables the restriction. Standing positions remain subject to
	// the session flatten regardless.
	Windows []types.Window
}

func DefaultExhaustionConfig() ExhaustionConfig {
	return ExhaustionConfig{
		ReturnSpan:      2,
		ReturnThreshold: 10,
		MaxStreak:       3,
		FlipStreak:      4,
		MaxLoss:         15000,
		FastPeriod:      12,
		SlowPeriod:      26,
		SignalPeriod:    9,
		Windows: []types.Window{
			{From: types.TimeOfDay{Hour: 9, Minute: 15}, To: types.TimeOfDay{Hour: 10, Minute: 30}},
			{From: types.TimeOfDay{Hour: 11, Minute: 15}, To: types.TimeOfDay{Hour: 13, Minute: 30}},
			{From: types.TimeOfDay{Hour: 13, Minute: 45}, To: types.TimeOfDay{Hour: 15, Minute: 0}},
		},
	}
}

// Exhaustion bets against momentum bursts that the oscillator does not
// confirm: a streak of large same-direction two-bar returns without a
// concurrent MACD crossing opens a position the other way. A hard flip of the
// streak the opposite way forces the position closed.
//
// An Exhaustion value carries scan state across bars and must be used for a
// single pass over a single series; construct a fresh one per run.
type Exhaustion struct {
	cfg  ExhaustionConfig
	macd *MACD

	next       int // first bar index not yet folded into the state
	upStreak   int
	downStreak int
	lastBin    types.Bias
	lastBuy    bool
	lastSell   bool
}

func NewExhaustion(cfg ExhaustionConfig) *Exhaustion {
	return &Exhaustion{
		cfg:  cfg,
		macd: NewMACD(cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod),
	}
}

func (s *Exhaustion) Name() string {
	return "exhaustion"
}

// advance folds bars [next, i] into the scan state. Both per-bar hooks call
// it first, so each bar is processed exactly once no matter which hook runs.
func (s *Exhaustion) advance(bars []types.Bar, i int) {
	for ; s.next <= i; s.next++ {
		j := s.next
		s.macd.Update(bars[j].Close)
		buy := s.macd.CrossedUp()
		sell := s.macd.CrossedDown()

		bin := types.BiasNone
		if j >= s.cfg.ReturnSpan {
			switch ret := bars[j].Close - bars[j-s.cfg.ReturnSpan].Close; {
			case ret > s.cfg.ReturnThreshold:
				bin = types.BiasBullish
			case ret < -s.cfg.ReturnThreshold:
				bin = types.BiasBearish
			}
		}

		// An unconfirmed burst extends its streak and resets the opposite
		// one; every other bar leaves both counters untouched.
		if bin == types.BiasBullish && !buy {
			s.upStreak++
			s.downStreak = 0
		} else if bin == types.BiasBearish && !sell {
			s.downStreak++
			s.upStreak = 0
		}

		s.lastBin = bin
		s.lastBuy = buy
		s.lastSell = sell

		exhaustLog.Debug("Exhaustion state", "bar", j, "bin", bin, "buy", buy, "sell", sell,
			"up_streak", s.upStreak, "down_streak", s.downStreak)
	}
}

// ExitBar forces a close when momentum has flipped hard against the position.
// The fixed loss cap is enforced by the book via Entry.MaxLoss.
func (s *Exhaustion) ExitBar(bars []types.Bar, i int, book *account.Book) (string, bool) {
	s.advance(bars, i)

	pos := book.Position()
	if pos == nil {
		return "", false
	}
	if pos.Direction == account.LONG && s.downStreak > s.cfg.FlipStreak {
		return "MOMENTUM_FLIP", true
	}
	if pos.Direction == account.SHORT && s.upStreak > s.cfg.FlipStreak {
		return "MOMENTUM_FLIP", true
	}
	return "", false
}

// EntryBar opens against an unconfirmed burst while its streak is still
// young. The streak check runs after the bar's own increment, so the bar that
// takes a streak to MaxStreak no longer fires.
func (s *Exhaustion) EntryBar(bars []types.Bar, i int, book *account.Book) *types.Entry {
	s.advance(bars, i)

	if !book.Flat() {
		return nil
	}
	if !s.inWindow(bars[i].Timestamp) {
		return nil
	}

	if s.lastBin == types.BiasBullish && !s.lastBuy && s.upStreak < s.cfg.MaxStreak {
		return &types.Entry{
			Action:  types.SELL,
			Price:   bars[i].Close,
			MaxLoss: s.cfg.MaxLoss,
			Reason:  "unconfirmed up-move exhaustion",
		}
	}
	if s.lastBin == types.BiasBearish && !s.lastSell && s.downStreak < s.cfg.MaxStreak {
		return &types.Entry{
			Action:  types.BUY,
			Price:   bars[i].Close,
			MaxLoss: s.cfg.MaxLoss,
			Reason:  "unconfirmed down-move exhaustion",
		}
	}
	return nil
}

func (s *Exhaustion) inWindow(ts time.Time) bool {
	if len(s.cfg.Windows) == 0 {
		return true
	}
	for _, w := range s.cfg.Windows {
		if w.Contains(ts) {
			return true
		}
	}
	return false
}
