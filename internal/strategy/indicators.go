package strategy

import (
	"github.com/jwtly10/intrabar/internal/logging"
)

var macdLog = logging.New("macd")

// EMA - Exponential Moving Average
type EMA struct {
	period int
	value  float64
	alpha  float64
	init   bool
}

func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

func (e *EMA) Update(price float64) {
	if !e.init {
		e.value = price
		e.init = true
		return
	}
	e.value = (price * e.alpha) + (e.value * (1 - e.alpha))
}

func (e *EMA) Value() float64 {
	return e.value
}

func (e *EMA) Ready() bool {
	return e.init
}

// MACD - moving-average-convergence oscillator. The oscillator is the fast
// EMA minus the slow EMA of close prices; the signal line is an EMA of the
// oscillator itself.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA

	osc     float64
	prevOsc float64
	updates int
}

func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fast:   NewEMA(fastPeriod),
		slow:   NewEMA(slowPeriod),
		signal: NewEMA(signalPeriod),
	}
}

func (m *MACD) Update(close float64) {
	m.prevOsc = m.osc

	m.fast.Update(close)
	m.slow.Update(close)
	m.osc = m.fast.Value() - m.slow.Value()
	m.signal.Update(m.osc)
	m.updates++

	macdLog.Debug("MACD updated", "close", close, "osc", m.osc, "signal", m.signal.Value())
}

func (m *MACD) Osc() float64 {
	return m.osc
}

func (m *MACD) Signal() float64 {
	return m.signal.Value()
}

// CrossedUp reports a zero-line crossing from <=0 to >0 on the last update,
// confirmed by the oscillator sitting above its signal line on that bar.
func (m *MACD) CrossedUp() bool {
	return m.updates >= 2 && m.prevOsc <= 0 && m.osc > 0 && m.osc > m.signal.Value()
}

// CrossedDown is the mirror crossing downward.
func (m *MACD) CrossedDown() bool {
	return m.updates >= 2 && m.prevOsc >= 0 && m.osc < 0 && m.osc < m.signal.Value()
}

func (m *MACD) Ready() bool {
	return m.updates >= 2
}
