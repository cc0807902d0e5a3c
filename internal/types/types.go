package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	BUY  Action = "BUY"
	SELL Action = "SELL"
)

type Action string

// Bias is the per-bar directional classification produced by a signal scan.
// A scan writes exactly one Bias per bar and never revises it.
type Bias string

const (
	BiasNone    Bias = "NONE"
	BiasBearish Bias = "BEARISH"
	BiasBullish Bias = "BULLISH"
)

type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Entry is a request to open a position at the current bar. Stop, Target and
// MaxLoss are optional exit constraints handed to the book; zero disables each.
type Entry struct {
	Action  Action
	Price   float64
	Stop    float64 // exit when close crosses this price adversely
	Target  float64 // exit when close reaches this price
	MaxLoss float64 // exit when the mark-to-market loss exceeds this amount
	Reason  string
}

// TimeOfDay is a wall-clock time within a trading day. The zero value means
// "not set" wherever a TimeOfDay is optional.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On pins the time of day onto the date of ts, in ts's location.
func (t TimeOfDay) On(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), t.Hour, t.Minute, 0, 0, ts.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Window is a half-open [From, To) intraday interval.
type Window struct {
	From TimeOfDay
	To   TimeOfDay
}

func (w Window) Contains(ts time.Time) bool {
	m := ts.Hour()*60 + ts.Minute()
	return m >= w.From.Minutes() && m < w.To.Minutes()
}
