// Package logging provides topic-scoped debug logging on top of log/slog.
// Topics are selected at startup via the DEBUG_TOPICS env var, e.g.
// DEBUG_TOPICS=pivot,macd,book or DEBUG_TOPICS=all.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is a topic-specific logger. Disabled loggers are a single bool check
// per call, so hot loops can log unconditionally.
type Logger struct {
	topic   string
	enabled bool
}

var enabledTopics = make(map[string]bool)

func init() {
	if n := setTopics(os.Getenv("DEBUG_TOPICS")); n > 0 {
		configureSlog()
	}
}

// setTopics replaces the enabled topic set from a comma-separated list and
// returns how many entries were enabled. "all" is a wildcard for everything.
func setTopics(spec string) int {
	enabledTopics = make(map[string]bool)
	if spec == "" {
		return 0
	}
	if spec == "all" {
		enabledTopics["*"] = true
		return 1
	}
	for _, topic := range strings.Split(spec, ",") {
		topic = strings.TrimSpace(topic)
		if topic != "" {
			enabledTopics[topic] = true
		}
	}
	return len(enabledTopics)
}

// configureSlog drops slog's default handler down to DEBUG level
func configureSlog() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// New creates a logger for a topic. Enablement is resolved once, at creation.
// Usage: var pivotLog = logging.New("pivot")
func New(topic string) *Logger {
	return &Logger{
		topic:   topic,
		enabled: enabledTopics["*"] || enabledTopics[topic],
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Debug(msg, append([]any{"topic", l.topic}, args...)...)
}

func (l *Logger) Info(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Info(msg, append([]any{"topic", l.topic}, args...)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Warn(msg, append([]any{"topic", l.topic}, args...)...)
}

// Error always logs, regardless of topic enablement.
func (l *Logger) Error(msg string, args ...any) {
	slog.Error(msg, append([]any{"topic", l.topic}, args...)...)
}

// Enabled reports whether this logger's topic is enabled.
// Useful for guarding expensive argument construction.
func (l *Logger) Enabled() bool {
	return l.enabled
}
