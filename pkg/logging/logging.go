// Package logging provides the small leveled logger used by the registry and
// the model providers. Messages carry key/value tags and are written through
// the standard library logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) prefix() string {
	switch l {
	case LevelDebug:
		return "DEB "
	case LevelInfo:
		return "INF "
	case LevelWarn:
		return "WRN "
	default:
		return "ERR "
	}
}

// ParseLevel converts a level name (debug, info, warn, error) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger is the logging interface. The variadic arguments are key value
// pairs; keys should be strings.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

// StdLogger writes leveled lines through a *log.Logger.
type StdLogger struct {
	out  *log.Logger
	min  Level
	tags []any
}

// New creates a logger writing to w, dropping messages below min.
func New(w io.Writer, min Level) *StdLogger {
	return &StdLogger{
		out: log.New(w, "", log.LstdFlags),
		min: min,
	}
}

func (l *StdLogger) Debug(msg string, kv ...any) { l.log(LevelDebug, msg, kv) }
func (l *StdLogger) Info(msg string, kv ...any)  { l.log(LevelInfo, msg, kv) }
func (l *StdLogger) Warn(msg string, kv ...any)  { l.log(LevelWarn, msg, kv) }
func (l *StdLogger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv) }

// With returns a logger that appends tags to every message.
func (l *StdLogger) With(kv ...any) Logger {
	tags := make([]any, 0, len(l.tags)+len(kv))
	tags = append(tags, l.tags...)
	tags = append(tags, kv...)
	return &StdLogger{out: l.out, min: l.min, tags: tags}
}

func (l *StdLogger) log(lvl Level, msg string, kv []any) {
	if lvl < l.min {
		return
	}
	l.out.Print(format(lvl.prefix(), msg, kv, l.tags))
}

func format(prefix, msg string, all ...[]any) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(msg)
	for _, tags := range all {
		for i, v := range tags {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('=')
			}
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (n nop) With(...any) Logger { return n }

// Nop returns a logger that discards everything.
func Nop() Logger { return nop{} }
