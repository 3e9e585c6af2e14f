package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level controls which messages a Logger emits
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

// ParseLevel converts a level name to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Option attaches structured fields to a log entry
type Option func(map[string]interface{})

// WithField attaches a single key/value pair to a log entry
func WithField(key string, value interface{}) Option {
	return func(fields map[string]interface{}) {
		fields[key] = value
	}
}

// WithFields attaches multiple key/value pairs to a log entry
func WithFields(m map[string]interface{}) Option {
	return func(fields map[string]interface{}) {
		for k, v := range m {
			fields[k] = v
		}
	}
}

// Logger is a leveled logger with structured key=value fields
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
}

// New creates a logger that writes to stderr at the given level
func New(level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) Debug(msg string, opts ...Option) { l.emit(LevelDebug, msg, opts...) }
func (l *Logger) Info(msg string, opts ...Option)  { l.emit(LevelInfo, msg, opts...) }
func (l *Logger) Warn(msg string, opts ...Option)  { l.emit(LevelWarn, msg, opts...) }
func (l *Logger) Error(msg string, opts ...Option) { l.emit(LevelError, msg, opts...) }

func (l *Logger) emit(level Level, msg string, opts ...Option) {
	if level < l.level {
		return
	}

	fields := make(map[string]interface{})
	for _, opt := range opts {
		opt(fields)
	}

	var b strings.Builder
	b.WriteString(level.String())
	b.WriteString(" ")
	b.WriteString(msg)

	// Deterministic field order so log lines are grep-friendly
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(b.String())
}
