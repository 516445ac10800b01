package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps LOG_LEVEL values to a Level. Unknown values fall back to info.
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

type simpleLogger struct {
	logger *log.Logger
	level  Level
}

var (
	loggerInstance *simpleLogger
	once           sync.Once
)

// New creates a new singleton instance of the simple logger.
// The level is read from LOG_LEVEL the first time New is called.
func New() Logger {
	once.Do(func() {
		loggerInstance = &simpleLogger{
			logger: log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile),
			level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		}
	})
	return loggerInstance
}

// NewWithWriter creates a non-shared logger writing to w. Used by tests and tools.
func NewWithWriter(w io.Writer, level Level) Logger {
	return &simpleLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// Error logs an error message with the 🔴 emoji.
func (l *simpleLogger) Error(msg string, err error) {
	if l.level > LevelError {
		return
	}
	l.logger.Output(2, fmt.Sprintf("🔴 ERROR: %s - %v", msg, err))
}

// Warn logs a warning message with the ⚠️ emoji.
func (l *simpleLogger) Warn(msg string) {
	if l.level > LevelWarn {
		return
	}
	l.logger.Output(2, fmt.Sprintf("⚠️ WARN: %s", msg))
}

// Info logs an informational message.
func (l *simpleLogger) Info(msg string) {
	if l.level > LevelInfo {
		return
	}
	l.logger.Output(2, fmt.Sprintf("INFO: %s", msg))
}

// Debug logs a debug message.
func (l *simpleLogger) Debug(msg string) {
	if l.level > LevelDebug {
		return
	}
	l.logger.Output(2, fmt.Sprintf("DEBUG: %s", msg))
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}
