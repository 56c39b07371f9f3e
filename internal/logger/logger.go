// Package logger builds the [bullets.Logger] instances gitci logs
// through, mapping the log_level values accepted in the configuration
// file and on the command line onto bullets levels.
package logger

import (
	"os"

	"github.com/sgaunet/bullets"
)

// levels maps the accepted log_level values. The empty string is absent
// on purpose; ParseLevel handles it through its fallback.
var levels = map[string]bullets.Level{
	"debug": bullets.DebugLevel,
	"info":  bullets.InfoLevel,
	"warn":  bullets.WarnLevel,
	"error": bullets.ErrorLevel,
}

// ParseLevel maps a log_level value onto its bullets level. Unknown
// values fall back to info and report false.
func ParseLevel(logLevel string) (bullets.Level, bool) {
	level, ok := levels[logLevel]
	if !ok {
		return bullets.InfoLevel, false
	}
	return level, true
}

// ValidLevel reports whether logLevel is a value ParseLevel knows.
func ValidLevel(logLevel string) bool {
	_, ok := levels[logLevel]
	return ok
}

// NewLogger creates a logger writing to stdout at logLevel, falling back
// to info for unknown values.
func NewLogger(logLevel string) *bullets.Logger {
	level, _ := ParseLevel(logLevel)
	logger := bullets.New(os.Stdout)
	logger.SetLevel(level)
	return logger
}

// NoLogger creates a logger that suppresses all output. The endpoint and
// service clients default to it until SetLogger is called.
func NoLogger() *bullets.Logger {
	logger := bullets.New(os.Stdout)
	logger.SetLevel(bullets.FatalLevel)
	return logger
}
