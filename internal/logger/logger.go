// Package logger holds the process-wide zerolog instance. Initialise once
// in main with Init; Get falls back to sane defaults so tests need no setup.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	instance zerolog.Logger
	once     sync.Once
)

// Init builds the singleton. Only the first call has any effect.
func Init(level string, pretty bool) zerolog.Logger {
	once.Do(func() {
		instance = build(level, pretty)
	})
	return instance
}

func Get() zerolog.Logger {
	once.Do(func() {
		instance = build("info", false)
	})
	return instance
}

func build(level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := zerolog.New(os.Stdout)
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
