// Package logger builds the zerolog loggers shared by the dashboard
// server, the soak runner and the browser harness.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level      string    `yaml:"level"`
	TimeFormat string    `yaml:"time_format"`
	Pretty     bool      `yaml:"pretty"`
	Component  string    `yaml:"-"`
	Out        io.Writer `yaml:"-"` // Defaults to os.Stderr
}

// New returns an info-level JSON logger for component.
func New(component string) zerolog.Logger {
	return NewWithConfig(Config{
		Level:      "info",
		TimeFormat: time.RFC3339,
		Component:  component,
	})
}

// NewWithConfig returns a logger built from cfg. An unparseable level
// falls back to info.
func NewWithConfig(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	var l zerolog.Logger
	if cfg.Pretty {
		l = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat})
	} else {
		l = zerolog.New(out)
	}

	ctx := l.Level(level).With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}
	return ctx.Logger()
}
