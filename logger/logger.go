package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type (
	// Logger is the structured logger handed to every component.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	charmLogger struct {
		l *charmlog.Logger
	}
)

type Config struct {
	Level      string
	JSON       bool
	Output     io.Writer
	TimeFormat string
}

func parseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// New builds a Logger writing to cfg.Output (stderr when nil).
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "15:04:05"
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           parseLevel(cfg.Level),
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return &charmLogger{l: l}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return New(Config{Output: io.Discard})
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}
