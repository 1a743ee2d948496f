package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelNotice sits between info and warn; slog has no built-in notice level.
const LevelNotice = slog.Level(2)

func (c LoggerConfig) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c LoggerConfig) newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       c.slogLevel(),
		ReplaceAttr: renameNotice,
	}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c LoggerConfig) slogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func renameNotice(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelNotice {
		a.Value = slog.StringValue("NOTICE")
	}
	return a
}

// DiagnosticsLogger always admits debug records; the diagnostics sink applies
// its own enable flag.
func (c LoggerConfig) DiagnosticsLogger() *slog.Logger {
	c.Level = "debug"
	return c.newLogger(os.Stdout)
}
