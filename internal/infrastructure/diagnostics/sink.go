package diagnostics

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
)

const source = "taler"

// Sink writes diagnostics through slog. A disabled Sink drops everything,
// so request and response bodies never reach the log.
type Sink struct {
	logger  *slog.Logger
	enabled bool
}

func NewSink(logger *slog.Logger, enabled bool) *Sink {
	return &Sink{
		logger:  logger.With("source", source),
		enabled: enabled,
	}
}

func (s *Sink) Enabled() bool {
	return s.enabled
}

func (s *Sink) Log(ctx context.Context, level application.Level, scope application.Scope, msg string, args ...any) {
	if !s.enabled {
		return
	}
	attrs := make([]any, 0, len(args)+4)
	attrs = append(attrs, "actor", scope.Actor, "order_id", scope.OrderID)
	attrs = append(attrs, args...)
	s.logger.Log(ctx, slogLevel(level), msg, attrs...)
}

func slogLevel(level application.Level) slog.Level {
	switch level {
	case application.LevelDebug:
		return slog.LevelDebug
	case application.LevelNotice:
		return config.LevelNotice
	case application.LevelWarning:
		return slog.LevelWarn
	case application.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
