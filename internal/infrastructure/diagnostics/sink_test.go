package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSink_Log(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(jsonLogger(&buf), true)

	sink.Log(context.Background(), application.LevelError, application.Scope{Actor: "admin", OrderID: "KEY-42"},
		"Order unknown reported by Taler backend", "status", 404)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "admin", entry["actor"])
	assert.Equal(t, "KEY-42", entry["order_id"])
	assert.Equal(t, "taler", entry["source"])
	assert.Equal(t, float64(404), entry["status"])
}

func TestSink_Disabled(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(jsonLogger(&buf), false)

	sink.Log(context.Background(), application.LevelError, application.Scope{}, "body", "payload", "secret")

	assert.False(t, sink.Enabled())
	assert.Zero(t, buf.Len())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, slogLevel(application.LevelDebug))
	assert.Equal(t, slog.LevelInfo, slogLevel(application.LevelInfo))
	assert.Equal(t, config.LevelNotice, slogLevel(application.LevelNotice))
	assert.Equal(t, slog.LevelWarn, slogLevel(application.LevelWarning))
	assert.Equal(t, slog.LevelError, slogLevel(application.LevelError))
}
