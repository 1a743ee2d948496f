package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MERCHANT_BACKEND__BASE_URL", "https://backend.example/instances/shop///")
	t.Setenv("MERCHANT_BACKEND__API_KEY", "Bearer secret-token:sandbox")
	t.Setenv("MERCHANT_SHOP__HOME_URL", "https://shop.example")
	t.Setenv("MERCHANT_ADMIN__TOKEN", "admin-token")
}

func TestLoadConfig_DefaultsAndEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("MERCHANT_SHOP__REFUND_DELAY_DAYS", "3")
	t.Setenv("MERCHANT_LOGGER__DIAGNOSTICS", "true")

	cfg, err := LoadConfigFile("")

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 2, cfg.Backend.MaxRedirects)
	assert.Equal(t, int64(1<<20), cfg.Backend.MaxResponseBytes)
	assert.Equal(t, 3, cfg.Shop.RefundDelayDays)
	assert.Equal(t, "Taler Shop #%s", cfg.Shop.OrderSummary)
	assert.True(t, cfg.Logger.Diagnostics)

	endpoint, err := cfg.Backend.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example/instances/shop", endpoint.BaseURL())
	assert.Equal(t, "Bearer secret-token:sandbox", endpoint.APIKey())
}

func TestLoadConfig_File(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "merchant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shop:
  gateway_id: taler
  order_summary: "Order %s"
backend:
  timeout: 10s
`), 0o600))
	t.Setenv("MERCHANT_BACKEND__TIMEOUT", "12s")

	cfg, err := LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, "taler", cfg.Shop.GatewayID)
	assert.Equal(t, "Order %s", cfg.Shop.OrderSummary)
	assert.Equal(t, 12*time.Second, cfg.Backend.Timeout, "environment overrides the file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MERCHANT_BACKEND__API_KEY", "")

		_, err := LoadConfigFile("")
		assert.Error(t, err)
	})

	t.Run("non-http backend", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MERCHANT_BACKEND__BASE_URL", "ftp://backend.example")

		_, err := LoadConfigFile("")
		assert.Error(t, err)
	})

	t.Run("unknown log level", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MERCHANT_LOGGER__LEVEL", "verbose")

		_, err := LoadConfigFile("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		setRequired(t)

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:            "db",
		Port:            5433,
		User:            "merchant",
		Password:        "p@ss/word",
		Name:            "orders",
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute,
	}

	assert.Equal(t, "postgres://merchant:p%40ss%2Fword@db:5433/orders?sslmode=disable", cfg.ConnString())

	pgxCfg, err := cfg.PgxConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p@ss/word", pgxCfg.ConnConfig.Password)
	assert.Equal(t, int32(4), pgxCfg.MaxConns)
}

func TestLoggerConfig_NoticeLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggerConfig{Level: "info"}.newLogger(&buf)

	logger.Log(context.Background(), LevelNotice, "refund granted")
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), "level=NOTICE")
	assert.NotContains(t, buf.String(), "hidden")
}
