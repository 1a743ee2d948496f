package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	envPrefix   = "MERCHANT_"
	envFileName = "MERCHANT_CONFIG_FILE"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Backend   BackendConfig   `koanf:"backend"`
	Shop      ShopConfig      `koanf:"shop"`
	Logger    LoggerConfig    `koanf:"logger"`
	Admin     AdminConfig     `koanf:"admin"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// BackendConfig points at the Taler merchant backend instance.
type BackendConfig struct {
	BaseURL          string        `koanf:"base_url" validate:"required,url"`
	APIKey           string        `koanf:"api_key" validate:"required"`
	Timeout          time.Duration `koanf:"timeout" validate:"required"`
	MaxRedirects     int           `koanf:"max_redirects" validate:"min=0"`
	MaxResponseBytes int64         `koanf:"max_response_bytes" validate:"required,min=1"`
	RequestEncoding  string        `koanf:"request_encoding" validate:"omitempty,oneof=gzip deflate identity"`
}

// Endpoint normalizes BaseURL into the immutable endpoint used by every call.
func (c BackendConfig) Endpoint() (domain.BackendEndpoint, error) {
	return domain.NewBackendEndpoint(c.BaseURL, c.APIKey)
}

type ShopConfig struct {
	HomeURL         string `koanf:"home_url" validate:"required,url"`
	GatewayID       string `koanf:"gateway_id" validate:"required"`
	OrderSummary    string `koanf:"order_summary" validate:"required"`
	RefundDelayDays int    `koanf:"refund_delay_days" validate:"min=0"`
	AccountPath     string `koanf:"account_path"`
	ShopPath        string `koanf:"shop_path"`
	CartPath        string `koanf:"cart_path"`
	ReturnPath      string `koanf:"return_path"`
	UserHeader      string `koanf:"user_header"`
	SessionCookie   string `koanf:"session_cookie" validate:"required"`
	NoticeCookie    string `koanf:"notice_cookie" validate:"required"`
}

type LoggerConfig struct {
	Level       string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format      string `koanf:"format" validate:"omitempty,oneof=text json"`
	Diagnostics bool   `koanf:"diagnostics"`
}

type AdminConfig struct {
	Token string `koanf:"token" validate:"required"`
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"min=0"`
	Burst int     `koanf:"burst" validate:"min=0"`
}

// A checkout makes the most backend calls of any request: the version check
// and the order POST.
const (
	backendCallsPerRequest = 2
	deadlineMargin         = 5 * time.Second
)

// RequestTimeout bounds one gateway request. It leaves every backend call of
// the request its full backend.timeout.
func (c *Config) RequestTimeout() time.Duration {
	return max(c.Server.ReadTimeout, backendCallsPerRequest*c.Backend.Timeout+deadlineMargin)
}

// WriteTimeout outlasts RequestTimeout so the timeout reply can still be written.
func (c *Config) WriteTimeout() time.Duration {
	return max(c.Server.WriteTimeout, c.RequestTimeout()+deadlineMargin)
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         "35s",
		"server.write_timeout":        "40s",
		"server.idle_timeout":         "60s",
		"database.host":               "localhost",
		"database.port":               5432,
		"database.user":               "merchant",
		"database.name":               "merchant",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"backend.timeout":             "30s",
		"backend.max_redirects":       2,
		"backend.max_response_bytes":  1 << 20,
		"backend.request_encoding":    "gzip",
		"shop.gateway_id":             "gnutaler",
		"shop.order_summary":          "Taler Shop #%s",
		"shop.refund_delay_days":      14,
		"shop.account_path":           "/my-account/",
		"shop.shop_path":              "/shop/",
		"shop.cart_path":              "/cart/",
		"shop.return_path":            "/checkout/order-received/",
		"shop.session_cookie":         "merchant_session",
		"shop.notice_cookie":          "merchant_notice",
		"logger.level":                "info",
		"logger.format":               "text",
		"logger.diagnostics":          false,
		"rate_limit.rps":              5.0,
		"rate_limit.burst":            10,
	}
}

// LoadConfig reads defaults, the optional file named by MERCHANT_CONFIG_FILE
// and MERCHANT_ prefixed environment variables, in that order.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(os.Getenv(envFileName))
}

// LoadConfigFile is LoadConfig with an explicit YAML file; an empty path skips it.
func LoadConfigFile(path string) (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, err
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if _, err := mainConfig.Backend.Endpoint(); err != nil {
		logger.Error("invalid backend endpoint", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
