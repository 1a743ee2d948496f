package config

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnString renders the settings as a postgres URL with escaped credentials.
func (c *DatabaseConfig) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// PgxConfig creates a pgxpool.Config from the DatabaseConfig.
func (c *DatabaseConfig) PgxConfig(ctx context.Context) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(c.ConnString())
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = int32(c.MaxOpenConns)
	cfg.MinConns = int32(c.MaxIdleConns)
	cfg.MaxConnLifetime = c.ConnMaxLifetime
	cfg.MaxConnIdleTime = c.ConnMaxIdleTime
	cfg.HealthCheckPeriod = 30 * time.Second

	return cfg, nil
}
