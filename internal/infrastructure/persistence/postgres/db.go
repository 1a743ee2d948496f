package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "taler-merchant-gateway"

// Executor is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories
// run unchanged inside a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is the order store's connection pool.
type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect opens the pool and fails unless the database answers a ping.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	log := logger.With("component", "order_store", "host", cfg.Host, "database", cfg.Name)

	pgxCfg, err := cfg.PgxConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("order store config: %w", err)
	}
	pgxCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		log.Error("order store pool rejected", "error", err)
		return nil, fmt.Errorf("order store pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error("order store unreachable", "port", cfg.Port, "error", err)
		return nil, fmt.Errorf("order store ping: %w", err)
	}

	log.Info("order store ready", "max_conns", pgxCfg.MaxConns)
	return &DB{Pool: pool, logger: log}, nil
}

func (db *DB) Close() {
	db.logger.Info("order store closed")
	db.Pool.Close()
}
