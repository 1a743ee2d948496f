package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionCoordinator manages transactions across multiple repositories
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

// WithTransaction runs fn with repositories bound to one transaction. The
// transaction commits only when fn returns nil.
func (tc *TransactionCoordinator) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, orders *OrderRepository, carts *CartRepository) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &OrderRepository{q: tx}, &CartRepository{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// PlaceOrder creates a pending order totalling lines and fills the session
// cart with the same lines, atomically.
func (tc *TransactionCoordinator) PlaceOrder(ctx context.Context, order *domain.Order, sessionID string, lines []domain.CartLine) error {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	order.Total = total

	return tc.WithTransaction(ctx, func(ctx context.Context, orders *OrderRepository, carts *CartRepository) error {
		if err := carts.Clear(ctx, sessionID); err != nil {
			return err
		}
		for _, line := range lines {
			if err := carts.AddLine(ctx, sessionID, line); err != nil {
				return err
			}
		}
		return orders.Create(ctx, order)
	})
}
