package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CartRepository stores cart lines per shopper session.
type CartRepository struct {
	q Executor
}

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{q: db.Pool}
}

// AddLine adds quantity to an existing line for the same product.
func (r *CartRepository) AddLine(ctx context.Context, sessionID string, line domain.CartLine) error {
	if line.Quantity <= 0 {
		return domain.NewInvalidAmountError(fmt.Sprintf("quantity of %s must be positive", line.ProductID))
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_lines (session_id, product_id, title, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5::numeric)
		ON CONFLICT (session_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity,
		              title = EXCLUDED.title,
		              unit_price = EXCLUDED.unit_price
	`, sessionID, line.ProductID, line.Title, line.Quantity, line.UnitPrice.String())
	if err != nil {
		return fmt.Errorf("failed to add %s to cart: %w", line.ProductID, err)
	}
	return nil
}

func (r *CartRepository) Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT session_id, product_id, title, quantity, unit_price::text
		FROM cart_lines
		WHERE session_id = $1
		ORDER BY added_at, product_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CartLine, error) {
		var m CartLineModel
		if err := row.Scan(&m.SessionID, &m.ProductID, &m.Title, &m.Quantity, &m.UnitPrice); err != nil {
			return domain.CartLine{}, err
		}
		return toDomainCartLine(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan cart lines: %w", err)
	}
	return lines, nil
}

func (r *CartRepository) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ForSession binds the repository to one shopper's cart.
func (r *CartRepository) ForSession(sessionID string) application.Cart {
	return &sessionCart{repo: r, sessionID: sessionID}
}

type sessionCart struct {
	repo      *CartRepository
	sessionID string
}

func (c *sessionCart) CurrentLines(ctx context.Context) ([]domain.CartLine, error) {
	return c.repo.Lines(ctx, c.sessionID)
}

func (c *sessionCart) Clear(ctx context.Context) error {
	return c.repo.Clear(ctx, c.sessionID)
}
