package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `
	number, order_key, status, currency, total::text,
	shipping_country, shipping_state, shipping_city, shipping_postcode,
	shipping_line1, shipping_line2, transaction_ref, created_at`

// OrderRepository is the shop's order record, the OrderStore of the
// lifecycle services.
type OrderRepository struct {
	q Executor
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{q: db.Pool}
}

// NewOrderKey returns a fresh key usable in "<key>-<number>" identifiers.
func NewOrderKey() string {
	return "wc_order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}

// Create inserts order and fills in its Number, Key and CreatedAt.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.Key == "" {
		order.Key = NewOrderKey()
	}
	if order.Status == "" {
		order.Status = domain.OrderPending
	}
	m := toOrderModel(order)

	query := `
		INSERT INTO orders (
			order_key, status, currency, total,
			shipping_country, shipping_state, shipping_city, shipping_postcode,
			shipping_line1, shipping_line2, transaction_ref
		) VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10, $11)
		RETURNING number, created_at
	`

	var number int64
	err := r.q.QueryRow(ctx, query,
		m.OrderKey,
		m.Status,
		m.Currency,
		m.Total,
		m.ShippingCountry,
		m.ShippingState,
		m.ShippingCity,
		m.ShippingPostcode,
		m.ShippingLine1,
		m.ShippingLine2,
		m.TransactionRef,
	).Scan(&number, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.Number = strconv.FormatInt(number, 10)
	return nil
}

func parseNumber(number string) (int64, error) {
	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.NewOrderNotFoundError(number)
	}
	return n, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, number string) (*domain.Order, error) {
	n, err := parseNumber(number)
	if err != nil {
		return nil, err
	}

	var m OrderModel
	err = r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE number = $1`, n).Scan(
		&m.Number, &m.OrderKey, &m.Status, &m.Currency, &m.Total,
		&m.ShippingCountry, &m.ShippingState, &m.ShippingCity, &m.ShippingPostcode,
		&m.ShippingLine1, &m.ShippingLine2, &m.TransactionRef, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewOrderNotFoundError(number)
		}
		return nil, fmt.Errorf("failed to load order %s: %w", number, err)
	}

	return toDomainOrder(m)
}

func (r *OrderRepository) SetStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus) error {
	n, err := parseNumber(order.Number)
	if err != nil {
		return err
	}

	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE number = $2`,
		string(status), n,
	)
	if err != nil {
		return fmt.Errorf("failed to set status of order %s: %w", order.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(order.Number)
	}

	order.Status = status
	return nil
}

// MarkPaid records the payment reference and moves the order to processing.
func (r *OrderRepository) MarkPaid(ctx context.Context, order *domain.Order, txnRef string) error {
	n, err := parseNumber(order.Number)
	if err != nil {
		return err
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE orders
		SET status = $1, transaction_ref = $2, updated_at = NOW()
		WHERE number = $3
	`, string(domain.OrderProcessing), txnRef, n)
	if err != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", order.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(order.Number)
	}

	order.Status = domain.OrderProcessing
	order.TransactionRef = &txnRef
	return nil
}

func (r *OrderRepository) AttachMetadata(ctx context.Context, order *domain.Order, key, value string) error {
	n, err := parseNumber(order.Number)
	if err != nil {
		return err
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO order_metadata (order_number, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_number, meta_key)
		DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = NOW()
	`, n, key, value)
	if err != nil {
		return fmt.Errorf("failed to attach %s to order %s: %w", key, order.Number, err)
	}
	return nil
}

func (r *OrderRepository) Metadata(ctx context.Context, order *domain.Order, key string) (string, bool, error) {
	n, err := parseNumber(order.Number)
	if err != nil {
		return "", false, err
	}

	var value string
	err = r.q.QueryRow(ctx,
		`SELECT meta_value FROM order_metadata WHERE order_number = $1 AND meta_key = $2`,
		n, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s of order %s: %w", key, order.Number, err)
	}
	return value, true, nil
}
