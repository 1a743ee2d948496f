package application

import (
	"context"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
)

// Scope identifies who acts on which order; every diagnostic carries it.
type Scope struct {
	Actor   string
	OrderID string
}

// Outcome is the result of one backend call. Status 0 means no HTTP status
// was obtained and Body then holds "<code>: <detail>" for the failure.
type Outcome struct {
	Status int
	Body   []byte
}

func (o Outcome) TransportFailed() bool {
	return o.Status == 0
}

// Transport is the port for the merchant backend. HTTP error statuses are
// ordinary outcomes, never errors.
type Transport interface {
	Get(ctx context.Context, url string, scope Scope) Outcome
	Post(ctx context.Context, url string, body any, scope Scope) Outcome
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelNotice:
		return "notice"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostics is the leveled event log keyed by actor and order.
type Diagnostics interface {
	Enabled() bool
	Log(ctx context.Context, level Level, scope Scope, msg string, args ...any)
}

// OrderStore is the port for the hosting shop's order records.
type OrderStore interface {
	GetOrder(ctx context.Context, number string) (*domain.Order, error)
	SetStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus) error
	MarkPaid(ctx context.Context, order *domain.Order, txnRef string) error
	AttachMetadata(ctx context.Context, order *domain.Order, key, value string) error
	Metadata(ctx context.Context, order *domain.Order, key string) (string, bool, error)
}

// Cart is the shopper's session cart.
type Cart interface {
	CurrentLines(ctx context.Context) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}
