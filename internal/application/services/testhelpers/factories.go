package testhelpers

import (
	"testing"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	BackendBaseURL = "https://backend.example/instances/shop"
	DefaultKey     = "wc_order_Ab12"
)

type OrderOption func(*domain.Order)

func WithStatus(status domain.OrderStatus) OrderOption {
	return func(o *domain.Order) { o.Status = status }
}

func WithCurrency(currency string) OrderOption {
	return func(o *domain.Order) { o.Currency = currency }
}

func WithTotal(total string) OrderOption {
	return func(o *domain.Order) { o.Total = decimal.RequireFromString(total) }
}

func WithShipping(a domain.Address) OrderOption {
	return func(o *domain.Order) { o.Shipping = a }
}

// NewOrder returns a pending KUDOS order with a shipping address.
func NewOrder(number string, opts ...OrderOption) *domain.Order {
	o := &domain.Order{
		Number:   number,
		Key:      DefaultKey,
		Status:   domain.OrderPending,
		Currency: "KUDOS",
		Total:    decimal.RequireFromString("12.50"),
		Shipping: domain.Address{
			Country:  "DE",
			State:    "BE",
			City:     "Berlin",
			Postcode: "10115",
			Line1:    "Invalidenstrasse 117",
		},
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultCart is two lines adding up to the default order total.
func DefaultCart() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: "101", Title: "Tea", Quantity: 2, UnitPrice: decimal.RequireFromString("2.25")},
		{ProductID: "102", Title: "Mug", Quantity: 1, UnitPrice: decimal.RequireFromString("8")},
	}
}

func DefaultShop() services.ShopSettings {
	return services.ShopSettings{
		HomeURL:         "https://shop.example",
		GatewayID:       "taler",
		OrderSummary:    "Taler Shop #%s",
		RefundDelayDays: 14,
		AccountPath:     "/my-account/",
		ShopPath:        "/shop/",
		CartPath:        "/cart/",
		ReturnPath:      "/checkout/order-received/",
	}
}

func Endpoints(t *testing.T) protocol.Endpoints {
	t.Helper()
	backend, err := domain.NewBackendEndpoint(BackendBaseURL, "secret-token:sandbox")
	require.NoError(t, err)
	return protocol.NewEndpoints(backend)
}

func Outcome(status int, body string) application.Outcome {
	return application.Outcome{Status: status, Body: []byte(body)}
}

// ConfigOutcome is a /config reply advertising version and currency.
func ConfigOutcome(version, currency string) application.Outcome {
	return Outcome(200, `{"version":"`+version+`","currency":"`+currency+`","name":"taler-merchant"}`)
}
