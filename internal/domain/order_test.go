package domain_test

import (
	"testing"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("parses currency and value", func(t *testing.T) {
		a, err := domain.ParseAmount("KUDOS:10.50")

		require.NoError(t, err)
		assert.Equal(t, "KUDOS", a.Currency)
		assert.True(t, a.Value.Equal(decimal.RequireFromString("10.5")))
		assert.Equal(t, "KUDOS:10.5", a.String())
	})

	t.Run("round trips through String", func(t *testing.T) {
		original, err := domain.NewAmount("EUR", decimal.RequireFromString("0.00000001"))
		require.NoError(t, err)

		parsed, err := domain.ParseAmount(original.String())

		require.NoError(t, err)
		assert.True(t, original.Equal(parsed))
	})

	invalid := map[string]string{
		"missing currency":    "10.00",
		"empty currency":      ":10",
		"non-letter currency": "EU1:10",
		"negative":            "EUR:-1",
		"too precise":         "EUR:0.000000001",
		"not a number":        "EUR:ten",
		"currency too long":   "ABCDEFGHIJKL:1",
		"empty value":         "EUR:",
	}
	for name, raw := range invalid {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := domain.ParseAmount(raw)

			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		})
	}
}

func TestParseExternalOrderID(t *testing.T) {
	t.Run("splits key and number", func(t *testing.T) {
		id, err := domain.ParseExternalOrderID("wc_order_abc123-42")

		require.NoError(t, err)
		assert.Equal(t, "wc_order_abc123", id.Key)
		assert.Equal(t, "42", id.Number)
		assert.Equal(t, "wc_order_abc123-42", id.String())
	})

	for _, raw := range []string{"", "abc", "abc-", "-42", "a-b-42", "abc-4x", "ab/c-42", "abc-+42"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := domain.ParseExternalOrderID(raw)

			assert.ErrorIs(t, err, domain.ErrInvalidOrderID)
		})
	}
}

func TestOrder_ExternalID(t *testing.T) {
	order := &domain.Order{Number: "17", Key: "wc_order_k"}

	assert.Equal(t, "wc_order_k-17", order.ExternalID())
}

func TestOrder_TotalAmount(t *testing.T) {
	order := &domain.Order{Currency: "KUDOS", Total: decimal.RequireFromString("3.20")}

	a, err := order.TotalAmount()

	require.NoError(t, err)
	assert.Equal(t, "KUDOS:3.2", a.String())
}

func TestOrderStatus_Refundable(t *testing.T) {
	tests := []struct {
		status domain.OrderStatus
		want   bool
	}{
		{domain.OrderPending, false},
		{domain.OrderProcessing, true},
		{domain.OrderOnHold, true},
		{domain.OrderCompleted, true},
		{domain.OrderCancelled, false},
		{domain.OrderRefunded, false},
		{domain.OrderFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Refundable())
		})
	}
}

func TestOrderStatus_Payable(t *testing.T) {
	tests := []struct {
		status domain.OrderStatus
		want   bool
	}{
		{domain.OrderPending, true},
		{domain.OrderFailed, true},
		{domain.OrderCancelled, true},
		{domain.OrderProcessing, false},
		{domain.OrderOnHold, false},
		{domain.OrderCompleted, false},
		{domain.OrderRefunded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Payable())
		})
	}
}

func TestNewBackendEndpoint(t *testing.T) {
	t.Run("strips trailing slashes", func(t *testing.T) {
		e, err := domain.NewBackendEndpoint("https://backend.example/instances/shop///", "secret-token:abc")

		require.NoError(t, err)
		assert.Equal(t, "https://backend.example/instances/shop", e.BaseURL())
		assert.Equal(t, "secret-token:abc", e.APIKey())
	})

	for _, raw := range []string{"", "backend.example", "ftp://backend.example", "https://"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := domain.NewBackendEndpoint(raw, "")

			assert.ErrorIs(t, err, domain.ErrInvalidEndpoint)
		})
	}
}
