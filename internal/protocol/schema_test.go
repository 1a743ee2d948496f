package protocol_test

import (
	"testing"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("decodes a valid config reply", func(t *testing.T) {
		cfg, err := protocol.Decode[protocol.ConfigResponse]([]byte(`{"version":"1:0:0","currency":"KUDOS","name":"taler-merchant"}`), protocol.SchemaConfig)

		require.NoError(t, err)
		assert.Equal(t, "1:0:0", cfg.Version)
		assert.Equal(t, "KUDOS", cfg.Currency)
	})

	t.Run("rejects a body that is not JSON", func(t *testing.T) {
		_, err := protocol.Decode[protocol.ConfigResponse]([]byte(`<html>oops</html>`), protocol.SchemaConfig)

		assert.ErrorIs(t, err, protocol.ErrNotJSON)
	})

	t.Run("treats JSON null as not JSON", func(t *testing.T) {
		_, err := protocol.Decode[protocol.ConfigResponse]([]byte(`null`), protocol.SchemaConfig)

		assert.ErrorIs(t, err, protocol.ErrNotJSON)
	})

	t.Run("reports a missing key", func(t *testing.T) {
		_, err := protocol.Decode[protocol.ConfigResponse]([]byte(`{"currency":"KUDOS"}`), protocol.SchemaConfig)

		var se *protocol.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, protocol.SchemaConfig, se.Schema)
		assert.Contains(t, se.Reason, "version")
	})

	t.Run("reports a key of the wrong type", func(t *testing.T) {
		_, err := protocol.Decode[protocol.ConfigResponse]([]byte(`{"version":100}`), protocol.SchemaConfig)

		var se *protocol.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "version", se.Field)
	})

	t.Run("post order reply needs both order_id and token", func(t *testing.T) {
		_, err := protocol.Decode[protocol.PostOrderResponse]([]byte(`{"order_id":"abc"}`), protocol.SchemaPostOrder)

		var se *protocol.SchemaError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("refund reply", func(t *testing.T) {
		resp, err := protocol.Decode[protocol.RefundResponse](
			[]byte(`{"taler_refund_uri":"taler://refund/x","h_contract":"HC"}`), protocol.SchemaRefund)

		require.NoError(t, err)
		assert.Equal(t, "HC", resp.HContract)
	})
}

func TestDecodeError(t *testing.T) {
	resp, ok := protocol.DecodeError([]byte(`{"code":2601,"hint":"order unknown"}`))
	require.True(t, ok)
	assert.Equal(t, protocol.ECRefundOrderIDUnknown, resp.Code)

	_, ok = protocol.DecodeError([]byte(`not found`))
	assert.False(t, ok)

	_, ok = protocol.DecodeError([]byte(`{"hint":"no code"}`))
	assert.False(t, ok)
}

func TestEndpoints(t *testing.T) {
	backend, err := domain.NewBackendEndpoint("https://backend.example/instances/shop/", "key")
	require.NoError(t, err)
	e := protocol.NewEndpoints(backend)

	assert.Equal(t, "https://backend.example/instances/shop/config", e.Config())
	assert.Equal(t, "https://backend.example/instances/shop/private/orders", e.PrivateOrders())
	assert.Equal(t, "https://backend.example/instances/shop/private/orders/wc_k-42", e.PrivateOrder("wc_k-42"))
	assert.Equal(t, "https://backend.example/instances/shop/private/orders/wc_k-42/refund", e.Refund("wc_k-42"))
	assert.Equal(t, "https://backend.example/instances/shop/orders/abc?token=tkn", e.PaymentURL("abc", "tkn"))
	assert.Equal(t, "https://backend.example/instances/shop/orders/wc_k-42?h_contract=HC", e.RefundURL("wc_k-42", "HC"))
	assert.Equal(t, "https://backend.example/instances/shop/orders/a%2Fb", e.TransactionURL("a/b"))
}
