package protocol

import (
	"net/url"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
)

// Endpoints builds backend URLs from the configured base. Order identifiers
// are path-escaped since they can originate from callback input.
type Endpoints struct {
	base string
}

func NewEndpoints(endpoint domain.BackendEndpoint) Endpoints {
	return Endpoints{base: endpoint.BaseURL()}
}

func (e Endpoints) Base() string {
	return e.base
}

func (e Endpoints) Config() string {
	return e.base + "/config"
}

func (e Endpoints) PrivateOrders() string {
	return e.base + "/private/orders"
}

func (e Endpoints) PrivateOrder(orderID string) string {
	return e.PrivateOrders() + "/" + url.PathEscape(orderID)
}

func (e Endpoints) Refund(orderID string) string {
	return e.PrivateOrder(orderID) + "/refund"
}

// TransactionURL is the public order page, used as the shop's transaction link.
func (e Endpoints) TransactionURL(orderID string) string {
	return e.base + "/orders/" + url.PathEscape(orderID)
}

// PaymentURL is where the shopper is sent to pay for a freshly created order.
func (e Endpoints) PaymentURL(orderID, token string) string {
	return e.TransactionURL(orderID) + "?token=" + url.QueryEscape(token)
}

// RefundURL is where the customer collects a granted refund.
func (e Endpoints) RefundURL(orderID, hContract string) string {
	return e.TransactionURL(orderID) + "?h_contract=" + url.QueryEscape(hContract)
}
