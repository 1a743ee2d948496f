package services

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

const millisPerDay = 24 * 60 * 60 * 1000

// ContractBuilder turns a shop order and its cart into the backend's order
// creation request. It performs no I/O.
type ContractBuilder struct {
	homeURL         string
	gatewayID       string
	summary         string
	refundDelayDays int
}

func NewContractBuilder(shop ShopSettings) *ContractBuilder {
	return &ContractBuilder{
		homeURL:         strings.TrimRight(shop.HomeURL, "/"),
		gatewayID:       shop.GatewayID,
		summary:         shop.OrderSummary,
		refundDelayDays: shop.RefundDelayDays,
	}
}

func (b *ContractBuilder) Build(order *domain.Order, lines []domain.CartLine) (protocol.PostOrderRequest, error) {
	if order.Number == "" || order.Key == "" {
		return protocol.PostOrderRequest{}, domain.NewMissingRequiredFieldError("order number and key")
	}
	total, err := order.TotalAmount()
	if err != nil {
		return protocol.PostOrderRequest{}, err
	}

	products := make([]protocol.Product, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return protocol.PostOrderRequest{}, domain.NewInvalidAmountError("quantity of " + line.Title + " must be positive")
		}
		price, err := domain.NewAmount(order.Currency, line.UnitPrice)
		if err != nil {
			return protocol.PostOrderRequest{}, err
		}
		products = append(products, protocol.Product{
			Description: line.Title,
			Quantity:    line.Quantity,
			Price:       price.String(),
			ProductID:   line.ProductID,
		})
	}

	req := protocol.PostOrderRequest{
		Order: protocol.Contract{
			Amount:           total.String(),
			Summary:          strings.Replace(b.summary, "%s", order.Number, 1),
			FulfillmentURL:   b.FulfillmentURL(order),
			OrderID:          order.ExternalID(),
			Products:         products,
			DeliveryLocation: deliveryLocation(order.Shipping),
		},
	}
	if b.refundDelayDays > 0 {
		req.RefundDelay = &protocol.Duration{Milliseconds: int64(b.refundDelayDays) * millisPerDay}
	}
	return req, nil
}

// FulfillmentURL is the callback the shopper's browser returns to after
// paying. It carries the composite order identifier.
func (b *ContractBuilder) FulfillmentURL(order *domain.Order) string {
	query := url.Values{
		"callback": {b.gatewayID},
		"order_id": {order.ExternalID()},
	}
	return b.homeURL + "/?" + query.Encode()
}

func deliveryLocation(a domain.Address) protocol.DeliveryLocation {
	street, number := SplitStreet(a.Line1)
	loc := protocol.DeliveryLocation{
		Country:            a.Country,
		CountrySubdivision: a.State,
		Town:               a.City,
		PostCode:           a.Postcode,
		Street:             street,
		BuildingNumber:     number,
	}
	if a.Line2 != nil {
		loc.AddressLines = []string{a.Line1, *a.Line2}
	}
	return loc
}

// SplitStreet separates a trailing building number from a single address
// line. The last whitespace-separated token is the number only if it holds a
// digit; otherwise the whole line is the street. Formats with the number
// first ("12 Main St") keep it in the street.
func SplitStreet(line string) (street, number string) {
	trimmed := strings.TrimSpace(line)

	i := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return trimmed, ""
	}
	_, size := utf8.DecodeRuneInString(trimmed[i:])
	tail := trimmed[i+size:]

	if !strings.ContainsFunc(tail, unicode.IsDigit) {
		return trimmed, ""
	}
	return strings.TrimRightFunc(trimmed[:i], unicode.IsSpace), tail
}
