// Package domain encodes the shop order as seen by the merchant protocol client
package domain

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the status of the order record owned by the hosting shop.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderOnHold     OrderStatus = "on-hold"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
	OrderFailed     OrderStatus = "failed"
)

// Refundable reports whether a refund may be requested for an order in this status.
func (s OrderStatus) Refundable() bool {
	return slices.Contains([]OrderStatus{OrderProcessing, OrderOnHold, OrderCompleted}, s)
}

// Payable reports whether an order in this status may be sent to the backend
// for payment. Paid and refunded orders never are.
func (s OrderStatus) Payable() bool {
	return slices.Contains([]OrderStatus{OrderPending, OrderFailed, OrderCancelled}, s)
}

// Address is the shipping address as the shop stores it.
type Address struct {
	Country  string
	State    string
	City     string
	Postcode string
	Line1    string
	Line2    *string
}

type Order struct {
	Number         string
	Key            string
	Status         OrderStatus
	Currency       string
	Total          decimal.Decimal
	Shipping       Address
	TransactionRef *string
	CreatedAt      time.Time
}

// ExternalID is the composite identifier shared with the backend and echoed
// back through the fulfillment callback.
func (o *Order) ExternalID() string {
	return ExternalOrderID{Key: o.Key, Number: o.Number}.String()
}

// TotalAmount returns the order total tagged with the order's currency.
func (o *Order) TotalAmount() (Amount, error) {
	return NewAmount(o.Currency, o.Total)
}

// CartLine is one line of the shopper's cart at checkout time.
type CartLine struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

var orderKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ExternalOrderID is the parsed form of "<key>-<number>".
type ExternalOrderID struct {
	Key    string
	Number string
}

// ParseExternalOrderID validates untrusted callback input. It must split on
// '-' into exactly two parts: a key of letters, digits and underscores, and a
// decimal order number.
func ParseExternalOrderID(raw string) (ExternalOrderID, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return ExternalOrderID{}, NewInvalidOrderIDError(raw)
	}
	key, number := parts[0], parts[1]
	if !orderKeyPattern.MatchString(key) {
		return ExternalOrderID{}, NewInvalidOrderIDError(raw)
	}
	if _, err := strconv.ParseUint(number, 10, 63); err != nil {
		return ExternalOrderID{}, NewInvalidOrderIDError(raw)
	}
	return ExternalOrderID{Key: key, Number: number}, nil
}

func (id ExternalOrderID) String() string {
	return id.Key + "-" + id.Number
}
