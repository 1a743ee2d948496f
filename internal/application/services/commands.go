package services

import "github.com/shopspring/decimal"

type CheckoutCommand struct {
	OrderNumber string
	Actor       string
}

// CallbackCommand is the untrusted input of a fulfillment callback.
// HasOrderID distinguishes an absent order_id from an empty one.
type CallbackCommand struct {
	OrderID       string
	HasOrderID    bool
	Authenticated bool
	Actor         string
}

type RefundCommand struct {
	OrderNumber string
	Amount      decimal.Decimal
	Reason      string
	Actor       string
}

// ShopSettings are the hosting shop's URLs and display texts.
type ShopSettings struct {
	HomeURL         string
	GatewayID       string
	OrderSummary    string
	RefundDelayDays int
	AccountPath     string
	ShopPath        string
	CartPath        string
	ReturnPath      string
}
