package postgres

import (
	"time"
)

// OrderModel is a row of the orders table. Amounts travel as text so that
// NUMERIC values keep every digit.
type OrderModel struct {
	Number           int64
	OrderKey         string
	Status           string
	Currency         string
	Total            string
	ShippingCountry  string
	ShippingState    string
	ShippingCity     string
	ShippingPostcode string
	ShippingLine1    string
	ShippingLine2    *string
	TransactionRef   *string
	CreatedAt        time.Time
}

type CartLineModel struct {
	SessionID string
	ProductID string
	Title     string
	Quantity  int
	UnitPrice string
}
