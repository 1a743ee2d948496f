// Package protocol holds the merchant backend wire format: request and reply
// bodies, endpoint URLs and the schemas replies are validated against.
package protocol

// ConfigResponse is the reply to GET /config.
type ConfigResponse struct {
	Version  string `json:"version"`
	Currency string `json:"currency,omitempty"`
}

type PostOrderRequest struct {
	Order       Contract  `json:"order"`
	RefundDelay *Duration `json:"refund_delay,omitempty"`
}

// Contract is the order proposal the backend turns into a contract.
type Contract struct {
	Amount           string           `json:"amount"`
	Summary          string           `json:"summary"`
	FulfillmentURL   string           `json:"fulfillment_url"`
	OrderID          string           `json:"order_id"`
	Products         []Product        `json:"products"`
	DeliveryLocation DeliveryLocation `json:"delivery_location"`
}

type Product struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	ProductID   string `json:"product_id"`
}

type DeliveryLocation struct {
	Country            string   `json:"country"`
	CountrySubdivision string   `json:"country_subdivision"`
	Town               string   `json:"town"`
	PostCode           string   `json:"post_code"`
	Street             string   `json:"street"`
	BuildingNumber     string   `json:"building_number"`
	AddressLines       []string `json:"address_lines,omitempty"`
}

// Duration is the backend's relative time, in milliseconds.
type Duration struct {
	Milliseconds int64 `json:"d_ms"`
}

type PostOrderResponse struct {
	OrderID string `json:"order_id"`
	Token   string `json:"token"`
}

// OrderStatusResponse is the reply to GET /private/orders/{id}.
type OrderStatusResponse struct {
	OrderStatus string `json:"order_status"`
}

const OrderStatusPaid = "paid"

type RefundRequest struct {
	Refund string `json:"refund"`
	Reason string `json:"reason"`
}

type RefundResponse struct {
	TalerRefundURI string `json:"taler_refund_uri"`
	HContract      string `json:"h_contract"`
}

// ErrorResponse is the body the backend attaches to non-200 replies.
type ErrorResponse struct {
	Code int    `json:"code"`
	Hint string `json:"hint,omitempty"`
}

// Backend error codes with a dedicated meaning for refunds.
const (
	ECInstanceUnknown      = 2000
	ECRefundOrderIDUnknown = 2601
)
