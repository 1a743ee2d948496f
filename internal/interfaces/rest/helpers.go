package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/go-playground/validator"
)

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type CheckoutResponse struct {
	Redirect       string `json:"redirect" example:"https://backend.example/orders/wc_order_Ab12-42?token=tkn"`
	BackendOrderID string `json:"backend_order_id" example:"wc_order_Ab12-42"`
	Phase          string `json:"phase" example:"AWAITING_CONFIRMATION"`
}

type RefundResponse struct {
	RefundURI string `json:"refund_uri" example:"taler://refund/backend.example/wc_order_Ab12-42/"`
	RefundURL string `json:"refund_url" example:"https://backend.example/orders/wc_order_Ab12-42?h_contract=HC"`
	HContract string `json:"h_contract"`
	Phase     string `json:"phase" example:"REFUNDED"`
}

type SetupStatusResponse struct {
	NeedsSetup bool `json:"needs_setup"`
}

type ShippingAddress struct {
	Country  string  `json:"country"`
	State    string  `json:"state"`
	City     string  `json:"city"`
	Postcode string  `json:"postcode"`
	Line1    string  `json:"line1"`
	Line2    *string `json:"line2,omitempty"`
}

type OrderResponse struct {
	Number         string          `json:"number" example:"42"`
	ExternalID     string          `json:"external_id" example:"wc_order_Ab12-42"`
	Status         string          `json:"status" example:"processing"`
	Currency       string          `json:"currency" example:"KUDOS"`
	Total          string          `json:"total" example:"12.50"`
	Shipping       ShippingAddress `json:"shipping"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	TransactionURL string          `json:"transaction_url"`
	RefundURL      string          `json:"refund_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToCheckoutResponse(r *services.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Redirect:       r.RedirectURL,
		BackendOrderID: r.BackendOrderID,
		Phase:          string(r.Phase),
	}
}

func ToRefundResponse(r *services.RefundResult) RefundResponse {
	return RefundResponse{
		RefundURI: r.RefundURI,
		RefundURL: r.RefundURL,
		HContract: r.HContract,
		Phase:     string(r.Phase),
	}
}

func ToOrderResponse(v *services.OrderView) OrderResponse {
	o := v.Order
	resp := OrderResponse{
		Number:         o.Number,
		ExternalID:     v.ExternalID,
		Status:         string(o.Status),
		Currency:       o.Currency,
		Total:          o.Total.String(),
		TransactionURL: v.TransactionURL,
		RefundURL:      v.RefundURL,
		CreatedAt:      o.CreatedAt,
		Shipping: ShippingAddress{
			Country:  o.Shipping.Country,
			State:    o.Shipping.State,
			City:     o.Shipping.City,
			Postcode: o.Shipping.Postcode,
			Line1:    o.Shipping.Line1,
			Line2:    o.Shipping.Line2,
		},
	}
	if o.TransactionRef != nil {
		resp.TransactionRef = *o.TransactionRef
	}
	return resp
}

// DecodeJSON reads a JSON body into dst and validates its struct tags.
func DecodeJSON(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
