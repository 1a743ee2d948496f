package services

import (
	"context"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

type OrderView struct {
	Order          *domain.Order
	ExternalID     string
	TransactionURL string
	RefundURL      string
}

type QueryService struct {
	orders    application.OrderStore
	endpoints protocol.Endpoints
}

func NewQueryService(orders application.OrderStore, endpoints protocol.Endpoints) *QueryService {
	return &QueryService{
		orders:    orders,
		endpoints: endpoints,
	}
}

// GetOrder returns the order with the backend links an operator needs.
func (s *QueryService) GetOrder(ctx context.Context, number string) (*OrderView, error) {
	order, err := s.orders.GetOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	view := &OrderView{
		Order:          order,
		ExternalID:     order.ExternalID(),
		TransactionURL: s.endpoints.TransactionURL(order.ExternalID()),
	}

	refundURL, ok, err := s.orders.Metadata(ctx, order, MetaRefundURL)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if ok {
		view.RefundURL = refundURL
	}
	return view, nil
}
