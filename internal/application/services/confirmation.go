package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

// Shopper-facing notices of the fulfillment callback.
const (
	NoticeBackendSilent = "Payment error: backend did not respond"
	NoticeNotConfirmed  = "Payment error: backend did not confirm payment"
	NoticePaymentFailed = "Payment error: the payment could not be verified"
	NoticeUnknownOrder  = "Payment error: unknown order"
)

type CallbackResult struct {
	RedirectURL    string
	Notice         string
	Paid           bool
	TransactionURL string
	Phase          domain.Phase
}

// ConfirmationService handles the fulfillment callback: it asks the backend
// whether the order was paid and settles the shop order accordingly.
type ConfirmationService struct {
	orders    application.OrderStore
	transport application.Transport
	endpoints protocol.Endpoints
	shop      ShopSettings
	diag      application.Diagnostics
}

func NewConfirmationService(
	orders application.OrderStore,
	transport application.Transport,
	endpoints protocol.Endpoints,
	shop ShopSettings,
	diag application.Diagnostics,
) *ConfirmationService {
	shop.HomeURL = strings.TrimRight(shop.HomeURL, "/")
	return &ConfirmationService{
		orders:    orders,
		transport: transport,
		endpoints: endpoints,
		shop:      shop,
		diag:      diag,
	}
}

// CheckPayment always yields a redirect; failures surface as a Notice.
func (s *ConfirmationService) CheckPayment(ctx context.Context, cmd CallbackCommand, cart application.Cart) *CallbackResult {
	scope := application.Scope{Actor: actorOr(cmd.Actor, ActorGuest), OrderID: cmd.OrderID}

	if !cmd.HasOrderID {
		s.diag.Log(ctx, application.LevelDebug, scope, "Lacking 'order_id', forwarding user to neutral page")
		return &CallbackResult{RedirectURL: s.neutralURL(cmd.Authenticated)}
	}

	id, err := domain.ParseExternalOrderID(cmd.OrderID)
	if err != nil {
		s.diag.Log(ctx, application.LevelWarning, scope, "Rejected malformed order identifier in callback", "error", err)
		return &CallbackResult{RedirectURL: s.neutralURL(cmd.Authenticated), Notice: NoticeUnknownOrder}
	}

	order, err := s.orders.GetOrder(ctx, id.Number)
	if err != nil || order.Key != id.Key {
		if err == nil {
			err = domain.NewOrderNotFoundError(id.Number)
		}
		s.diag.Log(ctx, application.LevelWarning, scope, "Callback names an order this shop does not know", "error", err)
		return &CallbackResult{RedirectURL: s.neutralURL(cmd.Authenticated), Notice: NoticeUnknownOrder}
	}

	lifecycle := domain.NewLifecycle(domain.PhaseAwaitingConfirmation)
	result := &CallbackResult{RedirectURL: s.returnURL(order)}

	outcome := s.transport.Get(ctx, s.endpoints.PrivateOrder(id.String()), scope)
	if outcome.Status != http.StatusOK {
		s.diag.Log(ctx, application.LevelError, scope, "An error occurred during the second request to the Taler backend",
			"status", outcome.Status, "body", bodyExcerpt(outcome))
		result.Notice = NoticePaymentFailed
		return s.settle(result, lifecycle, domain.PhaseErrored)
	}

	status, err := protocol.Decode[protocol.OrderStatusResponse](outcome.Body, protocol.SchemaOrderStatus)
	switch {
	case errors.Is(err, protocol.ErrNotJSON):
		s.diag.Log(ctx, application.LevelNotice, scope, "Payment failed: no reply from Taler backend")
		result.Notice = NoticeBackendSilent
		return s.settle(result, lifecycle, domain.PhaseErrored)

	case err != nil:
		s.diag.Log(ctx, application.LevelError, scope, "Malformed order status from Taler backend", "error", err)
		result.Notice = NoticeNotConfirmed
		return s.settle(result, lifecycle, domain.PhaseRejected)

	case status.OrderStatus != protocol.OrderStatusPaid:
		s.diag.Log(ctx, application.LevelNotice, scope, "Backend did not confirm payment", "order_status", status.OrderStatus)
		result.Notice = NoticeNotConfirmed
		return s.settle(result, lifecycle, domain.PhaseRejected)
	}

	if err := s.orders.MarkPaid(ctx, order, id.String()); err != nil {
		s.diag.Log(ctx, application.LevelError, scope, "Could not mark order paid", "error", err)
		result.Notice = NoticePaymentFailed
		return s.settle(result, lifecycle, domain.PhaseErrored)
	}
	if err := cart.Clear(ctx); err != nil {
		s.diag.Log(ctx, application.LevelWarning, scope, "Could not empty the cart", "error", err)
	}

	s.diag.Log(ctx, application.LevelNotice, scope, "Payment succeeded and the user was forwarded to the order confirmed page")
	result.Paid = true
	result.TransactionURL = s.endpoints.TransactionURL(id.String())
	return s.settle(result, lifecycle, domain.PhasePaid)
}

func (s *ConfirmationService) settle(result *CallbackResult, lifecycle *domain.Lifecycle, phase domain.Phase) *CallbackResult {
	_ = lifecycle.Advance(phase)
	result.Phase = lifecycle.Phase()
	return result
}

// neutralURL is the landing page for callbacks that name no usable order.
func (s *ConfirmationService) neutralURL(authenticated bool) string {
	if authenticated && s.shop.AccountPath != "" {
		return s.shop.HomeURL + s.shop.AccountPath
	}
	return s.shopURL()
}

// returnURL falls back from the order's return page to the cart, then the shop.
func (s *ConfirmationService) returnURL(order *domain.Order) string {
	if s.shop.ReturnPath != "" {
		return s.shop.HomeURL + strings.TrimRight(s.shop.ReturnPath, "/") + "/" +
			url.PathEscape(order.Number) + "/?key=" + url.QueryEscape(order.Key)
	}
	if s.shop.CartPath != "" {
		return s.shop.HomeURL + s.shop.CartPath
	}
	return s.shopURL()
}

func (s *ConfirmationService) shopURL() string {
	if s.shop.ShopPath != "" {
		return s.shop.HomeURL + s.shop.ShopPath
	}
	return s.shop.HomeURL + "/"
}
