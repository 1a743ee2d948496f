package services

import (
	"context"
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

type CheckoutResult struct {
	RedirectURL    string
	BackendOrderID string
	Phase          domain.Phase
}

// CheckoutService creates the backend order for a shop order. Every call is
// single-shot: a failure cancels the shop order and is never retried.
type CheckoutService struct {
	orders     application.OrderStore
	transport  application.Transport
	negotiator *Negotiator
	builder    *ContractBuilder
	endpoints  protocol.Endpoints
	diag       application.Diagnostics
}

func NewCheckoutService(
	orders application.OrderStore,
	transport application.Transport,
	negotiator *Negotiator,
	builder *ContractBuilder,
	endpoints protocol.Endpoints,
	diag application.Diagnostics,
) *CheckoutService {
	return &CheckoutService{
		orders:     orders,
		transport:  transport,
		negotiator: negotiator,
		builder:    builder,
		endpoints:  endpoints,
		diag:       diag,
	}
}

// SubmitOrder gates on the backend's version and currency, posts the contract
// and returns where to send the shopper to pay.
func (s *CheckoutService) SubmitOrder(ctx context.Context, cmd CheckoutCommand, cart application.Cart) (*CheckoutResult, error) {
	order, err := s.orders.GetOrder(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}

	scope := application.Scope{Actor: actorOr(cmd.Actor, ActorGuest), OrderID: order.ExternalID()}
	lifecycle := domain.NewLifecycle(domain.PhaseCreated)

	s.diag.Log(ctx, application.LevelInfo, scope, "User started the payment process with GNU Taler.")

	if !order.Status.Payable() {
		s.diag.Log(ctx, application.LevelError, scope, "The status of the order does not allow a payment", "status", order.Status)
		return nil, application.NewNotPayableError(string(order.Status))
	}

	if err := s.negotiator.Negotiate(ctx, scope, order.Currency); err != nil {
		s.diag.Log(ctx, application.LevelError, scope, "Checkout process failed: Invalid backend url.")
		return nil, err
	}

	lines, err := cart.CurrentLines(ctx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	contract, err := s.builder.Build(order, lines)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	s.diag.Log(ctx, application.LevelInfo, scope, "Sending POST /private/orders request to Taler backend")
	outcome := s.transport.Post(ctx, s.endpoints.PrivateOrders(), contract, scope)

	switch {
	case outcome.Status == http.StatusOK:
		resp, err := protocol.Decode[protocol.PostOrderResponse](outcome.Body, protocol.SchemaPostOrder)
		if err != nil {
			return nil, s.fail(ctx, scope, order, lifecycle, outcome, application.NewMalformedResponseError(outcome.Status, err))
		}
		if err := lifecycle.Advance(domain.PhaseAwaitingConfirmation); err != nil {
			return nil, application.NewInternalError(err)
		}
		s.diag.Log(ctx, application.LevelInfo, scope, "POST /private/orders successful. Redirecting user to Taler Backend.")
		return &CheckoutResult{
			RedirectURL:    s.endpoints.PaymentURL(resp.OrderID, resp.Token),
			BackendOrderID: resp.OrderID,
			Phase:          lifecycle.Phase(),
		}, nil

	case outcome.Status == http.StatusNotFound:
		if resp, ok := protocol.DecodeError(outcome.Body); ok {
			return nil, s.fail(ctx, scope, order, lifecycle, outcome, application.NewBackendMisconfiguredError(outcome.Status, resp.Code))
		}
		return nil, s.fail(ctx, scope, order, lifecycle, outcome, application.NewMalformedResponseError(outcome.Status, protocol.ErrNotJSON))

	case outcome.TransportFailed():
		return nil, s.fail(ctx, scope, order, lifecycle, outcome, application.NewTransportFailureError(string(outcome.Body)))

	default:
		return nil, s.fail(ctx, scope, order, lifecycle, outcome, application.NewBackendError(outcome.Status, backendCode(outcome)))
	}
}

// fail records the technical detail, cancels the shop order and returns the
// error whose UserMessage is safe to show the shopper.
func (s *CheckoutService) fail(
	ctx context.Context,
	scope application.Scope,
	order *domain.Order,
	lifecycle *domain.Lifecycle,
	outcome application.Outcome,
	svcErr *application.ServiceError,
) error {
	_ = lifecycle.Advance(domain.PhaseErrored)

	s.diag.Log(ctx, application.LevelError, scope, "POST /private/orders request to Taler backend failed: "+svcErr.Error(),
		"status", outcome.Status, "backend_code", svcErr.BackendCode, "body", bodyExcerpt(outcome))

	if err := s.orders.SetStatus(ctx, order, domain.OrderCancelled); err != nil {
		s.diag.Log(ctx, application.LevelError, scope, "Could not cancel order after failed checkout", "error", err)
	}
	return svcErr
}
