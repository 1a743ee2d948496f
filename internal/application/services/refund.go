package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

// MetaRefundURL is the order metadata key holding the URL where the customer
// collects a granted refund.
const MetaRefundURL = "taler_refund_url"

type RefundResult struct {
	RefundURI string
	RefundURL string
	HContract string
	Phase     domain.Phase
}

// RefundService issues refunds on behalf of the shop administrator. Failures
// are returned as typed ServiceErrors; the caller decides what to tell the
// customer.
type RefundService struct {
	orders    application.OrderStore
	transport application.Transport
	endpoints protocol.Endpoints
	diag      application.Diagnostics
}

func NewRefundService(
	orders application.OrderStore,
	transport application.Transport,
	endpoints protocol.Endpoints,
	diag application.Diagnostics,
) *RefundService {
	return &RefundService{
		orders:    orders,
		transport: transport,
		endpoints: endpoints,
		diag:      diag,
	}
}

func (s *RefundService) Refund(ctx context.Context, cmd RefundCommand) (*RefundResult, error) {
	order, err := s.orders.GetOrder(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}

	scope := application.Scope{Actor: actorOr(cmd.Actor, ActorAdmin), OrderID: order.ExternalID()}
	s.diag.Log(ctx, application.LevelInfo, scope, "Refund requested", "amount", cmd.Amount.String(), "reason", cmd.Reason)

	if !order.Status.Refundable() {
		s.diag.Log(ctx, application.LevelError, scope, "The status of the order does not allow a refund", "status", order.Status)
		return nil, application.NewNotRefundableError(string(order.Status))
	}

	amount, err := domain.NewAmount(order.Currency, cmd.Amount)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	lifecycle := domain.NewLifecycle(domain.PhasePaid)
	if err := lifecycle.Advance(domain.PhaseRefundRequested); err != nil {
		return nil, application.NewInternalError(err)
	}

	outcome := s.transport.Post(ctx, s.endpoints.Refund(order.ExternalID()), protocol.RefundRequest{
		Refund: amount.String(),
		Reason: cmd.Reason,
	}, scope)

	if outcome.Status != http.StatusOK {
		svcErr := classifyRefundFailure(outcome)
		_ = lifecycle.Advance(domain.PhaseRefundDenied)
		s.diag.Log(ctx, application.LevelError, scope, svcErr.Message,
			"status", outcome.Status, "backend_code", svcErr.BackendCode, "body", bodyExcerpt(outcome))
		return nil, svcErr
	}

	resp, err := protocol.Decode[protocol.RefundResponse](outcome.Body, protocol.SchemaRefund)
	if err != nil {
		_ = lifecycle.Advance(domain.PhaseRefundDenied)
		s.diag.Log(ctx, application.LevelError, scope, "Malformed 200 response from Taler backend", "error", err)
		return nil, application.NewMalformedResponseError(outcome.Status, err)
	}

	refundURL := s.endpoints.RefundURL(order.ExternalID(), resp.HContract)
	if err := s.recordGrant(ctx, order, refundURL); err != nil {
		s.diag.Log(ctx, application.LevelError, scope, "Refund granted by Taler backend but not recorded on the order",
			"refund_url", refundURL, "refund_uri", resp.TalerRefundURI, "h_contract", resp.HContract, "error", err)
		return nil, application.NewInternalError(fmt.Errorf("refund granted (%s) but not recorded: %w", refundURL, err))
	}
	if err := lifecycle.Advance(domain.PhaseRefunded); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.diag.Log(ctx, application.LevelDebug, scope, fmt.Sprintf("Received refund URI %s from Taler backend", resp.TalerRefundURI))
	s.diag.Log(ctx, application.LevelNotice, scope, fmt.Sprintf("The user must visit %s to obtain the refund", refundURL))

	return &RefundResult{
		RefundURI: resp.TalerRefundURI,
		RefundURL: refundURL,
		HContract: resp.HContract,
		Phase:     lifecycle.Phase(),
	}, nil
}

func (s *RefundService) recordGrant(ctx context.Context, order *domain.Order, refundURL string) error {
	if err := s.orders.AttachMetadata(ctx, order, MetaRefundURL, refundURL); err != nil {
		return err
	}
	return s.orders.SetStatus(ctx, order, domain.OrderRefunded)
}

// RefundNotice is the text sent to the customer once a refund was granted.
func (s *RefundService) RefundNotice(ctx context.Context, orderNumber string) (string, error) {
	order, err := s.orders.GetOrder(ctx, orderNumber)
	if err != nil {
		return "", err
	}
	refundURL, ok, err := s.orders.Metadata(ctx, order, MetaRefundURL)
	if err != nil {
		return "", application.NewInternalError(err)
	}
	if !ok {
		return "", nil
	}
	return fmt.Sprintf("Refund granted. Visit %s to obtain the refund.", refundURL), nil
}

func classifyRefundFailure(outcome application.Outcome) *application.ServiceError {
	switch outcome.Status {
	case 0:
		return application.NewTransportFailureError(string(outcome.Body))
	case http.StatusForbidden:
		return application.NewRefundsDisabledError()
	case http.StatusNotFound:
		resp, ok := protocol.DecodeError(outcome.Body)
		if !ok {
			return application.NewRefundNotFoundError()
		}
		switch resp.Code {
		case protocol.ECInstanceUnknown:
			return application.NewRefundInstanceUnknownError()
		case protocol.ECRefundOrderIDUnknown:
			return application.NewRefundOrderUnknownError()
		default:
			return application.NewRefundUnexpectedCodeError(resp.Code)
		}
	case http.StatusConflict:
		return application.NewRefundAmountExceededError()
	case http.StatusGone:
		return application.NewRefundWireTransferredError()
	default:
		return application.NewBackendError(outcome.Status, backendCode(outcome))
	}
}
