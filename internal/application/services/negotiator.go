package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
)

// ClientVersion is the merchant protocol version this gateway implements.
var ClientVersion = domain.ClientVersion{Current: 1, Age: 0}

// Negotiator checks that the backend speaks a protocol version and currency
// this gateway can work with.
type Negotiator struct {
	transport application.Transport
	endpoints protocol.Endpoints
	client    domain.ClientVersion
	diag      application.Diagnostics
}

func NewNegotiator(
	transport application.Transport,
	endpoints protocol.Endpoints,
	diag application.Diagnostics,
) *Negotiator {
	return &Negotiator{
		transport: transport,
		endpoints: endpoints,
		client:    ClientVersion,
		diag:      diag,
	}
}

// Negotiate fetches /config and returns nil if the backend is usable. An
// empty currency skips the currency check. Every failure is a
// PROTOCOL_INCOMPATIBLE ServiceError.
func (n *Negotiator) Negotiate(ctx context.Context, scope application.Scope, currency string) error {
	outcome := n.transport.Get(ctx, n.endpoints.Config(), scope)
	if outcome.Status != http.StatusOK {
		n.diag.Log(ctx, application.LevelError, scope,
			"Backend failed /config request with unexpected HTTP status",
			"status", outcome.Status, "body", bodyExcerpt(outcome))

		var cause error
		if outcome.TransportFailed() {
			cause = application.NewTransportFailureError(string(outcome.Body))
		}
		return incompatible(fmt.Sprintf("/config returned HTTP status %d", outcome.Status), cause)
	}

	cfg, err := protocol.Decode[protocol.ConfigResponse](outcome.Body, protocol.SchemaConfig)
	if err != nil {
		if errors.Is(err, protocol.ErrNotJSON) {
			n.diag.Log(ctx, application.LevelError, scope,
				"/config response did not decode as JSON", "backend", n.endpoints.Base())
		} else {
			n.diag.Log(ctx, application.LevelError, scope,
				"Malformed /config reply from Taler backend", "backend", n.endpoints.Base(), "error", err)
		}
		return incompatible("malformed /config reply", err)
	}

	version, err := domain.ParseProtocolVersion(cfg.Version)
	if err != nil {
		n.diag.Log(ctx, application.LevelError, scope,
			fmt.Sprintf("/config response at backend malformed: '%s' is not a valid version", cfg.Version))
		return incompatible("malformed version", err)
	}

	switch version.CompatibilityWith(n.client) {
	case domain.ClientTooOld:
		n.diag.Log(ctx, application.LevelError, scope,
			fmt.Sprintf("Backend protocol version %s is too new: please update the gateway", version))
		return incompatible(fmt.Sprintf("backend version %s is too new", version), nil)
	case domain.BackendTooOld:
		n.diag.Log(ctx, application.LevelError, scope,
			fmt.Sprintf("Backend protocol version %s unsupported: please update the backend", version))
		return incompatible(fmt.Sprintf("backend version %s is too old", version), nil)
	}

	if currency != "" && !strings.EqualFold(cfg.Currency, currency) {
		n.diag.Log(ctx, application.LevelError, scope,
			fmt.Sprintf("Backend currency %s does not match order currency %s", cfg.Currency, currency))
		return incompatible("currency mismatch", domain.NewCurrencyMismatchError(currency, cfg.Currency))
	}

	n.diag.Log(ctx, application.LevelDebug, scope,
		fmt.Sprintf("/config check for Taler backend at %s succeeded", n.endpoints.Base()))
	return nil
}

// CheckCompatibility is Negotiate reduced to a yes/no answer.
func (n *Negotiator) CheckCompatibility(ctx context.Context, scope application.Scope, currency string) bool {
	return n.Negotiate(ctx, scope, currency) == nil
}

// NeedsSetup reports whether the configured backend is unusable, without
// looking at currencies.
func (n *Negotiator) NeedsSetup(ctx context.Context) bool {
	return !n.CheckCompatibility(ctx, application.Scope{Actor: ActorAdmin}, "")
}

func incompatible(reason string, cause error) error {
	svcErr := application.NewProtocolIncompatibleError(reason)
	svcErr.Err = cause
	return svcErr
}
