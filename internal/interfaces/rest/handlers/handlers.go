package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/go-playground/validator"
)

type CheckoutService interface {
	SubmitOrder(ctx context.Context, cmd services.CheckoutCommand, cart application.Cart) (*services.CheckoutResult, error)
}

type PaymentConfirmer interface {
	CheckPayment(ctx context.Context, cmd services.CallbackCommand, cart application.Cart) *services.CallbackResult
}

type RefundService interface {
	Refund(ctx context.Context, cmd services.RefundCommand) (*services.RefundResult, error)
}

type QueryService interface {
	GetOrder(ctx context.Context, number string) (*services.OrderView, error)
}

type SetupProbe interface {
	NeedsSetup(ctx context.Context) bool
}

// CartProvider resolves the cart of a browser session.
type CartProvider interface {
	ForSession(sessionID string) application.Cart
}

// Settings names the shop-facing request parts the handlers read and write.
type Settings struct {
	GatewayID     string
	UserHeader    string
	SessionCookie string
	NoticeCookie  string
}

type Handlers struct {
	checkout  CheckoutService
	confirmer PaymentConfirmer
	refunds   RefundService
	query     QueryService
	setup     SetupProbe
	carts     CartProvider
	settings  Settings
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewHandlers(
	checkout CheckoutService,
	confirmer PaymentConfirmer,
	refunds RefundService,
	query QueryService,
	setup SetupProbe,
	carts CartProvider,
	settings Settings,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		checkout:  checkout,
		confirmer: confirmer,
		refunds:   refunds,
		query:     query,
		setup:     setup,
		carts:     carts,
		settings:  settings,
		validate:  validator.New(),
		logger:    logger,
	}
}

// RegisterRoutes mounts the public callback behind public and every
// operator route behind admin.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux, public, admin func(http.Handler) http.Handler) {
	mux.Handle("GET /{$}", public(http.HandlerFunc(h.HandleCallback)))

	mux.Handle("POST /orders/{number}/checkout", admin(http.HandlerFunc(h.HandleCheckout)))
	mux.Handle("POST /orders/{number}/refund", admin(http.HandlerFunc(h.HandleRefund)))
	mux.Handle("GET /orders/{number}", admin(http.HandlerFunc(h.HandleGetOrder)))
	mux.Handle("GET /setup/status", admin(http.HandlerFunc(h.HandleSetupStatus)))

	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.HandleFunc("GET /swagger.json", h.HandleDocs)
}

// actor returns the signed-in shop user named by the configured header.
func (h *Handlers) actor(r *http.Request) (string, bool) {
	if h.settings.UserHeader == "" {
		return "", false
	}
	user := r.Header.Get(h.settings.UserHeader)
	return user, user != ""
}
