// Package bootstrap wires the services shared by the gateway and merchantctl.
package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	_ "github.com/DanielPopoola/taler-merchant-gateway/internal/docs"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/infrastructure/diagnostics"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/infrastructure/taler"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Backend holds everything that talks to the merchant backend. It needs no
// database.
type Backend struct {
	Endpoints   protocol.Endpoints
	Transport   application.Transport
	Diagnostics application.Diagnostics
	Negotiator  *services.Negotiator
	Registry    *prometheus.Registry
}

func NewBackend(cfg *config.Config) (*Backend, error) {
	endpoint, err := cfg.Backend.Endpoint()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	diag := diagnostics.NewSink(cfg.Logger.DiagnosticsLogger(), cfg.Logger.Diagnostics)
	endpoints := protocol.NewEndpoints(endpoint)
	transport := taler.NewHTTPTransport(cfg.Backend, endpoint, diag, taler.NewMetrics(registry))

	return &Backend{
		Endpoints:   endpoints,
		Transport:   transport,
		Diagnostics: diag,
		Negotiator:  services.NewNegotiator(transport, endpoints, diag),
		Registry:    registry,
	}, nil
}

// App is the gateway with its order store.
type App struct {
	*Backend

	Config       *config.Config
	Logger       *slog.Logger
	DB           *postgres.DB
	Orders       *postgres.OrderRepository
	Carts        *postgres.CartRepository
	Coordinator  *postgres.TransactionCoordinator
	Checkout     *services.CheckoutService
	Confirmation *services.ConfirmationService
	Refunds      *services.RefundService
	Query        *services.QueryService
}

// New connects to the database and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	orders := postgres.NewOrderRepository(db)
	shop := ShopSettings(cfg.Shop)

	return &App{
		Backend:     backend,
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Orders:      orders,
		Carts:       postgres.NewCartRepository(db),
		Coordinator: postgres.NewTransactionCoordinator(db),
		Checkout: services.NewCheckoutService(
			orders,
			backend.Transport,
			backend.Negotiator,
			services.NewContractBuilder(shop),
			backend.Endpoints,
			backend.Diagnostics,
		),
		Confirmation: services.NewConfirmationService(orders, backend.Transport, backend.Endpoints, shop, backend.Diagnostics),
		Refunds:      services.NewRefundService(orders, backend.Transport, backend.Endpoints, backend.Diagnostics),
		Query:        services.NewQueryService(orders, backend.Endpoints),
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

// Router builds the HTTP handler of the gateway with its middleware chain.
func (a *App) Router() http.Handler {
	h := handlers.NewHandlers(
		a.Checkout,
		a.Confirmation,
		a.Refunds,
		a.Query,
		a.Negotiator,
		a.Carts,
		handlers.Settings{
			GatewayID:     a.Config.Shop.GatewayID,
			UserHeader:    a.Config.Shop.UserHeader,
			SessionCookie: a.Config.Shop.SessionCookie,
			NoticeCookie:  a.Config.Shop.NoticeCookie,
		},
		a.Logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux,
		middleware.RateLimit(middleware.NewLimiter(a.Config.RateLimit.RPS, a.Config.RateLimit.Burst)),
		middleware.BearerAuth(a.Config.Admin.Token),
	)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	return wrap(mux, a.Config, a.Logger)
}

// wrap applies the middleware every route shares. The request deadline comes
// from RequestTimeout so a checkout's backend calls are never cut short.
func wrap(h http.Handler, cfg *config.Config, logger *slog.Logger) http.Handler {
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)
	return middleware.Timeout(cfg.RequestTimeout())(h)
}

func ShopSettings(c config.ShopConfig) services.ShopSettings {
	return services.ShopSettings{
		HomeURL:         c.HomeURL,
		GatewayID:       c.GatewayID,
		OrderSummary:    c.OrderSummary,
		RefundDelayDays: c.RefundDelayDays,
		AccountPath:     c.AccountPath,
		ShopPath:        c.ShopPath,
		CartPath:        c.CartPath,
		ReturnPath:      c.ReturnPath,
	}
}
