package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkmayk11/mhbank/internal/adapter/http/handler"
	"github.com/mkmayk11/mhbank/internal/adapter/http/middleware"
	"github.com/mkmayk11/mhbank/internal/infrastructure/auth"
	"github.com/mkmayk11/mhbank/internal/infrastructure/metrics"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	LedgerHandler    *handler.LedgerHandler
	DepositHandler   *handler.DepositHandler
	WagerHandler     *handler.WagerHandler
	HistoryHandler   *handler.HistoryHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public
		r.Post("/register", cfg.AccountHandler.Register)
		r.Post("/login", cfg.AccountHandler.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTManager))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.Me)
				r.Get("/balance", cfg.AccountHandler.Balance)
				r.Post("/credential", cfg.AccountHandler.ChangeCredential)
				r.Get("/history", cfg.HistoryHandler.List)
				r.Get("/history/export", cfg.HistoryHandler.Export)
			})

			r.Post("/withdrawals", cfg.LedgerHandler.Withdraw)
			r.Post("/transfers", cfg.LedgerHandler.Transfer)
			r.Post("/wagers", cfg.WagerHandler.Place)
			r.Post("/deposits", cfg.DepositHandler.Submit)

			// Admin
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/accounts", cfg.AccountHandler.List)
				r.Get("/deposits/pending", cfg.DepositHandler.ListPending)
				r.Post("/deposits/{id}/approve", cfg.DepositHandler.Approve)
			})
		})
	})

	return r
}
