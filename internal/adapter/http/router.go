package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/toriai247/EarnHubPro-sub001/internal/adapter/http/handler"
	"github.com/toriai247/EarnHubPro-sub001/internal/adapter/http/middleware"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/auth"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/metrics"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler         *handler.WalletHandler
	StakeHandler          *handler.StakeHandler
	WithdrawalHandler     *handler.WithdrawalHandler
	RoundHandler          *handler.RoundHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, cfg.Metrics)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		// Round state is public to any authenticated caller.
		r.Get("/round", cfg.RoundHandler.Current)

		// Wallets
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)

			r.Route("/{userID}", func(r chi.Router) {
				if cfg.JWTManager != nil {
					r.Use(middleware.RequireSelfOrOperator("userID"))
				}

				r.Get("/", cfg.WalletHandler.Get)
				r.Get("/entries", cfg.WalletHandler.ListEntries)

				// Adjustments bypass the stake path and are operator-only.
				if cfg.JWTManager != nil {
					r.With(middleware.RequireRole(middleware.RoleOperator)).Post("/adjust", cfg.WalletHandler.Adjust)
				} else {
					r.Post("/adjust", cfg.WalletHandler.Adjust)
				}

				r.Post("/stakes", cfg.StakeHandler.Place)
				r.Post("/withdrawals", cfg.WithdrawalHandler.Create)
				r.Get("/withdrawals", cfg.WithdrawalHandler.List)

				// Operator-only reconciliation surface
				r.Route("/reconciliation", func(r chi.Router) {
					if cfg.JWTManager != nil {
						r.Use(middleware.RequireRole(middleware.RoleOperator))
					}

					r.Get("/", cfg.ReconciliationHandler.Report)
					r.Post("/", cfg.ReconciliationHandler.Trigger)
				})
			})
		})

		// Withdrawals by ID
		r.Get("/withdrawals/{id}", cfg.WithdrawalHandler.Get)
	})

	return r
}
