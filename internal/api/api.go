package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/payflow/pkg/billing"
	"github.com/dmitrymomot/payflow/pkg/httpserver"
	"github.com/dmitrymomot/payflow/pkg/requestid"
)

// Service is the billing surface the HTTP layer depends on.
type Service interface {
	ListPlans(ctx context.Context) ([]billing.PlanView, error)
	CreateSubscription(ctx context.Context, planID string) (*billing.SubscriptionResult, error)
}

type router struct {
	svc      Service
	logger   *slog.Logger
	validate *validator.Validate
	checks   map[string]httpserver.Check
}

// Option configures NewRouter.
type Option func(*router)

// WithLogger sets the logger for request and error logs.
func WithLogger(l *slog.Logger) Option {
	return func(r *router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReadinessCheck adds a named dependency check to /health/ready.
func WithReadinessCheck(name string, check httpserver.Check) Option {
	return func(r *router) {
		if check != nil {
			r.checks[name] = check
		}
	}
}

// NewRouter builds the HTTP handler for svc.
// Panics if svc is nil.
func NewRouter(svc Service, opts ...Option) http.Handler {
	if svc == nil {
		panic("api: Service is required")
	}

	rt := &router{
		svc:      svc,
		logger:   slog.New(slog.DiscardHandler),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		checks:   make(map[string]httpserver.Check),
	}
	for _, opt := range opts {
		opt(rt)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requestLogger(rt.logger))
	r.Use(middleware.Recoverer)

	r.Get("/plans", rt.plansHandler())
	r.Post("/subscription", rt.subscriptionHandler())

	r.Route("/health", func(h chi.Router) {
		h.Get("/live", httpserver.Liveness())
		h.Get("/ready", httpserver.Readiness(rt.logger, rt.checks))
	})

	return r
}
