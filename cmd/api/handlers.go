package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

type WebHandlers struct {
	Auth       *handlers.AuthHandler
	Validation *handlers.ValidationHandler
	Leads      *handlers.LeadHandler
	Admin      *handlers.AdminHandler
	Webhook    *handlers.WebhookHandler
	Health     *handlers.HealthHandler
}

func newRouter(h WebHandlers, verifier middleware.TokenVerifier, limiter *middleware.RateLimiter, origins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", handlers.SignatureHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)
		r.Post("/signup", h.Auth.Signup)
		r.Post("/signup/check-email", h.Validation.Handle)
		r.Post("/login", h.Auth.Login)
	})

	r.Get("/confirm-interest/{customerId}", h.Leads.ConfirmLink)
	r.Post("/accept-email", h.Leads.AcceptEmail)
	r.Get("/interest-confirmed", h.Leads.InterestConfirmed)
	r.Post("/incoming", h.Webhook.Handle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(verifier))

		r.Post("/collect-customer-info", h.Leads.Submit)
		r.Get("/customers", h.Leads.List)
		r.Get("/customers/{customerId}", h.Leads.Get)
		r.Delete("/customers/{customerId}", h.Leads.Delete)
		r.Patch("/customers/{customerId}/interest", h.Leads.SetInterest)
		r.Get("/users", h.Admin.Users)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/admin/users", h.Admin.SalesPeople)
			r.Get("/admin/users/{userId}/customers", h.Admin.LeadsOf)
			r.Get("/incoming-emails", h.Admin.InboundReplies)
		})
	})

	return r
}
