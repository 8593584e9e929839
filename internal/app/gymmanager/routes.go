// Package gymmanager предоставляет маршруты основного приложения.
package gymmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/approve"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/create"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/list"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/read"
	membershiprenew "github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/renew"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/membership/status"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/trainer/assign"
	"github.com/magabrotheeeer/gym-manager/internal/http/handlers/trainer/message"
	trainerrenew "github.com/magabrotheeeer/gym-manager/internal/http/handlers/trainer/renew"
	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/lib/ratelimit"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	membershipservice "github.com/magabrotheeeer/gym-manager/internal/services/membership"
	trainerservice "github.com/magabrotheeeer/gym-manager/internal/services/trainer"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.Service,
	membershipService *membershipservice.Service,
	trainerService *trainerservice.Service,
	limiterStore *ratelimit.Store,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiterStore, logger))

			r.Post("/memberships", create.New(logger, membershipService).ServeHTTP)
			r.Get("/memberships", list.New(logger, membershipService).ServeHTTP)
			r.Get("/memberships/status", status.New(logger, membershipService).ServeHTTP)
			r.Get("/memberships/{id}", read.New(logger, membershipService).ServeHTTP)
			r.Post("/memberships/{id}/renew", membershiprenew.New(logger, membershipService).ServeHTTP)

			r.Post("/trainers/assign", assign.New(logger, trainerService).ServeHTTP)
			r.Post("/trainers/{id}/renew", trainerrenew.New(logger, trainerService).ServeHTTP)
			r.Post("/trainers/message", message.New(logger, trainerService).ServeHTTP)

			// Решения администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole("admin", logger))
				r.Post("/admin/memberships/{id}/approve", approve.New(logger, membershipService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
