package storefront

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документации.
	_ "github.com/magabrotheeeer/storefront/docs"
	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/guard"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/health"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/pages"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/session/current"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/session/preferences"
	"github.com/magabrotheeeer/storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/storefront/internal/metrics"
	authservice "github.com/magabrotheeeer/storefront/internal/services/auth"
	ordersservice "github.com/magabrotheeeer/storefront/internal/services/orders"
	"github.com/magabrotheeeer/storefront/internal/session"
)

// Deps зависимости, из которых собираются маршруты витрины.
type Deps struct {
	Sessions *session.Manager
	Cookies  *cookie.Manager
	Guard    *guard.Guard
	Auth     *authservice.Service
	Orders   *ordersservice.Service
	Limiter  *middlewarectx.Limiter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Checks   map[string]health.Checker

	// TrustProxy включает middleware.RealIP, и ограничитель частоты
	// начинает различать клиентов по заголовкам прокси.
	TrustProxy bool
}

// RegisterRoutes регистрирует все маршруты витрины.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) error {
	pagesHandler, err := pages.New(logger, d.Auth, d.Orders, d.Sessions, d.Cookies)
	if err != nil {
		return err
	}
	rateLimit := middlewarectx.RateLimitMiddleware(logger, d.Limiter)

	// Глобальные middleware
	r.Use(middleware.RequestID)
	if d.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		guard.Middleware(logger, d.Guard, d.Cookies, d.Metrics),
	)

	r.Get("/healthz", health.New(logger, d.Checks).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Группа с сессией посетителя
	r.Group(func(r chi.Router) {
		r.Use(d.Sessions.Middleware)

		r.Get("/", pagesHandler.Home)
		r.Post("/preferences", pagesHandler.Preferences)
		r.Post("/auth/logout", pagesHandler.Logout)
		r.Get("/auth/{type}", pagesHandler.AuthForm)
		r.With(rateLimit).Post("/auth/{type}", pagesHandler.AuthSubmit)
		r.Get("/orders", pagesHandler.Orders)
		r.Get("/orders/{id}", pagesHandler.Order)

		r.Route("/api/v1", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(rateLimit)
				r.Post("/auth/login", login.New(logger, d.Auth, d.Sessions, d.Cookies).ServeHTTP)
				r.Post("/auth/register", register.New(logger, d.Auth, d.Sessions, d.Cookies).ServeHTTP)
			})
			r.Post("/auth/logout", logout.New(logger, d.Auth, d.Sessions, d.Cookies).ServeHTTP)
			r.Get("/session", current.New(logger).ServeHTTP)
			r.Put("/session/currency", preferences.NewCurrency(logger, d.Sessions).ServeHTTP)
			r.Put("/session/language", preferences.NewLanguage(logger, d.Sessions).ServeHTTP)
		})
	})

	return nil
}
