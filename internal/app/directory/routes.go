package directory

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/storefront/internal/http/handlers/directory/orders"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/directory/users"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/health"
	"github.com/magabrotheeeer/storefront/internal/storage"
)

// RegisterRoutes регистрирует маршруты mock-сервиса каталога.
func RegisterRoutes(r chi.Router, logger *slog.Logger, st storage.Storage, checks map[string]health.Checker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	usersHandler := users.New(logger, st)
	ordersHandler := orders.New(logger, st)

	r.Get("/healthz", health.New(logger, checks).ServeHTTP)
	r.Get("/users", usersHandler.Find)
	r.Post("/users", usersHandler.Create)
	r.Get("/orders", ordersHandler.List)
	r.Get("/orders/{id}", ordersHandler.Get)
}
