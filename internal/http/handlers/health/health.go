// Package health отдаёт признак живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
)

// Checker проверяет готовность зависимости, например базы данных каталога.
type Checker func(r *http.Request) error

// Handler отвечает на /healthz.
type Handler struct {
	log    *slog.Logger
	checks map[string]Checker
}

// New создаёт обработчик с необязательными проверками зависимостей.
func New(log *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	for name, check := range h.checks {
		if err := check(r); err != nil {
			sl.ForRequest(h.log, op, r).Error("dependency is not ready",
				slog.String("dependency", name), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error(name+" is not ready"))
			return
		}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
