// Package current отдаёт снимок сессии посетителя.
package current

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/session"
)

// Handler возвращает текущее состояние сессии.
type Handler struct {
	log *slog.Logger
}

// New создаёт обработчик.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает пользователя, признак авторизации, валюту и язык посетителя.
// @Tags Session
// @Produce  json
// @Success 200 {object} response.Response "Снимок сессии"
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.current"

	store, ok := session.FromContext(r.Context())
	if !ok {
		sl.ForRequest(h.log, op, r).Error("session is missing in request context")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(store.Snapshot()))
}
