// Package logout реализует JSON-обработчик выхода посетителя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/services/auth"
	"github.com/magabrotheeeer/storefront/internal/session"
)

// Service описывает сценарий выхода.
type Service interface {
	Logout(ctx context.Context, sess auth.Session, flag auth.Flag)
}

// Persister сохраняет сессию.
type Persister interface {
	Persist(ctx context.Context, store *session.Store) error
}

// Flags выдаёт флаг авторизации, привязанный к ответу.
type Flags interface {
	FlagFor(w http.ResponseWriter) *cookie.Flag
}

// Handler обрабатывает выход.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Persister
	flags    Flags
}

// New создаёт обработчик выхода.
func New(log *slog.Logger, service Service, sessions Persister, flags Flags) *Handler {
	return &Handler{log: log, service: service, sessions: sessions, flags: flags}
}

// ServeHTTP godoc
// @Summary Выход посетителя
// @Description Сбрасывает пользователя в сессии и удаляет флаг isAuthenticated.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Посетитель вышел"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := sl.ForRequest(h.log, op, r)

	store, ok := session.FromContext(r.Context())
	if !ok {
		log.Error("session is missing in request context")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	h.service.Logout(r.Context(), store, h.flags.FlagFor(w))
	if err := h.sessions.Persist(r.Context(), store); err != nil {
		log.Error("failed to persist session", sl.Err(err))
	}

	render.JSON(w, r, response.StatusOKWithData(store.Snapshot()))
}
