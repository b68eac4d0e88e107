// Package preferences реализует JSON-обработчики смены валюты и языка.
package preferences

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/session"
)

// Request новое значение настройки. Допустимо любое непустое значение.
type Request struct {
	Value string `json:"value" validate:"required"`
}

// Persister сохраняет сессию.
type Persister interface {
	Persist(ctx context.Context, store *session.Store) error
}

// Handler меняет одну настройку сессии.
type Handler struct {
	log      *slog.Logger
	op       string
	apply    func(s *session.Store, v string)
	sessions Persister
	validate *validator.Validate
}

// NewCurrency создаёт обработчик смены валюты.
func NewCurrency(log *slog.Logger, sessions Persister) *Handler {
	return &Handler{
		log:      log,
		op:       "handlers.session.currency",
		apply:    (*session.Store).SetCurrency,
		sessions: sessions,
		validate: validator.New(),
	}
}

// NewLanguage создаёт обработчик смены языка.
func NewLanguage(log *slog.Logger, sessions Persister) *Handler {
	return &Handler{
		log:      log,
		op:       "handlers.session.language",
		apply:    (*session.Store).SetLanguage,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена валюты или языка
// @Description Записывает новое значение в сессию. Значение не проверяется по списку.
// @Tags Session
// @Accept  json
// @Produce  json
// @Param request body Request true "Новое значение"
// @Success 200 {object} response.Response "Снимок сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Пустое значение"
// @Router /session/currency [put]
// @Router /session/language [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := sl.ForRequest(h.log, h.op, r)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		errors.As(err, &verrs)
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	store, ok := session.FromContext(r.Context())
	if !ok {
		log.Error("session is missing in request context")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	h.apply(store, req.Value)
	if err := h.sessions.Persist(r.Context(), store); err != nil {
		log.Error("failed to persist session", sl.Err(err))
	}
	log.Debug("preference updated", slog.String("value", req.Value))
	render.JSON(w, r, response.StatusOKWithData(store.Snapshot()))
}
