// Package register реализует JSON-обработчик регистрации посетителя.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/http/forms"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/autherr"
	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/services/auth"
	"github.com/magabrotheeeer/storefront/internal/session"
)

// Service описывает сценарий регистрации.
type Service interface {
	Register(ctx context.Context, sess auth.Session, flag auth.Flag, email, password string) error
}

// Persister сохраняет сессию.
type Persister interface {
	Persist(ctx context.Context, store *session.Store) error
}

// Flags выдаёт флаг авторизации, привязанный к ответу.
type Flags interface {
	FlagFor(w http.ResponseWriter) *cookie.Flag
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Persister
	flags    Flags
	validate *validator.Validate
}

// New создаёт обработчик регистрации.
func New(log *slog.Logger, service Service, sessions Persister, flags Flags) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		flags:    flags,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация посетителя
// @Description Создаёт запись в каталоге, если email свободен, и сразу авторизует посетителя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body forms.Registration true "Данные регистрации"
// @Success 201 {object} response.Response "Посетитель зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или пароли не совпадают"
// @Failure 502 {object} response.ErrorResponse "Каталог недоступен"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := sl.ForRequest(h.log, op, r)

	var req forms.Registration
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := forms.Validate(h.validate, req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	store, ok := session.FromContext(r.Context())
	if !ok {
		log.Error("session is missing in request context")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if err := h.service.Register(r.Context(), store, h.flags.FlagFor(w), req.Email, req.Password); err != nil {
		log.Info("registration failed", sl.Err(err))
		code, msg := autherr.Status(err)
		render.Status(r, code)
		render.JSON(w, r, response.Error(msg))
		return
	}

	if err := h.sessions.Persist(r.Context(), store); err != nil {
		log.Error("failed to persist session", sl.Err(err))
	}

	log.Info("registration success")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(store.Snapshot()))
}
