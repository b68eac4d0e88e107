// Package users реализует ресурс /users mock-сервиса каталога.
// Ответы повторяют формат json-server: массив или объект без обёртки.
package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/storage"
)

// Storage описывает операции хранилища над пользователями.
type Storage interface {
	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// Request тело запроса на создание пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обслуживает поиск и создание пользователей.
type Handler struct {
	log      *slog.Logger
	storage  Storage
	validate *validator.Validate
}

// New создаёт обработчик ресурса пользователей.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{
		log:      log,
		storage:  storage,
		validate: validator.New(),
	}
}

// Find godoc
// @Summary Поиск пользователей по email
// @Tags Directory
// @Produce  json
// @Param email query string true "Email"
// @Success 200 {array} models.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [get]
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.directory.users.Find"
	log := sl.ForRequest(h.log, op, r)

	email := r.URL.Query().Get("email")
	if email == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("email query parameter is required"))
		return
	}

	users, err := h.storage.FindUsersByEmail(r.Context(), email)
	if err != nil {
		log.Error("failed to find users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	log.Debug("users found", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}

// Create godoc
// @Summary Создание пользователя
// @Tags Directory
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётная запись"
// @Success 201 {object} models.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.directory.users.Create"
	log := sl.ForRequest(h.log, op, r)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	user, err := h.storage.CreateUser(r.Context(), models.User{Email: req.Email, Password: req.Password})
	if errors.Is(err, storage.ErrUserExists) {
		log.Info("user already exists")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("user already exists"))
		return
	}
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("user created")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}
