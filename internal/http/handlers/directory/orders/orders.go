// Package orders реализует ресурс /orders mock-сервиса каталога.
package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/storage"
)

// Storage описывает операции хранилища над заказами.
type Storage interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (models.Order, error)
}

// Handler обслуживает историю заказов.
type Handler struct {
	log     *slog.Logger
	storage Storage
}

// New создаёт обработчик ресурса заказов.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{log: log, storage: storage}
}

// List godoc
// @Summary Список заказов
// @Tags Directory
// @Produce  json
// @Success 200 {array} models.Order
// @Failure 500 {object} response.ErrorResponse
// @Router /orders [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.directory.orders.List"

	orders, err := h.storage.ListOrders(r.Context())
	if err != nil {
		sl.ForRequest(h.log, op, r).Error("failed to list orders", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	render.JSON(w, r, orders)
}

// Get godoc
// @Summary Заказ по идентификатору
// @Tags Directory
// @Produce  json
// @Param id path int true "ID заказа"
// @Success 200 {object} models.Order
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /orders/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.directory.orders.Get"
	log := sl.ForRequest(h.log, op, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid order id"))
		return
	}

	order, err := h.storage.GetOrder(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("order not found"))
		return
	}
	if err != nil {
		log.Error("failed to get order", slog.Int("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	render.JSON(w, r, order)
}
