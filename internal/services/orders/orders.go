// Package orders отдаёт историю заказов из каталога с кешированием ответов.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/storefront/internal/directory"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
)

// ErrNotFound возвращается, если заказа с таким идентификатором нет.
var ErrNotFound = errors.New("order not found")

// Directory источник заказов.
type Directory interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (models.Order, error)
}

// Cache кеш ответов каталога.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service читает заказы через кеш.
type Service struct {
	log   *slog.Logger
	dir   Directory
	cache Cache
	ttl   time.Duration
}

// New создаёт сервис заказов. ttl <= 0 отключает кеширование.
func New(log *slog.Logger, dir Directory, cache Cache, ttl time.Duration) *Service {
	return &Service{log: log, dir: dir, cache: cache, ttl: ttl}
}

// List возвращает все заказы.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	const op = "services.orders.List"
	const key = "orders:list"

	var cached []models.Order
	if s.fromCache(ctx, op, key, &cached) {
		return cached, nil
	}

	list, err := s.dir.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, op, key, list)
	return list, nil
}

// Get возвращает заказ по идентификатору.
func (s *Service) Get(ctx context.Context, id int) (models.Order, error) {
	const op = "services.orders.Get"
	key := "orders:" + strconv.Itoa(id)

	var cached models.Order
	if s.fromCache(ctx, op, key, &cached) {
		return cached, nil
	}

	order, err := s.dir.GetOrder(ctx, id)
	if errors.Is(err, directory.ErrNotFound) {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, op, key, order)
	return order, nil
}

func (s *Service) fromCache(ctx context.Context, op, key string, out any) bool {
	if s.cache == nil || s.ttl <= 0 {
		return false
	}
	found, err := s.cache.Get(ctx, key, out)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, op, key string, value any) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}
