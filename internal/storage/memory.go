package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magabrotheeeer/storefront/internal/models"
)

// Memory хранит пользователей и заказы в памяти процесса.
type Memory struct {
	mu     sync.RWMutex
	users  []models.User
	orders map[int]models.Order
}

// NewMemory создаёт хранилище в памяти с переданными заказами.
func NewMemory(orders []models.Order) *Memory {
	m := &Memory{orders: make(map[int]models.Order, len(orders))}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

// FindUsersByEmail возвращает пользователей с точным совпадением email.
func (m *Memory) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	const op = "storage.Memory.FindUsersByEmail"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]models.User, 0, 1)
	for _, u := range m.users {
		if u.Email == email {
			res = append(res, u)
		}
	}
	return res, nil
}

// CreateUser добавляет пользователя, если email ещё не занят.
func (m *Memory) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.Memory.CreateUser"
	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
	}
	m.users = append(m.users, user)
	return user, nil
}

// ListOrders возвращает все заказы, отсортированные по ID.
func (m *Memory) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "storage.Memory.ListOrders"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		res = append(res, o)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// GetOrder возвращает заказ по ID.
func (m *Memory) GetOrder(ctx context.Context, id int) (models.Order, error) {
	const op = "storage.Memory.GetOrder"
	if err := ctx.Err(); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return o, nil
}
