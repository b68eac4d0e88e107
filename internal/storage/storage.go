// Package storage описывает хранилище mock-сервиса каталога:
// учётные записи пользователей и историю заказов.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/storefront/internal/models"
)

var (
	// ErrUserExists возвращается при попытке создать пользователя с занятым email.
	ErrUserExists = errors.New("user already exists")
	// ErrNotFound возвращается, когда запрошенная запись отсутствует.
	ErrNotFound = errors.New("not found")
)

// Storage интерфейс хранилища каталога.
type Storage interface {
	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (models.Order, error)
}
