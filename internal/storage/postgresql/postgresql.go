// Package postgresql реализует хранилище каталога поверх PostgreSQL.
// Схему создают миграции из каталога migrations.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/storage"
)

const uniqueViolation = "23505"

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает подключение к PostgreSQL и проверяет его доступность.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет, что миграции создали нужные таблицы.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.postgresql.CheckDatabaseReady"
	for _, table := range []string{"users", "orders"} {
		var exists bool
		err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s: required table %s missing", op, table)
		}
	}
	return nil
}

// FindUsersByEmail возвращает пользователей с точным совпадением email.
func (s *Storage) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	const op = "storage.postgresql.FindUsersByEmail"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT email, password FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	res := make([]models.User, 0, 1)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Email, &u.Password); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CreateUser сохраняет нового пользователя. Занятый email даёт storage.ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.postgresql.CreateUser"

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (email, password) VALUES ($1, $2)`, user.Email, user.Password)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

const orderColumns = `id, transaction_id, date, status, game_name, game_id, amount, goods`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (models.Order, error) {
	var (
		o     models.Order
		goods []byte
	)
	if err := row.Scan(&o.ID, &o.TransactionID, &o.Date, &o.Status,
		&o.GameName, &o.GameID, &o.Amount, &goods); err != nil {
		return models.Order{}, err
	}
	if err := json.Unmarshal(goods, &o.Goods); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// ListOrders возвращает все заказы, отсортированные по ID.
func (s *Storage) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "storage.postgresql.ListOrders"

	rows, err := s.DB.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	res := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// GetOrder возвращает заказ по ID или storage.ErrNotFound.
func (s *Storage) GetOrder(ctx context.Context, id int) (models.Order, error) {
	const op = "storage.postgresql.GetOrder"

	row := s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// InsertOrder сохраняет заказ с заданным ID.
func (s *Storage) InsertOrder(ctx context.Context, o models.Order) error {
	const op = "storage.postgresql.InsertOrder"

	goods, err := json.Marshal(o.Goods)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.DB.ExecContext(ctx, `INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		o.ID, o.TransactionID, o.Date, o.Status, o.GameName, o.GameID, o.Amount, goods)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
