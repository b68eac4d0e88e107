// Package migrations применяет SQL-миграции схемы каталога.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty возвращается, если предыдущая миграция оборвалась и схема помечена как грязная.
var ErrDirty = errors.New("schema is dirty")

// Run применяет все миграции из каталога path и возвращает итоговую версию схемы.
// Отсутствие изменений не считается ошибкой.
func Run(db *sql.DB, path string) (uint, error) {
	const op = "migrations.Run"

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "pgx_v5", driver)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// Грязную схему чинят вручную через migrate force.
	if v, dirty, err := m.Version(); err == nil && dirty {
		return v, fmt.Errorf("%s: version %d: %w", op, v, ErrDirty)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	v, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
