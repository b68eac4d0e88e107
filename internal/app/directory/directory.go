// Package directory собирает mock-сервис каталога пользователей и заказов,
// к которому обращается витрина.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/storefront/internal/config"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/health"
	"github.com/magabrotheeeer/storefront/internal/migrations"
	"github.com/magabrotheeeer/storefront/internal/storage"
	"github.com/magabrotheeeer/storefront/internal/storage/postgresql"
)

// App приложение каталога.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *postgresql.Storage
}

// New создаёт приложение. Без строки подключения данные хранятся в памяти.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.directory.New"

	app := &App{logger: logger}
	checks := map[string]health.Checker{}

	var st storage.Storage
	if dsn := cfg.DirectoryServer.StorageConnectionString; dsn != "" {
		db, err := postgresql.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := prepare(ctx, logger, db, cfg.DirectoryServer.MigrationsPath); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.db = db
		st = db
		checks["storage"] = func(r *http.Request) error {
			return db.DB.PingContext(r.Context())
		}
		logger.Info("directory storage is postgresql")
	} else {
		st = storage.NewMemory(storage.SeedOrders())
		logger.Info("directory storage is in memory")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, st, checks)

	app.server = &http.Server{
		Addr:         cfg.DirectoryServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

func prepare(ctx context.Context, logger *slog.Logger, db *postgresql.Storage, migrationsPath string) error {
	version, err := migrations.Run(db.DB, migrationsPath)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)))
	if err := db.CheckDatabaseReady(ctx); err != nil {
		return err
	}
	for _, o := range storage.SeedOrders() {
		if err := db.InsertOrder(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeDB()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeDB()
		return err
	}
}

func (a *App) closeDB() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
