// Package storefront собирает HTTP-приложение витрины: сессии посетителей,
// сценарии входа и регистрации, защиту маршрутов и просмотр заказов.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/storefront/internal/cache"
	"github.com/magabrotheeeer/storefront/internal/config"
	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/directory"
	"github.com/magabrotheeeer/storefront/internal/events"
	"github.com/magabrotheeeer/storefront/internal/guard"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/health"
	"github.com/magabrotheeeer/storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/storefront/internal/lib/jwt"
	"github.com/magabrotheeeer/storefront/internal/lib/password"
	"github.com/magabrotheeeer/storefront/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/metrics"
	authservice "github.com/magabrotheeeer/storefront/internal/services/auth"
	ordersservice "github.com/magabrotheeeer/storefront/internal/services/orders"
	"github.com/magabrotheeeer/storefront/internal/session"
)

const purgeInterval = time.Minute

// App приложение витрины.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	memory  *session.MemoryRegistry
	limiter *middlewarectx.Limiter
	idle    time.Duration
	closers []func() error
}

// New создаёт приложение и подключает внешние зависимости из конфига.
// Redis и RabbitMQ необязательны: без них сессии живут в памяти, а события не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.storefront.New"

	app := &App{
		logger:  logger,
		limiter: middlewarectx.NewLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst),
		idle:    cfg.Auth.RateIdle,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	hasher, err := password.New(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	checks := map[string]health.Checker{}
	var (
		registry    session.Registry
		ordersCache ordersservice.Cache = cache.Nop{}
	)
	if cfg.RedisConnection.Address != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache.Close)
		registry = session.NewRedisRegistry(redisCache, cfg.Session.TTL)
		ordersCache = redisCache
		checks["redis"] = func(r *http.Request) error {
			return redisCache.Db.Ping(r.Context()).Err()
		}
		logger.Info("sessions are stored in redis", slog.String("address", cfg.RedisConnection.Address))
	} else {
		app.memory = session.NewMemoryRegistry(cfg.Session.TTL)
		registry = app.memory
		logger.Info("sessions are stored in memory")
	}

	publisher, err := app.newPublisher(cfg.RabbitMQ)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cookies := cookie.NewManager(cfg.Cookie, cfg.Env)
	tokens := jwt.NewJWTMaker(cfg.Session.SecretKey, cfg.Session.TTL)
	dir := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout, m)

	deps := Deps{
		Sessions: session.NewManager(logger, registry, tokens, cookies, cfg.Session.CookieName, cfg.Session.TTL),
		Cookies:  cookies,
		Guard:    guard.New(cfg.Guard.ProtectedPrefixes, cfg.Guard.LoginPath),
		Auth:     authservice.New(logger, dir, hasher, publisher, m),
		Orders:   ordersservice.New(logger, dir, ordersCache, cfg.Orders.CacheTTL),
		Limiter:  app.limiter,
		Metrics:  m,
		Gatherer: reg,
		Checks:   checks,

		TrustProxy: cfg.HTTPServer.TrustProxy,
	}

	router := chi.NewRouter()
	if err := RegisterRoutes(router, logger, deps); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

func (a *App) newPublisher(cfg config.RabbitMQ) (events.Publisher, error) {
	if cfg.URL == "" {
		a.logger.Info("auth events are disabled")
		return events.Nop{}, nil
	}

	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.Delay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.AuthAuditQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.closers = append(a.closers, ch.Close, conn.Close)
	a.logger.Info("auth events are published", slog.String("exchange", cfg.Exchange))
	return events.NewAMQPPublisher(a.logger, ch, cfg.Exchange), nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	go a.purge(ctx)

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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

// purge периодически удаляет истёкшие сессии в памяти и простаивающих клиентов ограничителя.
func (a *App) purge(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.purgeOnce()
		}
	}
}

func (a *App) purgeOnce() {
	if a.memory != nil {
		if n := a.memory.Purge(); n > 0 {
			a.logger.Debug("expired sessions purged", slog.Int("count", n))
		}
	}
	if a.limiter != nil {
		if n := a.limiter.Purge(a.idle); n > 0 {
			a.logger.Debug("idle rate limit clients purged", slog.Int("count", n))
		}
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to release resource", sl.Err(err))
		}
	}
	a.closers = nil
}
