package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/lib/jwt"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
)

type ctxKey struct{}

// Cookies операции с куками, нужные менеджеру сессий.
type Cookies interface {
	Set(w http.ResponseWriter, opts cookie.Options) error
	Get(r *http.Request, name string) (string, error)
	IsAuthenticated(r *http.Request) bool
}

// Manager связывает посетителя с его состоянием: выдаёт подписанную куку
// с идентификатором, загружает Store из Registry и сохраняет изменения.
type Manager struct {
	log        *slog.Logger
	registry   Registry
	tokens     jwt.Maker
	cookies    Cookies
	cookieName string
	ttl        time.Duration
}

// NewManager создаёт менеджер сессий.
func NewManager(log *slog.Logger, registry Registry, tokens jwt.Maker, cookies Cookies, cookieName string, ttl time.Duration) *Manager {
	return &Manager{
		log:        log,
		registry:   registry,
		tokens:     tokens,
		cookies:    cookies,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Middleware загружает сессию посетителя в контекст запроса.
//
// Если флаг авторизации отсутствует, а сохранённое состояние считает
// посетителя авторизованным, состояние сбрасывается: решения о доступе
// принимаются только по флагу. Изменённое состояние сохраняется после
// обработки запроса.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := sl.ForRequest(m.log, "session.Middleware", r)

		id, err := m.visitorID(w, r)
		if err != nil {
			log.Error("failed to issue session", sl.Err(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		state, err := m.registry.Load(r.Context(), id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Warn("failed to load session, starting fresh", sl.Err(err))
			}
			state = NewState()
		}

		store := NewStore(id, state)
		if state.IsAuthenticated && !m.cookies.IsAuthenticated(r) {
			log.Debug("auth flag is absent, clearing cached user")
			store.Clear()
		}

		next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), store)))

		if store.Dirty() {
			if err := m.Persist(context.WithoutCancel(r.Context()), store); err != nil {
				log.Error("failed to persist session", sl.Err(err))
			}
		}
	})
}

// Persist сохраняет состояние сессии в Registry.
// Обработчики вызывают его перед редиректом, чтобы следующий запрос увидел изменения.
func (m *Manager) Persist(ctx context.Context, store *Store) error {
	const op = "session.Persist"

	st := store.snapshotForSave()
	if err := m.registry.Save(ctx, store.ID(), st); err != nil {
		store.markDirty()
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Manager) visitorID(w http.ResponseWriter, r *http.Request) (string, error) {
	const op = "session.visitorID"

	if raw, err := m.cookies.Get(r, m.cookieName); err == nil {
		if claims, err := m.tokens.ParseToken(raw); err == nil {
			return claims.VisitorID(), nil
		}
	}

	id := uuid.NewString()
	token, err := m.tokens.GenerateToken(id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := m.cookies.Set(w, cookie.Options{
		Name:   m.cookieName,
		Value:  token,
		MaxAge: m.ttl,
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// WithStore кладёт хранилище сессии в контекст.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext возвращает хранилище сессии текущего запроса.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	return s, ok
}
