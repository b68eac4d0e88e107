// Package middlewarectx содержит HTTP middleware витрины общего назначения.
package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter выдаёт по ограничителю на каждого клиента.
// Клиенты, не обращавшиеся дольше idle, удаляются методом Purge.
type Limiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*client
	now     func() time.Time
}

// NewLimiter создаёт ограничитель: limit запросов в секунду с запасом burst на клиента.
func NewLimiter(limit float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limit:   rate.Limit(limit),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Allow сообщает, можно ли обслужить очередной запрос клиента key.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = l.now()
	l.mu.Unlock()
	return c.limiter.Allow()
}

// Purge удаляет клиентов, не обращавшихся дольше idle, и возвращает их число.
func (l *Limiter) Purge(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	n := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			n++
		}
	}
	return n
}

// Len возвращает число отслеживаемых клиентов.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware ограничивает частоту запросов по адресу клиента.
// Адрес берётся из r.RemoteAddr, то есть из сокета, пока перед middleware
// не стоит chi middleware.RealIP.
func RateLimitMiddleware(log *slog.Logger, l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientKey(r)) {
				sl.ForRequest(log, "middlewarectx.RateLimit", r).Warn("too many requests",
					slog.String("client", clientKey(r)),
				)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
