// Package guard защищает маршруты витрины: запросы к защищённым путям без
// флага авторизации перенаправляются на страницу входа.
//
// Решение принимается только по флагу из куки. Состояние сессии не учитывается.
package guard

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/metrics"
)

// DefaultLoginPath страница входа по умолчанию.
const DefaultLoginPath = "/auth/login"

// DefaultProtectedPrefixes возвращает защищённые префиксы по умолчанию.
func DefaultProtectedPrefixes() []string {
	return []string{"/orders"}
}

// Decision результат проверки запроса.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard хранит настройки защиты. Состояния между запросами не держит.
type Guard struct {
	prefixes  []string
	loginPath string
}

// New создаёт защиту маршрутов. Пустые аргументы заменяются значениями по умолчанию.
func New(prefixes []string, loginPath string) *Guard {
	if len(prefixes) == 0 {
		prefixes = DefaultProtectedPrefixes()
	}
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return &Guard{prefixes: prefixes, loginPath: loginPath}
}

// Decide возвращает решение для пути path и значения флага flag.
// Совпадение с префиксом проверяется как startsWith, поэтому /orders-archive тоже защищён.
func (g *Guard) Decide(path, flag string) Decision {
	if flag == cookie.FlagValue || !g.Protected(path) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: g.loginPath}
}

// Protected сообщает, относится ли path к защищённым маршрутам.
func (g *Guard) Protected(path string) bool {
	for _, p := range g.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// FlagReader читает сырое значение флага авторизации.
type FlagReader interface {
	ReadFlag(r *http.Request) string
}

// Middleware применяет защиту к каждому запросу.
// Перенаправление выполняется кодом 307, метод и тело запроса сохраняются.
func Middleware(log *slog.Logger, g *Guard, flags FlagReader, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g.Decide(r.URL.Path, flags.ReadFlag(r))
			if d.Allowed {
				m.GuardDecision(metrics.DecisionAllow)
				next.ServeHTTP(w, r)
				return
			}

			m.GuardDecision(metrics.DecisionRedirect)
			sl.ForRequest(log, "guard.Middleware", r).Info("redirecting unauthenticated request",
				slog.String("path", r.URL.Path),
				slog.String("target", d.Redirect),
			)
			http.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
		})
	}
}
