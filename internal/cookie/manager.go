// Package cookie содержит менеджер кук витрины и работу с флагом авторизации,
// который переживает перезагрузку страницы и читается защитой маршрутов.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/storefront/internal/config"
)

// ErrEmptyName возвращается при попытке установить куку без имени.
var ErrEmptyName = errors.New("cookie name must not be empty")

// Options описывает параметры устанавливаемой куки.
type Options struct {
	Name     string
	Value    string
	MaxAge   time.Duration // 0 — сессионная кука
	Path     string        // пусто — путь по умолчанию из конфига
	HTTPOnly *bool         // nil — HttpOnly включён
}

// Manager устанавливает, читает и удаляет куки с учётом префикса и политики безопасности.
type Manager struct {
	cfg config.Cookie
	env string
}

// NewManager создаёт менеджер кук. env нужен для выбора домена в prod.
func NewManager(cfg config.Cookie, env string) *Manager {
	if cfg.DefaultPath == "" {
		cfg.DefaultPath = "/"
	}
	return &Manager{cfg: cfg, env: env}
}

// Name возвращает фактическое имя куки с учётом префикса.
func (m *Manager) Name(name string) string {
	if m.cfg.Prefix == "" {
		return name
	}
	return fmt.Sprintf("%s_%s", m.cfg.Prefix, name)
}

// Set записывает куку в ответ.
func (m *Manager) Set(w http.ResponseWriter, opts Options) error {
	if opts.Name == "" {
		return ErrEmptyName
	}
	m.write(w, m.Name(opts.Name), opts)
	return nil
}

// write выставляет куку с уже вычисленным именем name.
func (m *Manager) write(w http.ResponseWriter, name string, opts Options) {
	path := opts.Path
	if path == "" {
		path = m.cfg.DefaultPath
	}
	httpOnly := true
	if opts.HTTPOnly != nil {
		httpOnly = *opts.HTTPOnly
	}

	c := &http.Cookie{
		Name:     name,
		Value:    opts.Value,
		Path:     path,
		Domain:   m.domain(),
		Secure:   m.cfg.Secure,
		HttpOnly: httpOnly,
		SameSite: m.sameSite(),
	}
	if opts.MaxAge > 0 {
		c.MaxAge = int(opts.MaxAge.Seconds())
		c.Expires = time.Now().Add(opts.MaxAge)
	}
	http.SetCookie(w, c)
}

// Get возвращает значение куки из запроса.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	return m.read(r, m.Name(name))
}

func (m *Manager) read(r *http.Request, cookieName string) (string, error) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", fmt.Errorf("cookie %s not found: %w", cookieName, err)
		}
		return "", fmt.Errorf("failed to get cookie %s: %w", cookieName, err)
	}
	return c.Value, nil
}

// Delete удаляет куку, выставляя её с истёкшим сроком действия.
func (m *Manager) Delete(w http.ResponseWriter, name, path string) {
	m.remove(w, m.Name(name), path)
}

func (m *Manager) remove(w http.ResponseWriter, name, path string) {
	if path == "" {
		path = m.cfg.DefaultPath
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Domain:   m.domain(),
		Secure:   m.cfg.Secure,
		HttpOnly: true,
		SameSite: m.sameSite(),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

func (m *Manager) domain() string {
	if m.env == config.EnvProd && m.cfg.Domain != "" {
		return m.cfg.Domain
	}
	return ""
}

func (m *Manager) sameSite() http.SameSite {
	switch m.cfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
