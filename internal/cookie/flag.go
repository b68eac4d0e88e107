package cookie

import (
	"net/http"
)

const (
	// FlagName имя куки флага авторизации.
	FlagName = "isAuthenticated"
	// FlagValue единственное значение, означающее авторизованного посетителя.
	FlagValue = "true"
)

// SetFlag выставляет флаг авторизации. Кука доступна скриптам страницы.
// Префикс из конфига к флагу не применяется: имя isAuthenticated фиксировано.
func (m *Manager) SetFlag(w http.ResponseWriter) {
	httpOnly := false
	m.write(w, FlagName, Options{
		Name:     FlagName,
		Value:    FlagValue,
		Path:     "/",
		MaxAge:   m.cfg.FlagMaxAge,
		HTTPOnly: &httpOnly,
	})
}

// ClearFlag удаляет флаг авторизации.
func (m *Manager) ClearFlag(w http.ResponseWriter) {
	m.remove(w, FlagName, "/")
}

// ReadFlag возвращает сырое значение флага, пустую строку при его отсутствии.
func (m *Manager) ReadFlag(r *http.Request) string {
	v, err := m.read(r, FlagName)
	if err != nil {
		return ""
	}
	return v
}

// IsAuthenticated сообщает, выставлен ли флаг в значение "true".
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	return m.ReadFlag(r) == FlagValue
}

// Flag привязывает флаг авторизации к конкретному ответу.
// Реализует интерфейс флага сервиса авторизации.
type Flag struct {
	m *Manager
	w http.ResponseWriter
}

// FlagFor возвращает флаг, пишущий куки в ответ w.
func (m *Manager) FlagFor(w http.ResponseWriter) *Flag {
	return &Flag{m: m, w: w}
}

// Set выставляет флаг.
func (f *Flag) Set() { f.m.SetFlag(f.w) }

// Clear удаляет флаг.
func (f *Flag) Clear() { f.m.ClearFlag(f.w) }
