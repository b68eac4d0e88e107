// Package session хранит состояние посетителя витрины: текущего пользователя,
// признак авторизации, валюту и язык. Состояние загружается на каждый запрос
// из Registry и доступно обработчикам через контекст.
package session

import (
	"sync"

	"github.com/magabrotheeeer/storefront/internal/models"
)

// State снимок состояния сессии.
//
// Инвариант: IsAuthenticated == (User != nil).
type State struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Currency        string       `json:"currency"`
	Language        string       `json:"language"`
}

// NewState возвращает состояние новой сессии.
func NewState() State {
	return State{
		Currency: models.CurrencyUSD,
		Language: models.LanguageEN,
	}
}

// Store изменяемое состояние одной сессии. Безопасен для конкурентного использования.
type Store struct {
	mu    sync.Mutex
	id    string
	state State
	dirty bool
}

// NewStore создаёт хранилище сессии id с начальным состоянием state.
func NewStore(id string, state State) *Store {
	if state.User != nil {
		u := *state.User
		state.User = &u
	}
	return &Store{id: id, state: state}
}

// ID возвращает идентификатор посетителя.
func (s *Store) ID() string {
	return s.id
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// SetCurrency меняет валюту отображения. Значение не проверяется.
func (s *Store) SetCurrency(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Currency != v {
		s.state.Currency = v
		s.dirty = true
	}
}

// SetLanguage меняет язык интерфейса. Значение не проверяется.
func (s *Store) SetLanguage(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Language != v {
		s.state.Language = v
		s.dirty = true
	}
}

// Commit записывает пользователя и признак авторизации одним действием.
// Пароль в сессии не хранится.
func (s *Store) Commit(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pub := u.Public()
	s.state.User = &pub
	s.state.IsAuthenticated = true
	s.dirty = true
}

// Clear сбрасывает пользователя и признак авторизации. Валюта и язык сохраняются.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil && !s.state.IsAuthenticated {
		return
	}
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.dirty = true
}

// Dirty сообщает, есть ли несохранённые изменения.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// snapshotForSave возвращает состояние и сбрасывает признак изменений.
func (s *Store) snapshotForSave() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	s.dirty = false
	return st
}

// markDirty возвращает признак изменений после неудачного сохранения.
func (s *Store) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}
