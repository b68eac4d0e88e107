package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound возвращается, если для посетителя нет сохранённого состояния.
var ErrNotFound = errors.New("session not found")

// Registry хранит состояния сессий между запросами.
type Registry interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryRegistry хранит состояния в памяти процесса.
type MemoryRegistry struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryRegistry создаёт реестр в памяти. ttl <= 0 означает хранение без срока.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Load возвращает состояние посетителя или ErrNotFound.
func (m *MemoryRegistry) Load(_ context.Context, id string) (State, error) {
	const op = "session.MemoryRegistry.Load"

	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok || (!e.expiresAt.IsZero() && m.now().After(e.expiresAt)) {
		return State{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return e.state, nil
}

// Save сохраняет состояние и продлевает срок жизни.
func (m *MemoryRegistry) Save(_ context.Context, id string, state State) error {
	e := memoryEntry{state: state}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()
	return nil
}

// Delete удаляет состояние посетителя.
func (m *MemoryRegistry) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Purge удаляет просроченные записи и возвращает их количество.
func (m *MemoryRegistry) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, e := range m.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}
