package session

import (
	"context"
	"fmt"
	"time"
)

const keyPrefix = "session:"

// JSONCache хранилище JSON-значений с временем жизни (internal/cache).
type JSONCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// RedisRegistry хранит состояния сессий в redis под ключами session:<id>.
type RedisRegistry struct {
	cache JSONCache
	ttl   time.Duration
}

// NewRedisRegistry создаёт реестр поверх кеша.
func NewRedisRegistry(cache JSONCache, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{cache: cache, ttl: ttl}
}

// Load возвращает состояние посетителя или ErrNotFound.
func (r *RedisRegistry) Load(ctx context.Context, id string) (State, error) {
	const op = "session.RedisRegistry.Load"

	var st State
	found, err := r.cache.Get(ctx, keyPrefix+id, &st)
	if err != nil {
		return State{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return State{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return st, nil
}

// Save сохраняет состояние с временем жизни реестра.
func (r *RedisRegistry) Save(ctx context.Context, id string, state State) error {
	const op = "session.RedisRegistry.Save"
	if err := r.cache.Set(ctx, keyPrefix+id, state, r.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет состояние посетителя.
func (r *RedisRegistry) Delete(ctx context.Context, id string) error {
	const op = "session.RedisRegistry.Delete"
	if err := r.cache.Invalidate(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
