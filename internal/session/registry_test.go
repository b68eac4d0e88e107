package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/cache"
	"github.com/magabrotheeeer/storefront/internal/config"
	"github.com/magabrotheeeer/storefront/internal/models"
)

func authenticatedState() State {
	st := NewState()
	st.User = &models.User{Email: "a@x.com"}
	st.IsAuthenticated = true
	st.Currency = "EUR"
	return st
}

func TestMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	reg := NewMemoryRegistry(time.Hour)
	reg.now = func() time.Time { return now }

	_, err := reg.Load(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, reg.Save(ctx, "v1", authenticatedState()))
	got, err := reg.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, authenticatedState(), got)

	now = now.Add(2 * time.Hour)
	_, err = reg.Load(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, reg.Purge())

	require.NoError(t, reg.Save(ctx, "v2", NewState()))
	require.NoError(t, reg.Delete(ctx, "v2"))
	_, err = reg.Load(ctx, "v2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistry_NoTTL(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry(0)
	require.NoError(t, reg.Save(ctx, "v1", NewState()))

	reg.now = func() time.Time { return time.Now().Add(1000 * time.Hour) }
	_, err := reg.Load(ctx, "v1")
	assert.NoError(t, err)
	assert.Zero(t, reg.Purge())
}

func TestRedisRegistry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	reg := NewRedisRegistry(c, 30*time.Minute)

	_, err = reg.Load(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, reg.Save(ctx, "v1", authenticatedState()))
	assert.True(t, mr.Exists("session:v1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:v1"))

	got, err := reg.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, authenticatedState(), got)

	require.NoError(t, reg.Delete(ctx, "v1"))
	_, err = reg.Load(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mr.Set("session:broken", "{"))
	_, err = reg.Load(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
