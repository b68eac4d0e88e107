package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/config"
)

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestManager_Set(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.Cookie
		env          string
		opts         Options
		wantName     string
		wantPath     string
		wantDomain   string
		wantSameSite http.SameSite
		wantHTTPOnly bool
		wantMaxAge   int
	}{
		{
			name:         "defaults",
			cfg:          config.Cookie{},
			opts:         Options{Name: "sid", Value: "v"},
			wantName:     "sid",
			wantPath:     "/",
			wantSameSite: http.SameSiteLaxMode,
			wantHTTPOnly: true,
		},
		{
			name:         "prefix and strict",
			cfg:          config.Cookie{Prefix: "shop", SameSite: "strict", DefaultPath: "/app"},
			opts:         Options{Name: "sid", Value: "v", MaxAge: time.Hour},
			wantName:     "shop_sid",
			wantPath:     "/app",
			wantSameSite: http.SameSiteStrictMode,
			wantHTTPOnly: true,
			wantMaxAge:   3600,
		},
		{
			name:         "domain only in prod",
			cfg:          config.Cookie{Domain: "shop.example", SameSite: "none"},
			env:          config.EnvProd,
			opts:         Options{Name: "sid", Value: "v", Path: "/x"},
			wantName:     "sid",
			wantPath:     "/x",
			wantDomain:   "shop.example",
			wantSameSite: http.SameSiteNoneMode,
			wantHTTPOnly: true,
		},
		{
			name:         "domain ignored locally",
			cfg:          config.Cookie{Domain: "shop.example"},
			env:          config.EnvLocal,
			opts:         Options{Name: "sid", Value: "v"},
			wantName:     "sid",
			wantPath:     "/",
			wantSameSite: http.SameSiteLaxMode,
			wantHTTPOnly: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.cfg, tt.env)
			rec := httptest.NewRecorder()

			require.NoError(t, m.Set(rec, tt.opts))

			c := responseCookie(t, rec, tt.wantName)
			assert.Equal(t, tt.opts.Value, c.Value)
			assert.Equal(t, tt.wantPath, c.Path)
			assert.Equal(t, tt.wantDomain, c.Domain)
			assert.Equal(t, tt.wantSameSite, c.SameSite)
			assert.Equal(t, tt.wantHTTPOnly, c.HttpOnly)
			assert.Equal(t, tt.wantMaxAge, c.MaxAge)
		})
	}
}

func TestManager_SetEmptyName(t *testing.T) {
	m := NewManager(config.Cookie{}, "")
	err := m.Set(httptest.NewRecorder(), Options{Value: "v"})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestManager_GetAndDelete(t *testing.T) {
	m := NewManager(config.Cookie{Prefix: "shop"}, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "shop_sid", Value: "abc"})

	v, err := m.Get(req, "sid")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = m.Get(req, "missing")
	assert.ErrorIs(t, err, http.ErrNoCookie)

	rec := httptest.NewRecorder()
	m.Delete(rec, "sid", "")
	c := responseCookie(t, rec, "shop_sid")
	assert.Equal(t, -1, c.MaxAge)
	assert.Empty(t, c.Value)
	assert.Equal(t, "/", c.Path)
}

func TestFlag(t *testing.T) {
	m := NewManager(config.Cookie{}, "")

	t.Run("set writes readable session cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.FlagFor(rec).Set()

		c := responseCookie(t, rec, FlagName)
		assert.Equal(t, FlagValue, c.Value)
		assert.Equal(t, "/", c.Path)
		assert.False(t, c.HttpOnly)
		assert.Zero(t, c.MaxAge)
	})

	t.Run("max age from config", func(t *testing.T) {
		m := NewManager(config.Cookie{FlagMaxAge: 24 * time.Hour}, "")
		rec := httptest.NewRecorder()
		m.SetFlag(rec)

		c := responseCookie(t, rec, FlagName)
		assert.Equal(t, 86400, c.MaxAge)
	})

	t.Run("clear expires cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.FlagFor(rec).Clear()

		c := responseCookie(t, rec, FlagName)
		assert.Equal(t, -1, c.MaxAge)
		assert.Equal(t, "/", c.Path)
	})

	t.Run("read", func(t *testing.T) {
		tests := []struct {
			name   string
			cookie *http.Cookie
			want   string
			auth   bool
		}{
			{name: "absent", want: "", auth: false},
			{name: "true", cookie: &http.Cookie{Name: FlagName, Value: "true"}, want: "true", auth: true},
			{name: "other value", cookie: &http.Cookie{Name: FlagName, Value: "TRUE"}, want: "TRUE", auth: false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if tt.cookie != nil {
					req.AddCookie(tt.cookie)
				}
				assert.Equal(t, tt.want, m.ReadFlag(req))
				assert.Equal(t, tt.auth, m.IsAuthenticated(req))
			})
		}
	})
}

func TestFlag_IgnoresPrefix(t *testing.T) {
	m := NewManager(config.Cookie{Prefix: "sf"}, "")

	rec := httptest.NewRecorder()
	m.FlagFor(rec).Set()
	c := responseCookie(t, rec, FlagName)
	assert.Equal(t, FlagValue, c.Value)
	for _, ck := range rec.Result().Cookies() {
		assert.NotEqual(t, "sf_"+FlagName, ck.Name)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlagName, Value: FlagValue})
	assert.True(t, m.IsAuthenticated(req))

	prefixed := httptest.NewRequest(http.MethodGet, "/", nil)
	prefixed.AddCookie(&http.Cookie{Name: "sf_" + FlagName, Value: FlagValue})
	assert.False(t, m.IsAuthenticated(prefixed))

	rec = httptest.NewRecorder()
	m.FlagFor(rec).Clear()
	assert.Equal(t, -1, responseCookie(t, rec, FlagName).MaxAge)

	rec = httptest.NewRecorder()
	require.NoError(t, m.Set(rec, Options{Name: "sid", Value: "token"}))
	assert.Equal(t, "token", responseCookie(t, rec, "sf_sid").Value)
}
