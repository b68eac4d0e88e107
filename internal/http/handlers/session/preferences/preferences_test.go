package preferences

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/session"
)

type PersisterMock struct {
	mock.Mock
}

func (m *PersisterMock) Persist(ctx context.Context, store *session.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestPreferences(t *testing.T) {
	tests := []struct {
		name         string
		newHandler   func(*slog.Logger, Persister) *Handler
		body         string
		wantCode     int
		wantCurrency string
		wantLanguage string
		wantPersist  bool
	}{
		{name: "currency", newHandler: NewCurrency, body: `{"value":"EUR"}`, wantCode: http.StatusOK, wantCurrency: "EUR", wantLanguage: "EN", wantPersist: true},
		{name: "language", newHandler: NewLanguage, body: `{"value":"UA"}`, wantCode: http.StatusOK, wantCurrency: "USD", wantLanguage: "UA", wantPersist: true},
		{name: "any string accepted", newHandler: NewCurrency, body: `{"value":"GBP"}`, wantCode: http.StatusOK, wantCurrency: "GBP", wantLanguage: "EN", wantPersist: true},
		{name: "empty value", newHandler: NewCurrency, body: `{"value":""}`, wantCode: http.StatusUnprocessableEntity, wantCurrency: "USD", wantLanguage: "EN"},
		{name: "bad json", newHandler: NewLanguage, body: `{`, wantCode: http.StatusBadRequest, wantCurrency: "USD", wantLanguage: "EN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persister := new(PersisterMock)
			if tt.wantPersist {
				persister.On("Persist", mock.Anything, mock.Anything).Return(nil).Once()
			}
			h := tt.newHandler(newNoopLogger(), persister)

			store := session.NewStore("v1", session.NewState())
			req := httptest.NewRequest(http.MethodPut, "/api/v1/session/x", strings.NewReader(tt.body))
			req = req.WithContext(session.WithStore(req.Context(), store))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			st := store.Snapshot()
			assert.Equal(t, tt.wantCurrency, st.Currency)
			assert.Equal(t, tt.wantLanguage, st.Language)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "OK", got["status"])
			} else {
				assert.Equal(t, "Error", got["status"])
			}
			persister.AssertExpectations(t)
		})
	}
}
