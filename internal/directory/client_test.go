package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/metrics"
	"github.com/magabrotheeeer/storefront/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := metrics.New(prometheus.NewRegistry())
	return NewClient(srv.URL+"/", time.Second, m), m
}

func TestFindByEmail(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantUsers []models.User
		wantErr   error
	}{
		{
			name:      "match",
			status:    http.StatusOK,
			body:      `[{"email":"a@x.com","password":"p1"}]`,
			wantUsers: []models.User{{Email: "a@x.com", Password: "p1"}},
		},
		{
			name:      "no match",
			status:    http.StatusOK,
			body:      `[]`,
			wantUsers: []models.User{},
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: ErrUnexpectedStatus,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"email":`,
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/users", r.URL.Path)
				assert.Equal(t, "a@x.com", r.URL.Query().Get("email"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			users, err := c.FindByEmail(context.Background(), "a@x.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsers, users)
		})
	}
}

func TestFindByEmail_StatusErrorCarriesCode(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.FindByEmail(context.Background(), "a@x.com")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(m.DirectoryDuration))
}

func TestFindByEmail_Network(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.FindByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFindByEmail_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "created", status: http.StatusCreated, body: `{"email":"a@x.com","password":"p1"}`},
		{name: "created without body", status: http.StatusNoContent},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrUnexpectedStatus},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/users", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var u models.User
				require.NoError(t, json.NewDecoder(r.Body).Decode(&u))
				assert.Equal(t, models.User{Email: "a@x.com", Password: "p1"}, u)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			created, err := c.CreateUser(context.Background(), models.User{Email: "a@x.com", Password: "p1"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", created.Email)
		})
	}
}

func TestOrders(t *testing.T) {
	order := models.Order{
		ID:            1,
		TransactionID: 1001,
		Date:          "2024-03-01",
		Status:        "Completed",
		GameName:      "Star Quest",
		GameID:        7,
		Amount:        19.99,
		Goods:         models.Goods{Item1: 1, Count: 2, PlusCount: 1, Total: 3, ItemDiscount: 10},
	}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			_ = json.NewEncoder(w).Encode([]models.Order{order})
		case "/orders/1":
			_ = json.NewEncoder(w).Encode(order)
		default:
			http.NotFound(w, r)
		}
	})

	orders, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Order{order}, orders)

	got, err := c.GetOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = c.GetOrder(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
