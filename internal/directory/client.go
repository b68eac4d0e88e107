// Package directory реализует HTTP-клиент каталога пользователей и заказов.
//
// Каталог является простым REST-сервисом: он хранит записи и возвращает их по запросу,
// никакой логики проверки паролей на его стороне нет.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/storefront/internal/metrics"
	"github.com/magabrotheeeer/storefront/internal/models"
)

// Client обращается к каталогу по HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewClient создаёт клиент каталога с адресом baseURL и таймаутом timeout.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

// FindByEmail возвращает записи с точным совпадением email. Пустой срез, если таких нет.
func (c *Client) FindByEmail(ctx context.Context, email string) (users []models.User, err error) {
	const op = "directory.FindByEmail"
	defer c.observe("find_by_email", time.Now(), &err)

	q := url.Values{}
	q.Set("email", email)

	users = []models.User{}
	if err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// CreateUser добавляет запись пользователя в каталог.
func (c *Client) CreateUser(ctx context.Context, user models.User) (created models.User, err error) {
	const op = "directory.CreateUser"
	defer c.observe("create_user", time.Now(), &err)

	if err := c.do(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if created.Email == "" {
		created = user
	}
	return created, nil
}

// ListOrders возвращает историю заказов.
func (c *Client) ListOrders(ctx context.Context) (orders []models.Order, err error) {
	const op = "directory.ListOrders"
	defer c.observe("list_orders", time.Now(), &err)

	orders = []models.Order{}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// GetOrder возвращает заказ по идентификатору или ErrNotFound.
func (c *Client) GetOrder(ctx context.Context, id int) (order models.Order, err error) {
	const op = "directory.GetOrder"
	defer c.observe("get_order", time.Now(), &err)

	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.Itoa(id), nil, &order); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
		reqBody = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet && !strings.HasPrefix(path, "/users") {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) observe(operation string, started time.Time, err *error) {
	c.metrics.DirectoryCall(operation, started, *err)
}
