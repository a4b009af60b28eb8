// Package client is the Go API client for the bakery orders service, used by
// the terminal staff dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/forno-rosati/bakery-orders-service/internal/apperrors"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// Client talks JSON to the orders API. The cookie jar carries the staff
// cookie across calls after Login. Every method takes a context so callers
// can abandon in-flight requests on teardown.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Login performs the shared-password check and stores the staff cookie.
func (c *Client) Login(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", body, nil)
}

// ListOrders fetches all orders, newest first.
func (c *Client) ListOrders(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder sends a partial update. Only the keys present in patch are
// touched server-side.
func (c *Client) UpdateOrder(ctx context.Context, id int64, patch map[string]interface{}) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/api/orders/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, patch, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkCompleted flips an order to the completed status.
func (c *Client) MarkCompleted(ctx context.Context, id int64) (*models.Order, error) {
	return c.UpdateOrder(ctx, id, map[string]interface{}{
		"status": string(models.OrderStatusCompleted),
	})
}

// DeleteOrder removes an order and returns the deleted record.
func (c *Client) DeleteOrder(ctx context.Context, id int64) (*models.Order, error) {
	var resp struct {
		Success bool          `json:"success"`
		Deleted *models.Order `json:"deleted"`
	}
	path := fmt.Sprintf("/api/orders/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Deleted, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) decodeError(resp *http.Response) error {
	var envelope struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusUnauthorized:
		return apperrors.ErrInvalidCredentials
	case http.StatusBadRequest:
		return apperrors.NewValidationError("request", envelope.Error)
	default:
		if envelope.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, envelope.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
}
