// Package inventory is a client for the upstream product search and filter API.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Lixing-Zhang/inventory-search/internal/models"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	SearchPath = "/get-product/search"
	FilterPath = "/get-product/filter"

	// maxErrorBody bounds how much of a failed response is kept for logging
	maxErrorBody = 512
)

var (
	ErrNoToken = errors.New("no token found")
)

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// ErrorAttrs returns slog attributes describing err, including the upstream
// status and response body when err carries a *StatusError
func ErrorAttrs(err error) []any {
	attrs := []any{"error", err}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, "status", statusErr.StatusCode, "body", statusErr.Body)
	}
	return attrs
}

// Client issues authenticated requests against the inventory API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SearchURL builds the search endpoint URL; an empty name lists everything
func (c *Client) SearchURL(name string) string {
	if name == "" {
		return c.baseURL + SearchPath
	}
	return c.baseURL + SearchPath + "?" + url.Values{"nama": {name}}.Encode()
}

// FilterURL builds the category filter endpoint URL
func (c *Client) FilterURL(category string) string {
	return c.baseURL + FilterPath + "?" + url.Values{"kategori": {category}}.Encode()
}

// Search returns products whose name matches name
func (c *Client) Search(ctx context.Context, token, name string) ([]models.Product, error) {
	return c.Fetch(ctx, token, c.SearchURL(name))
}

// Filter returns products in the given category
func (c *Client) Filter(ctx context.Context, token, category string) ([]models.Product, error) {
	return c.Fetch(ctx, token, c.FilterURL(category))
}

// Fetch performs a GET on rawURL with the bearer token and decodes the product list.
// No request is made when token is empty.
func (c *Client) Fetch(ctx context.Context, token, rawURL string) ([]models.Product, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, requestID(ctx))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("inventory request",
		"url", rawURL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var list models.ProductList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return list.Products, nil
}

// requestID reuses the incoming request id so upstream logs can be correlated
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
