// Package marketplaceapi is the HTTP client of the marketplace REST API.
package marketplaceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

const maxErrorBody = 4 << 10

var (
	_ ports.OrderGateway   = (*Client)(nil)
	_ ports.ProductGateway = (*Client)(nil)
)

// APIError is a non-2xx answer of the marketplace.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace API: %d %s", e.StatusCode, e.Message)
}

// Client calls the marketplace on behalf of one authenticated session.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	newKey     func() string
}

// NewClient validates the base URL. A nil httpClient gets a 10 second timeout.
func NewClient(baseURL, token string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("marketplace base URL is required")
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse marketplace base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("marketplace base URL %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    parsed,
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
		newKey:     uuid.NewString,
	}, nil
}

// ListProducerOrders calls GET /api/orders/producer-orders.
func (c *Client) ListProducerOrders(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := c.do(ctx, http.MethodGet, "/api/orders/producer-orders", nil, nil, &dtos); err != nil {
		return nil, err
	}
	return mapAll(dtos, orderToDomain)
}

// UpdateOrderStatus calls PUT /api/orders/{orderId}/status?status=NEW.
func (c *Client) UpdateOrderStatus(ctx context.Context, id kernel.ID, status order.Status) (*order.Order, error) {
	path, err := pathWithID("/api/orders/%s/status", "orderId", id)
	if err != nil {
		return nil, err
	}
	params, err := formQuery(map[string]any{"status": status.String()})
	if err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err = c.do(ctx, http.MethodPut, path, params, nil, &dto); err != nil {
		return nil, err
	}
	return orderToDomain(dto)
}

// ListPendingGroups calls GET /api/products/pending.
func (c *Client) ListPendingGroups(
	ctx context.Context,
	req query.PageRequest,
	sort query.SortDescriptor,
) (query.Page[product.PendingGroup], error) {
	params, err := pageQuery(req, sort)
	if err != nil {
		return query.Page[product.PendingGroup]{}, err
	}

	var dto PageDTO[PendingGroupDTO]
	if err = c.do(ctx, http.MethodGet, "/api/products/pending", params, nil, &dto); err != nil {
		return query.Page[product.PendingGroup]{}, err
	}

	groups, err := groupsToDomain(dto.Content)
	if err != nil {
		return query.Page[product.PendingGroup]{}, err
	}
	return query.Page[product.PendingGroup]{Items: groups, Page: pageDescriptor(dto)}, nil
}

// ListMyProducts calls GET /api/products/my-products.
func (c *Client) ListMyProducts(
	ctx context.Context,
	req query.PageRequest,
	sort query.SortDescriptor,
) (query.Page[*product.Product], error) {
	params, err := pageQuery(req, sort)
	if err != nil {
		return query.Page[*product.Product]{}, err
	}

	var dto PageDTO[ProductDTO]
	if err = c.do(ctx, http.MethodGet, "/api/products/my-products", params, nil, &dto); err != nil {
		return query.Page[*product.Product]{}, err
	}

	products, err := mapAll(dto.Content, productToDomain)
	if err != nil {
		return query.Page[*product.Product]{}, err
	}
	return query.Page[*product.Product]{Items: products, Page: pageDescriptor(dto)}, nil
}

// ApproveProduct calls POST /api/products/{productId}/approve.
func (c *Client) ApproveProduct(ctx context.Context, id kernel.ID) (*product.Product, error) {
	path, err := pathWithID("/api/products/%s/approve", "productId", id)
	if err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err = c.do(ctx, http.MethodPost, path, nil, nil, &dto); err != nil {
		return nil, err
	}
	return productToDomain(dto)
}

// DeclineProduct calls POST /api/products/{productId}/decline with {"reason"}.
func (c *Client) DeclineProduct(ctx context.Context, id kernel.ID, reason product.DeclineReason) (*product.Product, error) {
	path, err := pathWithID("/api/products/%s/decline", "productId", id)
	if err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err = c.do(ctx, http.MethodPost, path, nil, declineRequest{Reason: reason.String()}, &dto); err != nil {
		return nil, err
	}
	return productToDomain(dto)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL.JoinPath(path)
	target.RawQuery = params.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", c.newKey())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call marketplace API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode marketplace response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := http.StatusText(resp.StatusCode)
	var body errorDTO
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case strings.TrimSpace(body.Message) != "":
			message = strings.TrimSpace(body.Message)
		case strings.TrimSpace(body.Error) != "":
			message = strings.TrimSpace(body.Error)
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		message = text
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

func pathWithID(format, name string, id kernel.ID) (string, error) {
	styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, id.Int64())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(format, styled), nil
}

func pageQuery(req query.PageRequest, sort query.SortDescriptor) (url.Values, error) {
	params := map[string]any{
		"page": req.Index,
		"size": req.Size,
	}
	if sort.Field != "" {
		params["sortBy"] = sort.Field
		params["direction"] = sort.Direction.String()
	}
	return formQuery(params)
}

func formQuery(params map[string]any) (url.Values, error) {
	values := url.Values{}
	for name, value := range params {
		fragment, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
		if err != nil {
			return nil, err
		}
		parsed, err := url.ParseQuery(fragment)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			values[k] = append(values[k], v...)
		}
	}
	return values, nil
}
