package marketplaceapi_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"marketplace/internal/adapters/out/marketplaceapi"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderJSON = `{
	"id": 42,
	"customerId": 7,
	"customerName": "Ann Lee",
	"items": [{"productId": 3, "productName": "Wild Honey", "quantity": 2, "price": 12.5}],
	"totalPrice": "25.00",
	"status": "%s",
	"createdAt": "2024-05-01T10:00:00Z",
	"updatedAt": "2024-05-02T10:00:00Z"
}`

func productJSON(id int, status, reason string) string {
	declineReason := "null"
	if reason != "" {
		declineReason = `"` + reason + `"`
	}
	return `{
		"id": ` + strconv.Itoa(id) + `,
		"name": "Product ` + strconv.Itoa(id) + `",
		"description": "",
		"price": 4.2,
		"quantity": 3,
		"status": "` + status + `",
		"declineReason": ` + declineReason + `,
		"imageUrl": "https://img.example/p.png",
		"createdAt": "2024-05-01T10:00:00Z",
		"producer": {"id": 10, "name": "Green Farm"},
		"categories": [{"id": 1, "name": "Dairy"}]
	}`
}

func newClient(t *testing.T, handler http.HandlerFunc) *marketplaceapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := marketplaceapi.NewClient(server.URL+"/", "secret-token", server.Client())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a url", "/relative"} {
		_, err := marketplaceapi.NewClient(raw, "", nil)
		require.Error(t, err, raw)
	}
}

func TestClient_ListProducerOrders(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/orders/producer-orders", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		_, _ = io.WriteString(w, "["+fmt.Sprintf(orderJSON, "PROCESSING")+"]")
	})

	orders, err := client.ListProducerOrders(t.Context())

	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, kernel.ID(42), o.ID())
	assert.Equal(t, order.Processing, o.Status())
	assert.Equal(t, "Ann Lee", o.Customer().Name)
	assert.Equal(t, "25.00", o.TotalPrice().String())
	assert.Equal(t, []string{"Wild Honey"}, o.ProductNames())
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	t.Run("should send the new status and return the server record", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/orders/42/status", r.URL.Path)
			assert.Equal(t, "SHIPPED", r.URL.Query().Get("status"))
			_, err := uuid.Parse(r.Header.Get("Idempotency-Key"))
			assert.NoError(t, err)
			_, _ = io.WriteString(w, fmt.Sprintf(orderJSON, "SHIPPED"))
		})

		updated, err := client.UpdateOrderStatus(t.Context(), 42, order.Shipped)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, updated.Status())
	})

	t.Run("should surface the server message", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"status":409,"error":"Conflict","message":"Order already delivered"}`)
		})

		_, err := client.UpdateOrderStatus(t.Context(), 42, order.Shipped)

		var apiErr *marketplaceapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, "Order already delivered", apiErr.Message)
	})

	t.Run("should fall back to a plain body", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream down")
		})

		_, err := client.UpdateOrderStatus(t.Context(), 42, order.Shipped)
		require.EqualError(t, err, "marketplace API: 502 upstream down")
	})

	t.Run("should reject an invalid record", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, fmt.Sprintf(orderJSON, "TELEPORTED"))
		})

		_, err := client.UpdateOrderStatus(t.Context(), 42, order.Shipped)
		require.Error(t, err)
	})
}

func TestClient_ListPendingGroups(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/products/pending", r.URL.Path)
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "5", q.Get("size"))
		assert.Equal(t, "createdAt", q.Get("sortBy"))
		assert.Equal(t, "desc", q.Get("direction"))
		_, _ = io.WriteString(w, `{
			"content": [
				{"producer": {"id": 10, "name": "Green Farm"}, "products": [`+productJSON(1, "PENDING", "")+`,`+productJSON(2, "APPROVED", "")+`]},
				{"producer": {"id": 11, "name": "Empty Farm"}, "products": []}
			],
			"number": 1, "size": 5, "totalElements": 7, "totalPages": 2, "first": false, "last": true
		}`)
	})

	page, err := client.ListPendingGroups(t.Context(),
		query.PageRequest{Index: 1, Size: 5},
		query.SortDescriptor{Field: "createdAt", Direction: query.Desc})

	require.NoError(t, err)
	require.Len(t, page.Items, 1, "groups without pending products are dropped")
	assert.Equal(t, kernel.ID(10), page.Items[0].Producer.ID)
	assert.Equal(t, 1, page.Items[0].ProductCount())
	assert.Equal(t, query.PageDescriptor{Index: 1, Size: 5, TotalElements: 7, TotalPages: 2, First: false, Last: true}, page.Page)
}

func TestClient_ListMyProducts(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/my-products", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("sortBy"), "no sort parameter without a sort field")
		_, _ = io.WriteString(w, `{"content": [`+productJSON(5, "DECLINED", "blurry photo")+`],
			"number": 0, "size": 20, "totalElements": 1, "totalPages": 1, "first": true, "last": true}`)
	})

	page, err := client.ListMyProducts(t.Context(), query.PageRequest{Index: 0, Size: 20}, query.SortDescriptor{})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, product.Declined, page.Items[0].Status())
	assert.Equal(t, product.DeclineReason("blurry photo"), page.Items[0].DeclineReason())
	assert.True(t, page.Page.First)
}

func TestClient_Moderation(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/products/5/approve", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
			_, _ = io.WriteString(w, productJSON(5, "APPROVED", ""))
		})

		p, err := client.ApproveProduct(t.Context(), 5)
		require.NoError(t, err)
		assert.Equal(t, product.Approved, p.Status())
	})

	t.Run("decline", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/5/decline", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"reason": "blurry photo"}, body)
			_, _ = io.WriteString(w, productJSON(5, "DECLINED", "blurry photo"))
		})

		p, err := client.DeclineProduct(t.Context(), 5, "blurry photo")
		require.NoError(t, err)
		assert.Equal(t, product.Declined, p.Status())
	})
}
