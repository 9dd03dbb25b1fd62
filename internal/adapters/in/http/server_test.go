package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/openapi"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/store"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, id kernel.ID, status order.Status, price string) *order.Order {
	t.Helper()
	money, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	item, err := order.NewItem(7, "Honey", 1, money)
	require.NoError(t, err)
	o, err := order.RestoreOrder(id, order.Customer{ID: 3, Name: "Ann"}, []order.Item{item}, item.Subtotal(),
		status, baseTime, baseTime)
	require.NoError(t, err)
	return o
}

func newProduct(t *testing.T, id, producerID kernel.ID, status product.ModerationStatus, reason product.DeclineReason) *product.Product {
	t.Helper()
	price, err := kernel.MoneyFromString("4.20")
	require.NoError(t, err)
	p, err := product.RestoreProduct(id,
		product.Producer{ID: producerID, Name: "Farm " + producerID.String()},
		product.Details{Name: "Product " + id.String(), Price: price, Quantity: 3},
		product.Moderation{Status: status, Reason: reason},
		[]product.Category{{ID: 1, Name: "Dairy"}},
		"",
		baseTime,
	)
	require.NoError(t, err)
	return p
}

type fixture struct {
	e        *echo.Echo
	orders   *MockOrderGateway
	products *MockProductGateway
}

func newFixture(t *testing.T, orders []*order.Order, pending, catalog []*product.Product) fixture {
	t.Helper()
	log := logger.Discard()

	orderStore := store.NewClientHeld(services.OrderSchema(), func(context.Context) ([]*order.Order, error) {
		return orders, nil
	}, store.WithLogger(log))
	require.NoError(t, orderStore.Load(t.Context()))

	pendingStore := store.NewServerPaged(services.PendingGroupSchema(),
		func(_ context.Context, req query.PageRequest, _ query.SortDescriptor) (query.Page[product.PendingGroup], error) {
			return query.Paginate(product.Regroup(pending), req), nil
		}, store.WithLogger(log))

	catalogStore := store.NewServerPaged(services.ProductSchema(),
		func(_ context.Context, req query.PageRequest, _ query.SortDescriptor) (query.Page[*product.Product], error) {
			return query.Paginate(catalog, req), nil
		}, store.WithLogger(log))

	orderGateway := &MockOrderGateway{}
	productGateway := &MockProductGateway{}
	journalFactory := memory.NewUnitOfWorkFactory()
	uowFactory := journalUoWFactory{factory: journalFactory}

	server := httpadapter.NewServer(
		commands.NewApplyOrderTransitionCommandHandler(orderGateway, orderStore, uowFactory, log),
		commands.NewModerateProductCommandHandler(productGateway, pendingStore, catalogStore, uowFactory, log),
		queries.NewListViewQueryHandler(orderStore),
		queries.NewListViewQueryHandler(pendingStore),
		queries.NewListViewQueryHandler(catalogStore),
		queries.NewGetAllowedTransitionsQueryHandler(orderStore),
		queries.NewListJournalQueryHandler(journalFactory.Create().JournalRepository()),
		httpadapter.PageSizes{Orders: 20, Products: 10},
		log,
	)

	doc, err := openapi.Load(t.Context())
	require.NoError(t, err)
	requestValidator, err := openapi.NewRequestValidator(doc)
	require.NoError(t, err)

	e, err := httpadapter.NewEcho(server, requestValidator, log)
	require.NoError(t, err)

	return fixture{e: e, orders: orderGateway, products: productGateway}
}

func (f fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decode[httpadapter.Error](t, rec)
	assert.Equal(t, code, body.Code)
	assert.NotEmpty(t, body.Message)
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	rec := f.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_ListOrders(t *testing.T) {
	f := newFixture(t, []*order.Order{
		newOrder(t, 1, order.Processing, "25.00"),
		newOrder(t, 2, order.Shipped, "10.00"),
		newOrder(t, 3, order.Processing, "5.00"),
	}, nil, nil)

	t.Run("should filter, sort and page the view", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/orders?status=PROCESSING&sortBy=id&direction=desc&size=1", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		page := decode[httpadapter.Page[httpadapter.Order]](t, rec)
		require.Len(t, page.Items, 1)
		assert.Equal(t, int64(3), page.Items[0].ID)
		assert.Equal(t, "PROCESSING", page.Items[0].Status)
		assert.Equal(t, httpadapter.PageDescriptor{
			Index: 0, Size: 1, TotalElements: 2, TotalPages: 2, First: true, Last: false,
		}, page.Page)
	})

	t.Run("should filter by total price range", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/orders?minPrice=6&maxPrice=20", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		page := decode[httpadapter.Page[httpadapter.Order]](t, rec)
		require.Len(t, page.Items, 1)
		assert.Equal(t, int64(2), page.Items[0].ID)
		assert.Equal(t, "10", page.Items[0].TotalPrice.String())
	})

	t.Run("should return an empty page for a huge page index", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/orders?page=922337203685477580&size=20", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		page := decode[httpadapter.Page[httpadapter.Order]](t, rec)
		assert.Empty(t, page.Items)
		assert.True(t, page.Page.Last)
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		for _, target := range []string{
			"/api/v1/orders?direction=sideways",
			"/api/v1/orders?size=500",
			"/api/v1/orders?page=-1",
			"/api/v1/orders?sortBy=weight",
			"/api/v1/orders?minPrice=abc",
			"/api/v1/orders?status=TELEPORTED",
		} {
			assertError(t, f.do(t, http.MethodGet, target, ""), http.StatusBadRequest)
		}
	})
}

func TestServer_ChangeOrderStatus(t *testing.T) {
	processing := newOrder(t, 1, order.Processing, "25.00")
	shipped := newOrder(t, 2, order.Shipped, "10.00")

	t.Run("should apply the transition and record it", func(t *testing.T) {
		f := newFixture(t, []*order.Order{processing, shipped}, nil, nil)
		updated := newOrder(t, 1, order.Shipped, "25.00")
		f.orders.On("UpdateOrderStatus", mock.Anything, kernel.ID(1), order.Shipped).Return(updated, nil).Once()

		rec := f.do(t, http.MethodPut, "/api/v1/orders/1/status", `{"status":"SHIPPED"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "SHIPPED", decode[httpadapter.Order](t, rec).Status)
		f.orders.AssertExpectations(t)

		rec = f.do(t, http.MethodGet, "/api/v1/orders?status=SHIPPED", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[httpadapter.Page[httpadapter.Order]](t, rec).Items, 2)

		rec = f.do(t, http.MethodGet, "/api/v1/journal?kind="+journal.OrderStatusChanged.String(), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		entries := decode[[]httpadapter.JournalEntry](t, rec)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(1), entries[0].EntityID)
		assert.Equal(t, "PROCESSING", entries[0].From)
		assert.Equal(t, "SHIPPED", entries[0].To)
	})

	tests := []struct {
		name   string
		target string
		body   string
		code   int
	}{
		{name: "transition outside the table", target: "/api/v1/orders/2/status", body: `{"status":"PROCESSING"}`, code: http.StatusConflict},
		{name: "caller's pair outside the table", target: "/api/v1/orders/1/status", body: `{"status":"SHIPPED","current":"DELIVERED"}`, code: http.StatusConflict},
		{name: "unknown status", target: "/api/v1/orders/1/status", body: `{"status":"TELEPORTED"}`, code: http.StatusBadRequest},
		{name: "missing status", target: "/api/v1/orders/1/status", body: `{}`, code: http.StatusBadRequest},
		{name: "malformed body", target: "/api/v1/orders/1/status", body: `{"status":`, code: http.StatusBadRequest},
		{name: "unknown order", target: "/api/v1/orders/99/status", body: `{"status":"SHIPPED"}`, code: http.StatusNotFound},
		{name: "invalid id", target: "/api/v1/orders/0/status", body: `{"status":"SHIPPED"}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			f := newFixture(t, []*order.Order{processing, shipped}, nil, nil)

			assertError(t, f.do(t, http.MethodPut, tt.target, tt.body), tt.code)
			f.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("should report an upstream failure as bad gateway", func(t *testing.T) {
		f := newFixture(t, []*order.Order{processing}, nil, nil)
		f.orders.On("UpdateOrderStatus", mock.Anything, kernel.ID(1), order.Cancelled).
			Return(nil, errors.New("connection reset")).Once()

		assertError(t, f.do(t, http.MethodPut, "/api/v1/orders/1/status", `{"status":"CANCELLED"}`), http.StatusBadGateway)

		rec := f.do(t, http.MethodGet, "/api/v1/orders", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "PROCESSING", decode[httpadapter.Page[httpadapter.Order]](t, rec).Items[0].Status)
	})
}

func TestServer_GetOrderTransitions(t *testing.T) {
	f := newFixture(t, []*order.Order{newOrder(t, 1, order.Processing, "25.00")}, nil, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/orders/1/transitions", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, httpadapter.AllowedTransitions{
		OrderID: 1,
		Current: "PROCESSING",
		Allowed: []string{"SHIPPED", "CANCELLED"},
	}, decode[httpadapter.AllowedTransitions](t, rec))

	assertError(t, f.do(t, http.MethodGet, "/api/v1/orders/42/transitions", ""), http.StatusNotFound)
}

func TestServer_Moderation(t *testing.T) {
	pending := []*product.Product{
		newProduct(t, 1, 10, product.Pending, ""),
		newProduct(t, 2, 10, product.Pending, ""),
		newProduct(t, 3, 20, product.Pending, ""),
	}

	t.Run("should list pending groups", func(t *testing.T) {
		f := newFixture(t, nil, pending, nil)

		rec := f.do(t, http.MethodGet, "/api/v1/products/pending?sortBy=producer", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		page := decode[httpadapter.Page[httpadapter.PendingGroup]](t, rec)
		require.Len(t, page.Items, 2)
		assert.Equal(t, int64(10), page.Items[0].ProducerID)
		assert.Len(t, page.Items[0].Products, 2)
		assert.Equal(t, 10, page.Page.Size)
	})

	t.Run("should drop the producer once its last product is approved", func(t *testing.T) {
		f := newFixture(t, nil, pending, nil)
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/products/pending", "").Code)
		f.products.On("ApproveProduct", mock.Anything, kernel.ID(3)).
			Return(newProduct(t, 3, 20, product.Approved, ""), nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/products/3/approve", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "APPROVED", decode[httpadapter.Product](t, rec).Status)

		rec = f.do(t, http.MethodGet, "/api/v1/products/pending", "")
		require.Equal(t, http.StatusOK, rec.Code)
		groups := decode[httpadapter.Page[httpadapter.PendingGroup]](t, rec).Items
		require.Len(t, groups, 1)
		assert.Equal(t, int64(10), groups[0].ProducerID)
	})

	t.Run("should decline with a reason", func(t *testing.T) {
		f := newFixture(t, nil, pending, nil)
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/products/pending", "").Code)
		f.products.On("DeclineProduct", mock.Anything, kernel.ID(1), product.DeclineReason("blurry photo")).
			Return(newProduct(t, 1, 10, product.Declined, "blurry photo"), nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/products/1/decline", `{"reason":"blurry photo"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		declined := decode[httpadapter.Product](t, rec)
		assert.Equal(t, "DECLINED", declined.Status)
		assert.Equal(t, "blurry photo", declined.DeclineReason)
	})

	t.Run("should reject a blank decline reason without calling the marketplace", func(t *testing.T) {
		f := newFixture(t, nil, pending, nil)

		for _, body := range []string{`{"reason":"   "}`, `{}`} {
			assertError(t, f.do(t, http.MethodPost, "/api/v1/products/1/decline", body), http.StatusBadRequest)
		}
		f.products.AssertNotCalled(t, "DeclineProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report a product in flight as conflict", func(t *testing.T) {
		f := newFixture(t, nil, pending, nil)
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/products/pending", "").Code)

		started := make(chan struct{})
		unblock := make(chan struct{})
		f.products.On("ApproveProduct", mock.Anything, kernel.ID(2)).
			Run(func(mock.Arguments) {
				close(started)
				<-unblock
			}).
			Return(newProduct(t, 2, 10, product.Approved, ""), nil).Once()

		done := make(chan int)
		go func() {
			done <- f.do(t, http.MethodPost, "/api/v1/products/2/approve", "").Code
		}()
		<-started

		assertError(t, f.do(t, http.MethodPost, "/api/v1/products/2/decline", `{"reason":"late"}`), http.StatusConflict)

		close(unblock)
		assert.Equal(t, http.StatusOK, <-done)
	})
}

func TestServer_ListMyProducts(t *testing.T) {
	f := newFixture(t, nil, nil, []*product.Product{
		newProduct(t, 5, 10, product.Declined, "no label"),
		newProduct(t, 6, 10, product.Approved, ""),
	})

	rec := f.do(t, http.MethodGet, "/api/v1/products/mine?status=DECLINED", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[httpadapter.Page[httpadapter.Product]](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(5), page.Items[0].ID)
	assert.Equal(t, "no label", page.Items[0].DeclineReason)
	assert.Equal(t, []string{"Dairy"}, page.Items[0].Categories)
}

func TestServer_ListJournal(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	t.Run("should return an empty list", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/journal", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should reject an unknown kind and an oversized limit", func(t *testing.T) {
		assertError(t, f.do(t, http.MethodGet, "/api/v1/journal?kind=order.teleported", ""), http.StatusBadRequest)
		assertError(t, f.do(t, http.MethodGet, "/api/v1/journal?limit=1000", ""), http.StatusBadRequest)
	})
}

func TestServer_Routing(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	t.Run("should serve the API document", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/swagger/doc.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Marketplace moderation API")
	})

	t.Run("should render unknown routes as errors", func(t *testing.T) {
		assertError(t, f.do(t, http.MethodGet, "/api/v1/couriers", ""), http.StatusNotFound)
		assertError(t, f.do(t, http.MethodDelete, "/api/v1/orders", ""), http.StatusMethodNotAllowed)
	})
}
