package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/store"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, id kernel.ID, status order.Status) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromInt(int64(id))
	require.NoError(t, err)
	item, err := order.NewItem(1, "Honey", 1, price)
	require.NoError(t, err)
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour)
	o, err := order.RestoreOrder(id, order.Customer{ID: 1, Name: "Ann"}, []order.Item{item}, item.Subtotal(),
		status, created, created)
	require.NoError(t, err)
	return o
}

// orderStore returns a client-held store and a counter of upstream fetches.
func orderStore(orders ...*order.Order) (*store.Store[*order.Order], *int) {
	calls := new(int)
	s := store.NewClientHeld(services.OrderSchema(), func(context.Context) ([]*order.Order, error) {
		*calls++
		return orders, nil
	}, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return s, calls
}
