package http_test

import (
	"context"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"

	"github.com/stretchr/testify/mock"
)

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) ListProducerOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderGateway) UpdateOrderStatus(ctx context.Context, id kernel.ID, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockProductGateway struct{ mock.Mock }

func (m *MockProductGateway) ListPendingGroups(ctx context.Context, req query.PageRequest, sort query.SortDescriptor) (query.Page[product.PendingGroup], error) {
	args := m.Called(ctx, req, sort)
	page, _ := args.Get(0).(query.Page[product.PendingGroup])
	return page, args.Error(1)
}

func (m *MockProductGateway) ListMyProducts(ctx context.Context, req query.PageRequest, sort query.SortDescriptor) (query.Page[*product.Product], error) {
	args := m.Called(ctx, req, sort)
	page, _ := args.Get(0).(query.Page[*product.Product])
	return page, args.Error(1)
}

func (m *MockProductGateway) ApproveProduct(ctx context.Context, id kernel.ID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductGateway) DeclineProduct(ctx context.Context, id kernel.ID, reason product.DeclineReason) (*product.Product, error) {
	args := m.Called(ctx, id, reason)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

type journalUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f journalUoWFactory) Create() commands.JournalUoW {
	return f.factory.Create()
}
