package commands_test

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"
	"marketplace/internal/core/ports"

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

type MockJournalRepository struct{ mock.Mock }

func (m *MockJournalRepository) Add(ctx context.Context, entry journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) List(ctx context.Context, kind journal.Kind, limit int) ([]journal.Entry, error) {
	args := m.Called(ctx, kind, limit)
	entries, _ := args.Get(0).([]journal.Entry)
	return entries, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message journal.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]journal.Message, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]journal.Message)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockJournalUoW struct{ mock.Mock }

func (m *MockJournalUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockJournalUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockJournalUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJournalUoW) JournalRepository() ports.JournalRepository {
	args := m.Called()
	return args.Get(0).(ports.JournalRepository)
}

func (m *MockJournalUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockJournalUoWFactory struct{ mock.Mock }

func (m *MockJournalUoWFactory) Create() commands.JournalUoW {
	args := m.Called()
	return args.Get(0).(commands.JournalUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message journal.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// expectRecorded sets up a journal unit of work that commits one entry and one message.
func expectRecorded(ctx context.Context, kind journal.Kind) (*MockJournalUoWFactory, *MockJournalUoW) {
	journalRepo := new(MockJournalRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockJournalUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JournalRepository").Return(journalRepo).Once(),
		journalRepo.On("Add", mock.Anything, mock.MatchedBy(func(e journal.Entry) bool { return e.Kind() == kind })).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.MatchedBy(func(m journal.Message) bool { return m.Kind == kind })).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJournalUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}
