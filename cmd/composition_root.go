package cmd

import (
	"context"
	"log/slog"
	"net/http"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/openapi"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/marketplaceapi"
	"marketplace/internal/adapters/out/memory"
	obsadapter "marketplace/internal/adapters/out/observability"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/store"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/platform/observability"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const instrumentationName = "marketplace"

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory     ports.UnitOfWorkFactory
	publisher      ports.EventPublisher
	orderGateway   ports.OrderGateway
	productGateway ports.ProductGateway

	orders  *store.Store[*order.Order]
	pending *store.Store[product.PendingGroup]
	catalog *store.Store[*product.Product]

	applyTransitionHandler commands.ApplyOrderTransitionCommandHandler
	moderateProductHandler commands.ModerateProductCommandHandler
}

// NewCompositionRoot wires the application. Without gormDB the decision journal
// and the outbox are kept in memory.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	instruments *observability.Instruments,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	client, err := marketplaceapi.NewClient(cfg.MarketplaceAPIURL, cfg.MarketplaceAPIToken, &http.Client{
		Timeout: cfg.MarketplaceAPITimeout,
	})
	if err != nil {
		return nil, err
	}

	gatewayOpts := []obsadapter.Option{
		obsadapter.WithLogger(logger.With("component", "marketplace_gateway")),
		obsadapter.WithTracer(instruments.Tracer(instrumentationName)),
		obsadapter.WithMeter(instruments.Meter(instrumentationName)),
	}

	c := &CompositionRoot{
		cfg:            cfg,
		logger:         logger,
		orderGateway:   obsadapter.NewOrderGateway(client, gatewayOpts...),
		productGateway: obsadapter.NewProductGateway(client, gatewayOpts...),
		publisher: kafka.NewPublisher(cfg.KafkaBrokers, kafka.Topics{
			"order":   cfg.KafkaOrderEventsTopic,
			"product": cfg.KafkaProductEventsTopic,
		}, logger),
	}

	if gormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	} else {
		logger.Warn("No database configured, the decision journal is kept in memory")
		c.uowFactory = memory.NewUnitOfWorkFactory()
	}

	c.orders = store.NewClientHeld(services.OrderSchema(), c.orderGateway.ListProducerOrders,
		store.WithName("orders"),
		store.WithPageSize(cfg.OrdersPageSize),
		store.WithLogger(logger),
	)
	c.pending = store.NewServerPaged(services.PendingGroupSchema(), c.productGateway.ListPendingGroups,
		store.WithName("pending products"),
		store.WithPageSize(cfg.ProductsPageSize),
		store.WithLogger(logger),
	)
	c.catalog = store.NewServerPaged(services.ProductSchema(), c.productGateway.ListMyProducts,
		store.WithName("my products"),
		store.WithPageSize(cfg.ProductsPageSize),
		store.WithLogger(logger),
	)

	c.applyTransitionHandler = commands.NewApplyOrderTransitionCommandHandler(
		c.orderGateway, c.orders, c.journalUoWFactory(), logger)
	c.moderateProductHandler = commands.NewModerateProductCommandHandler(
		c.productGateway, c.pending, c.catalog, c.journalUoWFactory(), logger)

	return c, nil
}

// Warmup loads the order collection and the first page of the moderation
// queue. Failures are logged; the collections load again on first use.
func (c *CompositionRoot) Warmup(ctx context.Context) {
	if err := c.orders.Load(ctx); err != nil {
		c.logger.WarnContext(ctx, "Initial order load failed", "error", err)
	}
	if err := c.pending.Load(ctx); err != nil {
		c.logger.WarnContext(ctx, "Initial pending products load failed", "error", err)
	}
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.applyTransitionHandler,
		c.moderateProductHandler,
		queries.NewListViewQueryHandler(c.orders),
		queries.NewListViewQueryHandler(c.pending),
		queries.NewListViewQueryHandler(c.catalog),
		queries.NewGetAllowedTransitionsQueryHandler(c.orders),
		queries.NewListJournalQueryHandler(c.uowFactory.Create().JournalRepository()),
		httpadapter.PageSizes{Orders: c.cfg.OrdersPageSize, Products: c.cfg.ProductsPageSize},
		c.logger,
	)
}

func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}
	requestValidator, err := openapi.NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	return httpadapter.NewEcho(c.CreateServer(), requestValidator, c.logger)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewCollectionRefreshJob("orders", c.orders, c.cfg.OrdersRefreshSchedule, c.logger),
		jobs.NewCollectionRefreshJob("pending_products", c.pending, c.cfg.PendingRefreshSchedule, c.logger),
		jobs.NewOutboxRelayJob(c.CreateRelayOutboxCommandHandler(), c.cfg.OutboxRelayBatchSize, c.cfg.OutboxRelaySchedule, c.logger),
	)
}

// Close releases the broker connections.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) journalUoWFactory() commands.JournalUoWFactory {
	return FuncJournalUoWFactory(func() commands.JournalUoW {
		return c.uowFactory.Create()
	})
}

type FuncJournalUoWFactory func() commands.JournalUoW

func (f FuncJournalUoWFactory) Create() commands.JournalUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
