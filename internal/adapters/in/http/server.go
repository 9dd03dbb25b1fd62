package http

import (
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// PageSizes are the page sizes used when a list request does not name one.
type PageSizes struct {
	Orders   int
	Products int
}

// Server handles the UI-facing HTTP API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	applyTransitionHandler commands.ApplyOrderTransitionCommandHandler
	moderateProductHandler commands.ModerateProductCommandHandler

	// Query handlers
	listOrdersHandler         queries.ListViewQueryHandler[*order.Order]
	listPendingGroupsHandler  queries.ListViewQueryHandler[product.PendingGroup]
	listMyProductsHandler     queries.ListViewQueryHandler[*product.Product]
	allowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler
	listJournalHandler        queries.ListJournalQueryHandler

	pageSizes PageSizes
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	applyTransitionHandler commands.ApplyOrderTransitionCommandHandler,
	moderateProductHandler commands.ModerateProductCommandHandler,
	listOrdersHandler queries.ListViewQueryHandler[*order.Order],
	listPendingGroupsHandler queries.ListViewQueryHandler[product.PendingGroup],
	listMyProductsHandler queries.ListViewQueryHandler[*product.Product],
	allowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler,
	listJournalHandler queries.ListJournalQueryHandler,
	pageSizes PageSizes,
	logger *slog.Logger,
) *Server {
	return &Server{
		applyTransitionHandler:    applyTransitionHandler,
		moderateProductHandler:    moderateProductHandler,
		listOrdersHandler:         listOrdersHandler,
		listPendingGroupsHandler:  listPendingGroupsHandler,
		listMyProductsHandler:     listMyProductsHandler,
		allowedTransitionsHandler: allowedTransitionsHandler,
		listJournalHandler:        listJournalHandler,
		pageSizes:                 pageSizes,
		logger:                    logger.With("component", "http_server"),
	}
}

var (
	orderViewParams = viewParams{
		equality: []equalityParam{
			{param: "status", field: services.FieldStatus},
			{param: "customer", field: services.FieldCustomer},
		},
		ranges: []rangeParam{
			{minParam: "minPrice", maxParam: "maxPrice", field: services.FieldTotalPrice},
			{minParam: "minQuantity", maxParam: "maxQuantity", field: services.FieldQuantity},
		},
	}
	pendingViewParams = viewParams{
		equality: []equalityParam{
			{param: "producer", field: services.FieldProducer},
		},
	}
	productViewParams = viewParams{
		equality: []equalityParam{
			{param: "status", field: services.FieldStatus},
		},
		ranges: []rangeParam{
			{minParam: "minPrice", maxParam: "maxPrice", field: services.FieldPrice},
			{minParam: "minQuantity", maxParam: "maxQuantity", field: services.FieldQuantity},
		},
	}
)

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.GetHealth)

	v1 := e.Group("/api/v1")
	v1.GET("/orders", s.ListOrders)
	v1.PUT("/orders/:id/status", s.ChangeOrderStatus)
	v1.GET("/orders/:id/transitions", s.GetOrderTransitions)
	v1.GET("/products/pending", s.ListPendingGroups)
	v1.GET("/products/mine", s.ListMyProducts)
	v1.POST("/products/:id/approve", s.ApproveProduct)
	v1.POST("/products/:id/decline", s.DeclineProduct)
	v1.GET("/journal", s.ListJournal)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
