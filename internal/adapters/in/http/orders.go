package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ChangeOrderStatusRequest is the body of PUT /api/v1/orders/:id/status.
// Current is the status the caller saw. When set, the transition must be legal
// from it as well as from the collection's record.
type ChangeOrderStatusRequest struct {
	Status  string `json:"status" validate:"required,order_status"`
	Current string `json:"current,omitempty" validate:"omitempty,order_status"`
}

// ListOrders handles GET /api/v1/orders - the producer's order view.
func (s *Server) ListOrders(ctx echo.Context) error {
	q, err := bindListViewQuery(ctx, orderViewParams, s.pageSizes.Orders)
	if err != nil {
		return err
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPage(page, toOrder))
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status - applies a transition.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var body ChangeOrderStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if err := ctx.Validate(&body); err != nil {
		return err
	}

	next, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	current := order.Unknown
	if body.Current != "" {
		if current, err = order.ParseStatus(body.Current); err != nil {
			return err
		}
	}

	cmd, err := commands.NewApplyOrderTransitionCommand(id, current, next)
	if err != nil {
		return err
	}

	updated, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// GetOrderTransitions handles GET /api/v1/orders/:id/transitions.
func (s *Server) GetOrderTransitions(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	q, err := queries.NewGetAllowedTransitionsQuery(id)
	if err != nil {
		return err
	}

	response, err := s.allowedTransitionsHandler.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toAllowedTransitions(response))
}
