package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// DeclineProductRequest is the body of POST /api/v1/products/:id/decline.
type DeclineProductRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ListPendingGroups handles GET /api/v1/products/pending - the moderation queue.
func (s *Server) ListPendingGroups(ctx echo.Context) error {
	q, err := bindListViewQuery(ctx, pendingViewParams, s.pageSizes.Products)
	if err != nil {
		return err
	}

	page, err := s.listPendingGroupsHandler.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPage(page, toPendingGroup))
}

// ListMyProducts handles GET /api/v1/products/mine - the producer's catalog.
func (s *Server) ListMyProducts(ctx echo.Context) error {
	q, err := bindListViewQuery(ctx, productViewParams, s.pageSizes.Products)
	if err != nil {
		return err
	}

	page, err := s.listMyProductsHandler.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPage(page, toProduct))
}

// ApproveProduct handles POST /api/v1/products/:id/approve.
func (s *Server) ApproveProduct(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveProductCommand(id)
	if err != nil {
		return err
	}

	approved, err := s.moderateProductHandler.HandleApprove(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toProduct(approved))
}

// DeclineProduct handles POST /api/v1/products/:id/decline.
func (s *Server) DeclineProduct(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var body DeclineProductRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if err := ctx.Validate(&body); err != nil {
		return err
	}

	cmd, err := commands.NewDeclineProductCommand(id, body.Reason)
	if err != nil {
		return err
	}

	declined, err := s.moderateProductHandler.HandleDecline(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toProduct(declined))
}
