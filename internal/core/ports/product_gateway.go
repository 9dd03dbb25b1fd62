package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"
)

// ProductGateway is the marketplace API surface for products and their moderation.
type ProductGateway interface {
	// ListPendingGroups returns one page of producers with their pending products.
	ListPendingGroups(ctx context.Context, req query.PageRequest, sort query.SortDescriptor) (query.Page[product.PendingGroup], error)

	// ListMyProducts returns one page of the acting producer's catalog.
	ListMyProducts(ctx context.Context, req query.PageRequest, sort query.SortDescriptor) (query.Page[*product.Product], error)

	// ApproveProduct approves a pending product and returns the updated record.
	ApproveProduct(ctx context.Context, id kernel.ID) (*product.Product, error)

	// DeclineProduct declines a pending product with reason and returns the updated record.
	DeclineProduct(ctx context.Context, id kernel.ID, reason product.DeclineReason) (*product.Product, error)
}
