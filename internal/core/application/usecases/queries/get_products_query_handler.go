package queries

import (
	"context"

	"flowershop/internal/core/domain/model/product"
	"flowershop/internal/core/ports"
)

// GetProductsQueryHandler serves the catalog read path.
//
// Unlike the other query handlers this one goes through the repository port
// rather than straight SQL: in production the port is the Redis-cached
// decorator, so catalog reads hit the cache and fall back to the database
// (or stale cache) transparently.
type GetProductsQueryHandler struct {
	products ports.ProductRepository
}

// NewGetProductsQueryHandler creates a handler for catalog queries.
func NewGetProductsQueryHandler(products ports.ProductRepository) GetProductsQueryHandler {
	return GetProductsQueryHandler{products: products}
}

// Handle executes the catalog query.
func (h GetProductsQueryHandler) Handle(
	ctx context.Context, query GetProductsQuery,
) ([]*product.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.products.GetAll(ctx, query.Category())
}
