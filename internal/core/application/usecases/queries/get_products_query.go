package queries

import (
	"errors"

	"flowershop/internal/pkg/guard"
)

var (
	ErrGetProductsQueryIsNotConstructed = errors.New(
		"GetProductsQuery must be created via NewGetProductsQuery constructor",
	)
)

// GetProductsQuery retrieves the public catalog, optionally narrowed to a
// single category. An empty category returns everything.
//
// Example:
//
//	query := NewGetProductsQuery("bouquets")
//	handler := NewGetProductsQueryHandler(cachedRepo)
//
//	products, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get catalog: %w", err)
//	}
type GetProductsQuery struct {
	category string

	guard guard.ConstructorGuard
}

// NewGetProductsQuery creates a query for the catalog.
func NewGetProductsQuery(category string) GetProductsQuery {
	return GetProductsQuery{
		category: category,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductsQueryIsNotConstructed)
}

// Category returns the requested category filter, empty for all.
func (q GetProductsQuery) Category() string { return q.category }
