// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"

	"flowershop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// ImageRepoFactory provides access to the image repository within a transaction.
	ImageRepoFactory interface {
		ImageRepository() ports.ImageRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages transactions for checkout, which reads products
	// to snapshot line items and writes the order in the same transaction.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// ProductUoW manages transactions for catalog write operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	// ProductUoWFactory creates new product unit of work instances.
	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// ImageUoW manages transactions for generated-image operations.
	ImageUoW interface {
		TxManager
		ImageRepoFactory
	}

	// ImageUoWFactory creates new image unit of work instances.
	ImageUoWFactory interface {
		Create() ImageUoW
	}
)

// CatalogInvalidator drops cached catalog reads after a product write.
// Implemented by the Redis cache decorator; a no-op implementation is used
// when caching is disabled.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// NoopCatalogInvalidator satisfies CatalogInvalidator without a cache.
type NoopCatalogInvalidator struct{}

// Invalidate does nothing.
func (NoopCatalogInvalidator) Invalidate(context.Context) {}
