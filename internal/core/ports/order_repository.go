// Package ports defines the repository and gateway interfaces of the flower
// shop core. These interfaces establish contracts between the domain layer
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never physically deleted; their lifecycle is tracked entirely
// through the status field.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Line items are immutable and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentSession retrieves the order linked to a payment-processor
	// checkout session. This is how webhook and verification events find
	// their order; amounts are never used for matching.
	GetByPaymentSession(ctx context.Context, sessionID string) (*order.Order, error)

	// GetAllAwaitingPayment retrieves orders holding a payment session id
	// that have not yet been confirmed, completed or cancelled. Used by
	// the payment reconciliation job.
	GetAllAwaitingPayment(ctx context.Context) ([]*order.Order, error)
}
