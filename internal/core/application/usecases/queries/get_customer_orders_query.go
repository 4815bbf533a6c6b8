package queries

import (
	"errors"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/guard"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
)

// GetCustomerOrdersQuery retrieves a user's order history, newest first,
// with line items.
//
// Example:
//
//	query, err := NewGetCustomerOrdersQuery(userID)
//	if err != nil {
//	    return fmt.Errorf("invalid user id: %w", err)
//	}
//
//	orders, err := NewGetCustomerOrdersQueryHandler(db).Handle(ctx, query)
type GetCustomerOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for one user's order history.
func NewGetCustomerOrdersQuery(userID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return GetCustomerOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// UserID returns the user whose history is requested.
func (q GetCustomerOrdersQuery) UserID() kernel.UUID { return q.userID }

// GetCustomerOrdersQueryResponse is one historical order with its items.
type GetCustomerOrdersQueryResponse struct {
	ID              kernel.UUID
	Status          string
	TotalAmount     kernel.Money
	FinalPrice      *kernel.Money
	DeliveryAddress string
	CreatedAt       time.Time
	Items           []CustomerOrderItemResponse
}

// CustomerOrderItemResponse is one snapshotted line item.
type CustomerOrderItemResponse struct {
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}
