package commands

import (
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrNoChangesRequested = errors.New("a destination status or field updates are required")
)

// OrderUpdates carries optional field edits applied alongside, or instead
// of, a status transition. A nil pointer leaves the field untouched.
type OrderUpdates struct {
	DeliveryAddress *string
	Notes           *string
}

// IsZero reports whether no field edit was requested.
func (u OrderUpdates) IsZero() bool {
	return u.DeliveryAddress == nil && u.Notes == nil
}

// ChangeOrderStatusCommand represents a request to move an order to a new
// status and/or edit its mutable details. The transition is validated
// against the order's current state at handling time, never against
// client-supplied state.
//
// Example:
//
//	status := order.Confirmed
//	cmd, err := commands.NewChangeOrderStatusCommand(orderID, &status, commands.OrderUpdates{})
//	if err != nil {
//	    return fmt.Errorf("invalid status data: %w", err)
//	}
//
//	handler := commands.NewChangeOrderStatusCommandHandler(uowFactory, emitter)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // transition not permitted from the order's current status
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  *order.Status
	updates OrderUpdates

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status
// and/or its delivery details. A nil status means no transition; at least
// one of status or updates must be present. Whether a requested transition
// is allowed is decided by the aggregate when the command is handled.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status *order.Status,
	updates OrderUpdates,
) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	if status == nil && updates.IsZero() {
		return ChangeOrderStatusCommand{}, ErrNoChangesRequested
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return ChangeOrderStatusCommand{}, err
		}
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		status:  status,
		updates: updates,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Status returns the destination status, or nil when only field updates
// were requested.
func (c ChangeOrderStatusCommand) Status() *order.Status { return c.status }

// Updates returns the requested field edits.
func (c ChangeOrderStatusCommand) Updates() OrderUpdates { return c.updates }
