package commands

import (
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/guard"
)

var (
	ErrSetOrderPriceCommandIsNotConstructed = errors.New(
		"SetOrderPriceCommand must be created via NewSetOrderPriceCommand constructor",
	)
)

// SetOrderPriceCommand represents an administrator attaching a final price
// to an order. On success the order's total and final price both become the
// given price and the order is (re)placed into waiting_admin_confirmation.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("120")
//	cmd, err := commands.NewSetOrderPriceCommand(orderID, price)
//	if err != nil {
//	    return fmt.Errorf("invalid price data: %w", err)
//	}
//
//	handler := commands.NewSetOrderPriceCommandHandler(uowFactory, emitter)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to set price: %w", err)
//	}
type SetOrderPriceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	price   kernel.Money

	guard guard.ConstructorGuard
}

// NewSetOrderPriceCommand creates a command to attach a final price.
// The price must be strictly greater than zero.
func NewSetOrderPriceCommand(orderID kernel.UUID, price kernel.Money) (SetOrderPriceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SetOrderPriceCommand{}, err
	}
	if !price.IsPositive() {
		return SetOrderPriceCommand{}, order.ErrPriceIsInvalid
	}

	return SetOrderPriceCommand{
		orderID: orderID,
		price:   price,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderPriceCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderPriceCommandIsNotConstructed)
}

// OrderID returns the order to price.
func (c SetOrderPriceCommand) OrderID() kernel.UUID { return c.orderID }

// Price returns the proposed final price.
func (c SetOrderPriceCommand) Price() kernel.Money { return c.price }
