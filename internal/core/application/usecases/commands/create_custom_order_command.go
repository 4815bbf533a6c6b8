package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/guard"
)

var (
	ErrCreateCustomOrderCommandIsNotConstructed = errors.New(
		"CreateCustomOrderCommand must be created via NewCreateCustomOrderCommand constructor",
	)
	ErrDescriptionIsRequired = errors.New("custom order description is required")
)

// CreateCustomOrderCommand represents a chat-driven custom arrangement
// request. The resulting order starts in waiting_admin_confirmation status
// and carries the requested arrangement in its notes, optionally with a
// provisional estimate from the assistant conversation.
type CreateCustomOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	userID          *kernel.UUID
	customer        order.Customer
	deliveryAddress string
	description     string
	estimatedPrice  *kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateCustomOrderCommand creates a command to register a custom order.
func NewCreateCustomOrderCommand(
	orderID kernel.UUID,
	userID *kernel.UUID,
	customer order.Customer,
	deliveryAddress string,
	description string,
	estimatedPrice *kernel.Money,
) (CreateCustomOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), customer.Validate()); err != nil {
		return CreateCustomOrderCommand{}, err
	}
	if deliveryAddress == "" {
		return CreateCustomOrderCommand{}, ErrDeliveryAddressIsRequired
	}
	if description == "" {
		return CreateCustomOrderCommand{}, ErrDescriptionIsRequired
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return CreateCustomOrderCommand{}, err
		}
	}

	return CreateCustomOrderCommand{
		orderID:         orderID,
		userID:          userID,
		customer:        customer,
		deliveryAddress: deliveryAddress,
		description:     description,
		estimatedPrice:  estimatedPrice,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCustomOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateCustomOrderCommand) OrderID() kernel.UUID { return c.orderID }

// UserID returns the owning registered user, or nil for guests.
func (c CreateCustomOrderCommand) UserID() *kernel.UUID { return c.userID }

// Customer returns the contact details for the request.
func (c CreateCustomOrderCommand) Customer() order.Customer { return c.customer }

// DeliveryAddress returns the delivery destination.
func (c CreateCustomOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// Description returns the requested arrangement description.
func (c CreateCustomOrderCommand) Description() string { return c.description }

// EstimatedPrice returns the provisional quote, or nil if none was given.
func (c CreateCustomOrderCommand) EstimatedPrice() *kernel.Money { return c.estimatedPrice }

// CreateCustomOrderCommandHandler persists chat-driven custom orders.
type CreateCustomOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateCustomOrderCommandHandler creates a handler for custom order requests.
func NewCreateCustomOrderCommandHandler(uowFactory OrderUoWFactory) CreateCustomOrderCommandHandler {
	return CreateCustomOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the custom order command.
func (h *CreateCustomOrderCommandHandler) Handle(ctx context.Context, cmd CreateCustomOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewCustomOrder(
		cmd.OrderID(), cmd.UserID(), cmd.Customer(), cmd.DeliveryAddress(),
		cmd.Description(), cmd.EstimatedPrice(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
