package commands

import (
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrOrderLinesAreRequired     = errors.New("at least one order line is required")
	ErrQuantityIsInvalid         = errors.New("quantity must be greater than 0")
)

// OrderLine is one requested product within a checkout submission.
// Name and price are not accepted from the client; they are snapshotted
// from the catalog when the order is created.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a checkout submission from the storefront
// cart. The resulting order starts in pending status.
//
// Example:
//
//	lines := []commands.OrderLine{{ProductID: productID, Quantity: 2}}
//	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), &userID, customer, "12 Garden Lane", "", lines)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	userID          *kernel.UUID
	customer        order.Customer
	deliveryAddress string
	notes           string
	lines           []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a checkout order.
// Validates the order id, customer contact, delivery address and lines.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID *kernel.UUID,
	customer order.Customer,
	deliveryAddress string,
	notes string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		userID: userID,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if userID != nil {
		if err := userID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// UserID returns the owning registered user, or nil for guest checkouts.
func (c CreateOrderCommand) UserID() *kernel.UUID { return c.userID }

// Customer returns the contact details captured with the checkout.
func (c CreateOrderCommand) Customer() order.Customer { return c.customer }

// DeliveryAddress returns the delivery destination.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// Notes returns the free-form checkout remarks.
func (c CreateOrderCommand) Notes() string { return c.notes }

// Lines returns the requested product lines.
func (c CreateOrderCommand) Lines() []OrderLine { return c.lines }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}
	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}
	c.lines = lines
	return nil
}
