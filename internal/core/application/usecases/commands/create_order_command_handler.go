package commands

import (
	"context"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for checkout orders.
// Snapshots product name and price into immutable line items and creates
// the order in pending status, all within one transaction so a failure
// never leaves an order without its items.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
// Requires a CheckoutUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the checkout command. Each requested line is resolved
// against the catalog inside the transaction; an unknown product fails the
// whole checkout.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		p, err := productRepo.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}

		item, err := order.NewItem(kernel.NewUUID(), p.ID(), p.Name(), line.Quantity, p.Price())
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.UserID(), cmd.Customer(), cmd.DeliveryAddress(), cmd.Notes(), items,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
