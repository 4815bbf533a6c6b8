package commands

import (
	"context"

	"flowershop/internal/core/domain/model/order"
)

// SetOrderPriceCommandHandler handles the price-confirmation flow.
// Attaching a price flips the order into waiting_admin_confirmation in the
// same update, and the status change is announced to the order's user
// through the best-effort notification emitter.
type SetOrderPriceCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    NotificationEmitter
}

// NewSetOrderPriceCommandHandler creates a handler for price confirmation.
func NewSetOrderPriceCommandHandler(uowFactory OrderUoWFactory, emitter NotificationEmitter) SetOrderPriceCommandHandler {
	return SetOrderPriceCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
	}
}

// Handle processes the price confirmation command.
// Returns the updated order on success.
func (h *SetOrderPriceCommandHandler) Handle(ctx context.Context, cmd SetOrderPriceCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.SetFinalPrice(cmd.Price()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Notification runs outside the transaction: advisory only.
	h.emitter.EmitStatusChanged(ctx, aggregate)
	return aggregate, nil
}
