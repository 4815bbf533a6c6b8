package commands

import (
	"context"

	"flowershop/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies validated status transitions and
// field edits to an order.
//
// The order's current status and final price are re-read inside the
// transaction at the moment of the request, so a stale client can never
// confirm an order that lost its price in the interim. Cancellation clears
// the final price as part of the same update. Field edits and the
// transition commit together or not at all. After a successful commit a
// status change is announced through the best-effort notification emitter;
// edits alone emit nothing.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    NotificationEmitter
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, emitter NotificationEmitter,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
	}
}

// Handle processes the status change command.
// Returns the updated order on success; on any failure the stored order
// is left unchanged.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
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

	if updates := cmd.Updates(); !updates.IsZero() {
		if err = aggregate.UpdateDetails(updates.DeliveryAddress, updates.Notes); err != nil {
			return nil, err
		}
	}

	if cmd.Status() != nil {
		if err = aggregate.ChangeStatus(*cmd.Status()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if cmd.Status() != nil {
		h.emitter.EmitStatusChanged(ctx, aggregate)
	}
	return aggregate, nil
}
