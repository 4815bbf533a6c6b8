package commands

import (
	"context"
	"log/slog"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/notification"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/ports"
)

// NotificationEmitter writes an advisory notification after a successful
// order status mutation.
//
// Emission is best-effort, fire-and-forget: the order mutation is the
// source of truth, so the emitter runs outside the order's transaction and
// a failed write is logged and swallowed, never propagated. Orders without
// an associated user are skipped silently.
type NotificationEmitter struct {
	notifications ports.NotificationRepository
	logger        *slog.Logger
}

// NewNotificationEmitter creates an emitter writing through the given
// repository.
func NewNotificationEmitter(notifications ports.NotificationRepository, logger *slog.Logger) NotificationEmitter {
	return NotificationEmitter{
		notifications: notifications,
		logger:        logger.With("component", "notification_emitter"),
	}
}

// EmitStatusChanged writes one notification for the order's owning user
// containing the new status in human-readable form.
func (e NotificationEmitter) EmitStatusChanged(ctx context.Context, o *order.Order) {
	userID := o.UserID()
	if userID == nil {
		return
	}

	n, err := notification.NewOrderStatusNotification(kernel.NewUUID(), *userID, o.ID(), o.Status())
	if err != nil {
		e.logger.WarnContext(ctx, "Building status notification failed",
			"order_id", o.ID().String(), "error", err)
		return
	}

	if err := e.notifications.Add(ctx, n); err != nil {
		e.logger.WarnContext(ctx, "Writing status notification failed",
			"order_id", o.ID().String(), "error", err)
	}
}
