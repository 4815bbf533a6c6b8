package ports

import (
	"context"

	"flowershop/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for advisory
// notifications. Writes are best-effort from the caller's perspective;
// the repository itself reports failures normally and the caller decides
// to swallow them.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error
}
