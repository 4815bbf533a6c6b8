package queries

import (
	"context"
	"time"

	"flowershop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler reads a user's notifications from the database.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification queries.
// Requires a GORM database connection for query execution.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the notification query. Unread notifications come first,
// then newest first within each group.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			message,
			is_read,
			created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY is_read, created_at DESC
	`, query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			orderID   uuid.UUID
			message   string
			read      bool
			createdAt time.Time
		)

		if err = rows.Scan(&id, &orderID, &message, &read, &createdAt); err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderUUID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		notifications = append(notifications, GetNotificationsQueryResponse{
			ID:        notificationID,
			OrderID:   orderUUID,
			Message:   message,
			Read:      read,
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
