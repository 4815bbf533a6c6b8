// Package notificationrepo implements notification persistence with GORM.
// Notifications are write-once advisory rows; the repository only adds.
package notificationrepo

import (
	"time"

	"flowershop/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notifications.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	OrderID   uuid.UUID `gorm:"type:uuid"`
	Message   string
	IsRead    bool `gorm:"index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		Message:   aggregate.Message(),
		IsRead:    aggregate.Read(),
		CreatedAt: aggregate.CreatedAt(),
	}
}
