package queries

import (
	"errors"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/guard"
)

var (
	ErrGetNotificationsQueryIsNotConstructed = errors.New(
		"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
	)
)

// GetNotificationsQuery retrieves a user's notifications, unread first,
// newest first within each group.
type GetNotificationsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a query for one user's notifications.
func NewGetNotificationsQuery(userID kernel.UUID) (GetNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}

	return GetNotificationsQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// UserID returns the addressed user.
func (q GetNotificationsQuery) UserID() kernel.UUID { return q.userID }

// GetNotificationsQueryResponse is one notification as shown to the user.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Message   string
	Read      bool
	CreatedAt time.Time
}
