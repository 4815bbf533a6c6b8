// Package notification provides the advisory notification record written to
// a user after an order status change. Notifications are best-effort: the
// order mutation is the source of truth and a failed notification write is
// never treated as a failure of the operation that produced it.
package notification

import (
	"errors"
	"fmt"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through a factory function.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewOrderStatusNotification or RestoreNotification")

// Notification is one advisory message addressed to a registered user.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	orderID   kernel.UUID
	message   string
	read      bool
	createdAt time.Time

	isConstructed bool
}

// NewOrderStatusNotification creates the notification written after a
// successful order status change, with the new status in human-readable form.
func NewOrderStatusNotification(id, userID, orderID kernel.UUID, newStatus order.Status) (*Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		userID:        userID,
		orderID:       orderID,
		message:       fmt.Sprintf("Your order status changed to: %s", newStatus.DisplayName()),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(id, userID, orderID kernel.UUID, message string, read bool, createdAt time.Time) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	return &Notification{
		id:            id,
		userID:        userID,
		orderID:       orderID,
		message:       message,
		read:          read,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification was created through a factory function.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// MarkRead flags the notification as seen by the user.
func (n *Notification) MarkRead() {
	n.read = true
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// UserID returns the addressed user.
func (n *Notification) UserID() kernel.UUID { return n.userID }

// OrderID returns the order the notification refers to.
func (n *Notification) OrderID() kernel.UUID { return n.orderID }

// Message returns the human-readable notification text.
func (n *Notification) Message() string { return n.message }

// Read reports whether the user has seen the notification.
func (n *Notification) Read() bool { return n.read }

// CreatedAt returns the creation timestamp (UTC).
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
