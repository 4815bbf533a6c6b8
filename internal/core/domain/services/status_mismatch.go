package services

import (
	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/order"
)

// StatusMismatch reports whether an order and its linked generated image
// disagree in a way worth flagging to an admin: a cancelled order whose
// image was approved, or a confirmed order whose image was rejected.
//
// This is a display-only warning, not an enforced invariant; callers
// surface it in admin views and nothing else depends on it.
func StatusMismatch(orderStatus order.Status, imageStatus image.ModerationStatus) bool {
	if orderStatus == order.Cancelled && imageStatus == image.ModerationApproved {
		return true
	}
	if orderStatus == order.Confirmed && imageStatus == image.ModerationRejected {
		return true
	}
	return false
}
