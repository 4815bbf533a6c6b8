package services_test

import (
	"testing"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusMismatch(t *testing.T) {
	t.Run("cancelled_order_with_approved_image_is_flagged", func(t *testing.T) {
		assert.True(t, services.StatusMismatch(order.Cancelled, image.ModerationApproved))
	})

	t.Run("confirmed_order_with_rejected_image_is_flagged", func(t *testing.T) {
		assert.True(t, services.StatusMismatch(order.Confirmed, image.ModerationRejected))
	})

	t.Run("consistent_pairs_are_not_flagged", func(t *testing.T) {
		assert.False(t, services.StatusMismatch(order.Confirmed, image.ModerationApproved))
		assert.False(t, services.StatusMismatch(order.Cancelled, image.ModerationRejected))
		assert.False(t, services.StatusMismatch(order.Pending, image.ModerationPending))
	})
}
