package image_test

import (
	"testing"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingImage(t *testing.T) *image.GeneratedImage {
	t.Helper()
	img, err := image.NewGeneratedImage(
		kernel.NewUUID(), "a red rose bouquet", "https://img.example/1.png", "task-1", 42,
	)
	require.NoError(t, err)
	return img
}

func TestNewGeneratedImage(t *testing.T) {
	t.Run("starts_pending", func(t *testing.T) {
		img := pendingImage(t)

		assert.Equal(t, image.ModerationPending, img.Status())
		assert.Nil(t, img.OrderID())
		require.NoError(t, img.Validate())
	})

	t.Run("requires_prompt_and_url", func(t *testing.T) {
		_, err := image.NewGeneratedImage(kernel.NewUUID(), "", "https://img.example/1.png", "task-1", 0)
		require.Error(t, err)

		_, err = image.NewGeneratedImage(kernel.NewUUID(), "rose", "", "task-1", 0)
		require.Error(t, err)
	})
}

func TestGeneratedImage_Moderation(t *testing.T) {
	t.Run("approve_and_reject_are_one_shot", func(t *testing.T) {
		img := pendingImage(t)

		require.NoError(t, img.Approve())
		assert.Equal(t, image.ModerationApproved, img.Status())

		require.ErrorIs(t, img.Approve(), image.ErrAlreadyModerated)
		require.ErrorIs(t, img.Reject(), image.ErrAlreadyModerated)
	})

	t.Run("reject_from_pending", func(t *testing.T) {
		img := pendingImage(t)

		require.NoError(t, img.Reject())
		assert.Equal(t, image.ModerationRejected, img.Status())
	})
}

func TestGeneratedImage_AssociateOrder(t *testing.T) {
	t.Run("links_an_order", func(t *testing.T) {
		img := pendingImage(t)
		orderID := kernel.NewUUID()

		require.NoError(t, img.AssociateOrder(orderID))
		require.NotNil(t, img.OrderID())
		assert.True(t, img.OrderID().IsEqual(orderID))
	})

	t.Run("rejects_zero_order_id", func(t *testing.T) {
		img := pendingImage(t)
		var zero kernel.UUID
		require.Error(t, img.AssociateOrder(zero))
	})
}

func TestModerationStatusFromString(t *testing.T) {
	t.Run("round_trips_valid_statuses", func(t *testing.T) {
		for _, s := range []image.ModerationStatus{
			image.ModerationPending, image.ModerationApproved, image.ModerationRejected,
		} {
			parsed, err := image.ModerationStatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_unrecognized_strings", func(t *testing.T) {
		_, err := image.ModerationStatusFromString("unknown")
		require.Error(t, err)
	})
}
