package ports

import (
	"context"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"
)

// ImageRepository defines the persistence contract for generated images.
type ImageRepository interface {
	// Add persists a new generated image record in pending status.
	Add(ctx context.Context, aggregate *image.GeneratedImage) error

	// Update persists changes to an existing image record.
	Update(ctx context.Context, aggregate *image.GeneratedImage) error

	// Get retrieves an image record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*image.GeneratedImage, error)

	// GetAllPending retrieves the moderation queue, oldest first.
	GetAllPending(ctx context.Context) ([]*image.GeneratedImage, error)
}
