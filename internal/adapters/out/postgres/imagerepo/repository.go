package imagerepo

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormImageRepository implements ImageRepository using GORM.
type GormImageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormImageRepository creates a new GORM generated-image repository.
func NewGormImageRepository(db *gorm.DB, tracker aggregateTracker) *GormImageRepository {
	return &GormImageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new image record to the database.
func (r *GormImageRepository) Add(ctx context.Context, aggregate *image.GeneratedImage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing image record to the database.
func (r *GormImageRepository) Update(ctx context.Context, aggregate *image.GeneratedImage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ImageDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an image record by ID.
func (r *GormImageRepository) Get(ctx context.Context, id kernel.UUID) (*image.GeneratedImage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ImageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("image", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves the moderation queue, oldest first.
func (r *GormImageRepository) GetAllPending(ctx context.Context) ([]*image.GeneratedImage, error) {
	var dtos []ImageDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", image.ModerationPending.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	images := make([]*image.GeneratedImage, 0, len(dtos))
	for _, dto := range dtos {
		g, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		images = append(images, g)
	}

	return images, nil
}
