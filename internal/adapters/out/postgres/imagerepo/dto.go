// Package imagerepo implements generated-image persistence with GORM.
package imagerepo

import (
	"time"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ImageDTO represents the database structure for persisting generated images.
type ImageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Prompt    string
	URL       string
	TaskUUID  string
	Seed      int64
	Status    string     `gorm:"index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for generated images.
func (ImageDTO) TableName() string {
	return "generated_images"
}

func fromDomain(aggregate *image.GeneratedImage) ImageDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return ImageDTO{
		ID:        aggregate.ID().Bytes(),
		Prompt:    aggregate.Prompt(),
		URL:       aggregate.URL(),
		TaskUUID:  aggregate.TaskUUID(),
		Seed:      aggregate.Seed(),
		Status:    aggregate.Status().String(),
		OrderID:   orderID,
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

func toDomain(dto ImageDTO) (*image.GeneratedImage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := image.ModerationStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return image.RestoreGeneratedImage(
		id, dto.Prompt, dto.URL, dto.TaskUUID, dto.Seed, status, orderID,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
