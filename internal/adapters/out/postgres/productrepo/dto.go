// Package productrepo implements catalog product persistence with GORM.
package productrepo

import (
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting products.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Price       decimal.Decimal `gorm:"type:numeric"`
	Description string
	Category    string `gorm:"index"`
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Price:       aggregate.Price().Amount(),
		Description: aggregate.Description(),
		Category:    aggregate.Category(),
		ImageURL:    aggregate.ImageURL(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id, dto.Name, price, dto.Description, dto.Category, dto.ImageURL,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
