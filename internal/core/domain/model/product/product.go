// Package product provides the catalog entry aggregate for the flower shop.
// Products are created and edited only through admin operations; orders
// reference them by id and snapshot name and price at order time, so the
// aggregate carries no relationship back to orders.
package product

import (
	"errors"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory functions.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
)

// Product represents a catalog entry: a flower arrangement available in the
// storefront. Private fields keep the aggregate encapsulated; all mutation
// goes through validated methods.
type Product struct {
	id          kernel.UUID
	name        string
	price       kernel.Money
	description string
	category    string
	imageURL    string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewProduct creates a validated catalog entry.
// Name is required and price must be strictly greater than zero;
// description, category and image reference are optional.
func NewProduct(id kernel.UUID, name string, price kernel.Money, description, category, imageURL string) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}
	if !price.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("price",
			errors.New("price must be greater than 0"))
	}

	now := time.Now().UTC()
	return &Product{
		id:            id,
		name:          name,
		price:         price,
		description:   description,
		category:      category,
		imageURL:      imageURL,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(
	id kernel.UUID,
	name string,
	price kernel.Money,
	description, category, imageURL string,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		name:          name,
		price:         price,
		description:   description,
		category:      category,
		imageURL:      imageURL,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product was created through a factory function.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// Update replaces the editable attributes of the product with the same
// validation rules as NewProduct. Identity and creation time are preserved.
func (p *Product) Update(name string, price kernel.Money, description, category, imageURL string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price",
			errors.New("price must be greater than 0"))
	}

	p.name = name
	p.price = price
	p.description = description
	p.category = category
	p.imageURL = imageURL
	p.updatedAt = time.Now().UTC()
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Price returns the current catalog price.
func (p *Product) Price() kernel.Money { return p.price }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// Category returns the catalog category.
func (p *Product) Category() string { return p.category }

// ImageURL returns the image reference shown in the storefront.
func (p *Product) ImageURL() string { return p.imageURL }

// CreatedAt returns the creation timestamp (UTC).
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last edit timestamp (UTC).
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
