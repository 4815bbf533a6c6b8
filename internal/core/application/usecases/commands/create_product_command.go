package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/product"
	"flowershop/internal/pkg/errs"
	"flowershop/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
)

// CreateProductCommand represents an admin adding a catalog entry.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	name        string
	price       kernel.Money
	description string
	category    string
	imageURL    string

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to add a product to the catalog.
func NewCreateProductCommand(
	productID kernel.UUID, name string, price kernel.Money, description, category, imageURL string,
) (CreateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return CreateProductCommand{}, err
	}
	if name == "" {
		return CreateProductCommand{}, errs.NewValueIsRequiredError("product name")
	}
	if !price.IsPositive() {
		return CreateProductCommand{}, errs.NewValueIsInvalidErrorWithCause("price",
			errors.New("price must be greater than 0"))
	}

	return CreateProductCommand{
		productID:   productID,
		name:        name,
		price:       price,
		description: description,
		category:    category,
		imageURL:    imageURL,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the identifier for the new product.
func (c CreateProductCommand) ProductID() kernel.UUID { return c.productID }

// Name returns the product name.
func (c CreateProductCommand) Name() string { return c.name }

// Price returns the catalog price.
func (c CreateProductCommand) Price() kernel.Money { return c.price }

// Description returns the product description.
func (c CreateProductCommand) Description() string { return c.description }

// Category returns the catalog category.
func (c CreateProductCommand) Category() string { return c.category }

// ImageURL returns the image reference.
func (c CreateProductCommand) ImageURL() string { return c.imageURL }

// CreateProductCommandHandler persists new catalog entries and drops the
// cached catalog afterwards.
type CreateProductCommandHandler struct {
	uowFactory  ProductUoWFactory
	invalidator CatalogInvalidator
}

// NewCreateProductCommandHandler creates a handler for catalog additions.
func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory, invalidator CatalogInvalidator,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the catalog addition.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := product.NewProduct(
		cmd.ProductID(), cmd.Name(), cmd.Price(), cmd.Description(), cmd.Category(), cmd.ImageURL(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(ctx)
	return nil
}
