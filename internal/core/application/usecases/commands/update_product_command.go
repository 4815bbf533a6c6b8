package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/errs"
	"flowershop/internal/pkg/guard"
)

var (
	ErrUpdateProductCommandIsNotConstructed = errors.New(
		"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
	)
)

// UpdateProductCommand represents an admin editing a catalog entry.
type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	name        string
	price       kernel.Money
	description string
	category    string
	imageURL    string

	guard guard.ConstructorGuard
}

// NewUpdateProductCommand creates a command to edit an existing product.
func NewUpdateProductCommand(
	productID kernel.UUID, name string, price kernel.Money, description, category, imageURL string,
) (UpdateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return UpdateProductCommand{}, err
	}
	if name == "" {
		return UpdateProductCommand{}, errs.NewValueIsRequiredError("product name")
	}
	if !price.IsPositive() {
		return UpdateProductCommand{}, errs.NewValueIsInvalidErrorWithCause("price",
			errors.New("price must be greater than 0"))
	}

	return UpdateProductCommand{
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
func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

// ProductID returns the identifier of the product to edit.
func (c UpdateProductCommand) ProductID() kernel.UUID { return c.productID }

// Name returns the new product name.
func (c UpdateProductCommand) Name() string { return c.name }

// Price returns the new catalog price.
func (c UpdateProductCommand) Price() kernel.Money { return c.price }

// Description returns the new description.
func (c UpdateProductCommand) Description() string { return c.description }

// Category returns the new category.
func (c UpdateProductCommand) Category() string { return c.category }

// ImageURL returns the new image reference.
func (c UpdateProductCommand) ImageURL() string { return c.imageURL }

// UpdateProductCommandHandler applies catalog edits and drops the cached
// catalog afterwards.
type UpdateProductCommandHandler struct {
	uowFactory  ProductUoWFactory
	invalidator CatalogInvalidator
}

// NewUpdateProductCommandHandler creates a handler for catalog edits.
func NewUpdateProductCommandHandler(
	uowFactory ProductUoWFactory, invalidator CatalogInvalidator,
) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the catalog edit.
func (h *UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if err = aggregate.Update(
		cmd.Name(), cmd.Price(), cmd.Description(), cmd.Category(), cmd.ImageURL(),
	); err != nil {
		return err
	}

	if err = uow.ProductRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(ctx)
	return nil
}
