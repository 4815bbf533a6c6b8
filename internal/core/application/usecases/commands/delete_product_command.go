package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/guard"
)

var (
	ErrDeleteProductCommandIsNotConstructed = errors.New(
		"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
	)
)

// DeleteProductCommand represents an admin removing a catalog entry.
type DeleteProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteProductCommand creates a command to remove a product from the catalog.
func NewDeleteProductCommand(productID kernel.UUID) (DeleteProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return DeleteProductCommand{}, err
	}

	return DeleteProductCommand{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

// ProductID returns the identifier of the product to remove.
func (c DeleteProductCommand) ProductID() kernel.UUID { return c.productID }

// DeleteProductCommandHandler removes catalog entries and drops the cached
// catalog afterwards.
type DeleteProductCommandHandler struct {
	uowFactory  ProductUoWFactory
	invalidator CatalogInvalidator
}

// NewDeleteProductCommandHandler creates a handler for catalog removals.
func NewDeleteProductCommandHandler(
	uowFactory ProductUoWFactory, invalidator CatalogInvalidator,
) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the catalog removal.
func (h *DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
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

	if err := uow.ProductRepository().Delete(ctx, cmd.ProductID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(ctx)
	return nil
}
