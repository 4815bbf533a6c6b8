package order

import (
	"errors"
	"fmt"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not
	// created through the NewItem or RestoreItem factory functions.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
)

// Item is a line-item snapshot of a product purchased within an order.
// Name and unit price are copied from the product at order time, so
// historical orders are unaffected by later catalog edits. Items are
// immutable once created and owned exclusively by their parent Order.
type Item struct {
	// id is the unique identifier of the line item
	id kernel.UUID

	// productID references the catalog product this item was created from
	productID kernel.UUID

	// name is the product name as it was at order time
	name string

	// quantity is the number of units purchased (must be positive)
	quantity int

	// unitPrice is the product price per unit as it was at order time
	unitPrice kernel.Money

	// subtotal is unitPrice multiplied by quantity
	subtotal kernel.Money

	isConstructed bool
}

// NewItem creates a validated line item, computing the subtotal from the
// unit price and quantity.
func NewItem(id, productID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		id:            id,
		productID:     productID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		subtotal:      unitPrice.Mul(quantity),
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs a line item from persistence without recomputing
// the subtotal, preserving whatever was stored at order time.
func RestoreItem(id, productID kernel.UUID, name string, quantity int, unitPrice, subtotal kernel.Money) Item {
	return Item{
		id:            id,
		productID:     productID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		subtotal:      subtotal,
		isConstructed: true,
	}
}

// Validate ensures the Item was created through a factory function.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i Item) ID() kernel.UUID { return i.id }

// ProductID returns the catalog product the item was snapshotted from.
func (i Item) ProductID() kernel.UUID { return i.productID }

// Name returns the product name as captured at order time.
func (i Item) Name() string { return i.name }

// Quantity returns the number of units purchased.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the per-unit price as captured at order time.
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal returns the line total (unit price times quantity).
func (i Item) Subtotal() kernel.Money { return i.subtotal }
