package order

import (
	"errors"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder, NewCustomOrder or RestoreOrder factory functions. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, NewCustomOrder or RestoreOrder")

	// ErrFinalPriceRequired is returned when confirming an order that has no
	// final price attached. The price must be agreed before confirmation.
	ErrFinalPriceRequired = errors.New("final price required")

	// ErrPriceIsInvalid is returned when attaching a final price that is not
	// strictly greater than zero.
	ErrPriceIsInvalid = errors.New("invalid price")

	// ErrItemsAreRequired is returned when a checkout order is created
	// without any line items.
	ErrItemsAreRequired = errors.New("order requires at least one item")
)

// Customer holds the contact details captured with an order.
// All orders carry a snapshot of the customer contact even when the order
// is associated with a registered user, so admin views work without joins.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Validate checks that the mandatory contact fields are present.
// Phone is optional; name and email are required.
func (c Customer) Validate() error {
	return errors.Join(
		requireField("customer name", c.Name),
		requireField("customer email", c.Email),
	)
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// Order represents a purchase request in the flower shop. It is the aggregate
// root that manages the order lifecycle from checkout or chat-driven creation
// through admin confirmation to completion or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer contact
//   - Status transitions follow the defined transition table
//   - Confirmed requires a final price strictly greater than zero
//   - Cancellation discards any agreed final price
//   - Line items are immutable once attached
//   - Can only be created through its factory functions
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID is the owning registered user (nil for guest checkouts)
	userID *kernel.UUID

	// customer is the contact snapshot captured at order time
	customer Customer

	// deliveryAddress is the destination for the arrangement
	deliveryAddress string

	// notes carries free-form customer or admin remarks
	notes string

	// status is the current state in the order lifecycle
	status Status

	// totalAmount is the current total; tracks item subtotals until a
	// final price replaces it
	totalAmount kernel.Money

	// estimatedPrice is the provisional quote on custom orders (nil if none)
	estimatedPrice *kernel.Money

	// finalPrice is the admin-agreed price (nil until set)
	finalPrice *kernel.Money

	// paymentSessionID links the order to a payment-processor checkout
	// session (nil until a session is created)
	paymentSessionID *string

	// items are the immutable line-item snapshots
	items []Item

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a checkout-submitted order in Pending status.
//
// The order total is computed from the item subtotals. At least one item
// is required; the customer contact and delivery address must be present.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), productID, "Red Rose Bouquet", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), userID, customer, "12 Garden Lane", "", []order.Item{item})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	userID *kernel.UUID,
	customer Customer,
	deliveryAddress string,
	notes string,
	items []Item,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	o, err := newOrder(id, userID, customer, deliveryAddress, notes, Pending)
	if err != nil {
		return nil, err
	}

	total := kernel.ZeroMoney()
	for _, item := range items {
		if itemErr := item.Validate(); itemErr != nil {
			return nil, itemErr
		}
		total = total.Add(item.Subtotal())
	}

	o.items = items
	o.totalAmount = total
	return o, nil
}

// NewCustomOrder creates a chat-driven custom order in
// WaitingAdminConfirmation status. Custom orders have no line items; the
// requested arrangement is described in the notes, and an optional
// estimated price may be attached from the assistant conversation.
func NewCustomOrder(
	id kernel.UUID,
	userID *kernel.UUID,
	customer Customer,
	deliveryAddress string,
	notes string,
	estimatedPrice *kernel.Money,
) (*Order, error) {
	o, err := newOrder(id, userID, customer, deliveryAddress, notes, WaitingAdminConfirmation)
	if err != nil {
		return nil, err
	}

	o.estimatedPrice = estimatedPrice
	if estimatedPrice != nil {
		o.totalAmount = *estimatedPrice
	}
	return o, nil
}

func newOrder(
	id kernel.UUID,
	userID *kernel.UUID,
	customer Customer,
	deliveryAddress string,
	notes string,
	status Status,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customer.Validate(),
		requireField("delivery address", deliveryAddress),
	); err != nil {
		return nil, err
	}

	if userID != nil {
		if err := userID.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	return &Order{
		id:              id,
		userID:          userID,
		customer:        customer,
		deliveryAddress: deliveryAddress,
		notes:           notes,
		status:          status,
		totalAmount:     kernel.ZeroMoney(),
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence.
//
// The stored status must be valid; no other invariants are re-derived so
// that historical rows load exactly as written.
func RestoreOrder(
	id kernel.UUID,
	userID *kernel.UUID,
	customer Customer,
	deliveryAddress string,
	notes string,
	status Status,
	totalAmount kernel.Money,
	estimatedPrice *kernel.Money,
	finalPrice *kernel.Money,
	paymentSessionID *string,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:               id,
		userID:           userID,
		customer:         customer,
		deliveryAddress:  deliveryAddress,
		notes:            notes,
		status:           status,
		totalAmount:      totalAmount,
		estimatedPrice:   estimatedPrice,
		finalPrice:       finalPrice,
		paymentSessionID: paymentSessionID,
		items:            items,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct, and should be called when reconstructing
// orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// UserID returns the owning registered user's ID, or nil for guest orders.
func (o *Order) UserID() *kernel.UUID { return o.userID }

// Customer returns the contact snapshot captured at order time.
func (o *Order) Customer() Customer { return o.customer }

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// Notes returns the free-form remarks attached to the order.
func (o *Order) Notes() string { return o.notes }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.status }

// TotalAmount returns the current order total.
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

// EstimatedPrice returns the provisional quote, or nil if none was given.
func (o *Order) EstimatedPrice() *kernel.Money { return o.estimatedPrice }

// FinalPrice returns the admin-agreed price, or nil if not yet set.
func (o *Order) FinalPrice() *kernel.Money { return o.finalPrice }

// PaymentSessionID returns the payment-processor session linked to the
// order, or nil if no session was created.
func (o *Order) PaymentSessionID() *string { return o.paymentSessionID }

// Items returns the immutable line-item snapshots.
func (o *Order) Items() []Item { return o.items }

// CreatedAt returns the creation timestamp (UTC).
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp (UTC).
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// ChangeStatus moves the order to the destination status.
//
// This method enforces the following business rules:
//   - The move must be present in the status transition table
//   - Confirmed requires a final price strictly greater than zero,
//     checked against the aggregate's current state rather than any
//     client-supplied value
//   - Moving to Cancelled clears the final price as part of the same change
//
// On failure the order is left completely unchanged.
//
// Example:
//
//	if err := o.ChangeStatus(order.Confirmed); err != nil {
//	    // invalid transition or missing final price
//	}
func (o *Order) ChangeStatus(dst Status) error {
	newStatus, err := o.status.TransitionTo(dst)
	if err != nil {
		return err
	}

	if newStatus == Confirmed && (o.finalPrice == nil || !o.finalPrice.IsPositive()) {
		return ErrFinalPriceRequired
	}

	if newStatus == Cancelled {
		o.finalPrice = nil
	}

	o.status = newStatus
	o.touch()
	return nil
}

// SetFinalPrice attaches an admin-agreed price to the order.
//
// The price must be strictly greater than zero, otherwise ErrPriceIsInvalid
// is returned and nothing changes. On success the total amount and final
// price are both set to the given price and the order is (re)placed into
// WaitingAdminConfirmation, whatever its previous status; attaching a
// price always restarts the confirmation flow.
func (o *Order) SetFinalPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return ErrPriceIsInvalid
	}

	o.totalAmount = price
	o.finalPrice = &price
	o.status = WaitingAdminConfirmation
	o.touch()
	return nil
}

// UpdateDetails applies edits to the delivery address and notes. A nil
// pointer leaves the corresponding field unchanged; the delivery address
// cannot be cleared.
func (o *Order) UpdateDetails(deliveryAddress, notes *string) error {
	if deliveryAddress != nil {
		if err := requireField("delivery address", *deliveryAddress); err != nil {
			return err
		}
		o.deliveryAddress = *deliveryAddress
	}

	if notes != nil {
		o.notes = *notes
	}

	o.touch()
	return nil
}

// AttachPaymentSession links the order to a payment-processor checkout
// session. The session identifier is how webhook and verification events
// find their way back to the order.
func (o *Order) AttachPaymentSession(sessionID string) error {
	if sessionID == "" {
		return errs.NewValueIsRequiredError("payment session id")
	}

	o.paymentSessionID = &sessionID
	o.touch()
	return nil
}

// ConfirmPayment records a successful payment of the given amount and
// confirms the order. Orders paid through the processor have not been
// through the admin pricing flow, so the paid amount becomes the final
// price before the transition to Confirmed is attempted.
func (o *Order) ConfirmPayment(paid kernel.Money) error {
	if !paid.IsPositive() {
		return ErrPriceIsInvalid
	}

	if !o.status.CanTransitionTo(Confirmed) {
		return &InvalidTransitionError{From: o.status, To: Confirmed}
	}

	if o.finalPrice == nil {
		o.finalPrice = &paid
		o.totalAmount = paid
	}

	return o.ChangeStatus(Confirmed)
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}
