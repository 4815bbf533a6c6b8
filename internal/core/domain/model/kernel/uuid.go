package kernel

import (
	"fmt"

	"flowershop/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID
// that bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object identifying orders, products, images and the other
// aggregates of the shop. It wraps github.com/google/uuid so identifier
// handling stays in one place and the zero value can be rejected.
//
// The zero value is invalid; construct through NewUUID, UUIDFromString, or
// UUIDFromBytes. UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	orderID := kernel.NewUUID()
//
//	productID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). This is how every new
// aggregate in the shop gets its identity.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. It accepts
// the standard forms google/uuid understands, including braced and
// urn:uuid: prefixed strings.
//
// Used when an identifier arrives as text, for example an order id in a
// payment-session request or a base image id in a generation request.
//
// Example:
//
//	orderID, err := kernel.UUIDFromString(request.OrderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, rejecting the nil
// UUID. This is the bridge from request payloads and database columns that
// carry identifiers in binary form.
//
// Example:
//
//	productID, err := kernel.UUIDFromBytes(request.ProductID[:])
//	if err != nil {
//	    return fmt.Errorf("invalid product id: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// form, suitable for logs, JSON payloads and cache entries. The zero value
// renders as the all-zero UUID.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value, not a byte slice. It
// exists for the persistence and transport layers that hand identifiers to
// google/uuid-aware APIs; slice it (id.Bytes()[:]) when raw bytes are
// needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs identify the same aggregate.
//
// Example:
//
//	if order.UserID() != nil && order.UserID().IsEqual(callerID) {
//	    // the caller owns this order
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value. Aggregate
// constructors call it so a forgotten identifier fails fast instead of
// persisting as the nil UUID.
//
// Example:
//
//	if err := orderID.Validate(); err != nil {
//	    return nil, fmt.Errorf("invalid order id: %w", err)
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
