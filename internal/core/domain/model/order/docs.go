// Package order provides domain entities and business logic for order management
// in the flower shop. It implements the Order aggregate root with lifecycle
// management and validated state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, pricing, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Item: Immutable line-item snapshots of purchased products
//
// Key business rules:
//   - Orders are created by checkout submission (pending) or from chat-driven
//     custom requests (waiting_admin_confirmation)
//   - Status changes follow a defined transition table; completed is terminal
//   - An order can only be confirmed once a final price greater than zero is set
//   - Cancelling an order discards its final price; cancelled orders can only
//     be reopened back to pending
//   - Line items snapshot product name and price at order time, so later
//     catalog edits never affect historical orders
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
