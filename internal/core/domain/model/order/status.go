package order

import (
	"errors"
	"fmt"

	"flowershop/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
// Use errors.Is to detect rejected status changes regardless of the
// particular source and destination involved.
var ErrInvalidTransition = errors.New("invalid transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	pending ──┬──> confirmed ──> completed
//	          ├──> waiting_admin_confirmation ──> confirmed | cancelled
//	          └──> cancelled ──> pending
//	confirmed ──> cancelled
//
// Completed is terminal. Cancelled orders can only be reopened back
// to pending.
//
// Status is a value object that validates state transitions and provides
// both the wire-level string used in persistence and API payloads and a
// human-readable label for notifications.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a checkout-submitted order.
	Pending

	// WaitingAdminConfirmation indicates the order awaits an administrator
	// decision. Custom chat-driven orders start here, and attaching a final
	// price places an order here.
	WaitingAdminConfirmation

	// Confirmed indicates an administrator accepted the order.
	// Requires a final price to be set on the order.
	Confirmed

	// Completed indicates the order was fulfilled.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was called off. Any agreed final
	// price is discarded. The only way out is back to Pending.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire-level
// string representations as stored in the database and exchanged over HTTP.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                  "unknown",
		Pending:                  "pending",
		WaitingAdminConfirmation: "waiting_admin_confirmation",
		Confirmed:                "confirmed",
		Completed:                "completed",
		Cancelled:                "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:                  "pending",
		WaitingAdminConfirmation: "waiting_admin_confirmation",
		Confirmed:                "confirmed",
		Completed:                "completed",
		Cancelled:                "cancelled",
	}
}

// getAllowedTransitions returns the permitted destination statuses per
// source status. A transition absent from this table is rejected.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:                  {Confirmed, Cancelled, WaitingAdminConfirmation},
		WaitingAdminConfirmation: {Confirmed, Cancelled},
		Confirmed:                {Completed, Cancelled},
		Completed:                {},
		Cancelled:                {Pending},
	}
}

// StatusFromString parses a wire-level status string into a Status.
//
// Returns an error for strings that do not name a valid status.
// Used when accepting status values from API payloads or reconstructing
// orders from persistence.
//
// Example:
//
//	s, err := order.StatusFromString("waiting_admin_confirmation")
//	if err != nil {
//	    // handle invalid status value
//	}
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, WaitingAdminConfirmation, Confirmed,
// Completed, Cancelled. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-level string of the status, e.g. "pending".
// This method implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DisplayName returns a human-readable label for the status, suitable for
// notification messages shown to customers.
func (s Status) DisplayName() string {
	switch s {
	case Pending:
		return "Pending"
	case WaitingAdminConfirmation:
		return "Waiting for confirmation"
	case Confirmed:
		return "Confirmed"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(getAllowedTransitions()[s]) == 0
}

// CanTransitionTo reports whether the transition table permits moving
// from the receiver to the destination status.
func (s Status) CanTransitionTo(dst Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == dst {
			return true
		}
	}
	return false
}

// TransitionTo attempts the transition from the receiver to the destination.
//
// Returns:
//   - (dst, nil) when the transition table permits the move
//   - (0, *InvalidTransitionError) otherwise
//
// The destination must itself be a valid status; transitions to Unknown
// are always rejected.
//
// Example:
//
//	next, err := current.TransitionTo(order.Confirmed)
//	if err != nil {
//	    // transition not permitted from current status
//	}
func (s Status) TransitionTo(dst Status) (Status, error) {
	if err := dst.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(dst) {
		return 0, &InvalidTransitionError{From: s, To: dst}
	}

	return dst, nil
}

// InvalidTransitionError reports a status change not present in the
// transition table, naming the attempted source and destination.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
