package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/errs"
	"flowershop/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)

	// ErrPaymentNotCompleted is returned when verification finds the
	// checkout session has not been paid.
	ErrPaymentNotCompleted = errors.New("payment session is not completed")
)

// ConfirmPaymentCommand records a successful payment for the order linked
// to a checkout session. Issued by the payment webhook after signature
// verification and by the verification endpoint after re-querying the
// processor.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	paid      kernel.Money

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm a paid session.
func NewConfirmPaymentCommand(sessionID string, paid kernel.Money) (ConfirmPaymentCommand, error) {
	if sessionID == "" {
		return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("session id")
	}
	if !paid.IsPositive() {
		return ConfirmPaymentCommand{}, order.ErrPriceIsInvalid
	}

	return ConfirmPaymentCommand{
		sessionID: sessionID,
		paid:      paid,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// SessionID returns the processor's checkout session identifier.
func (c ConfirmPaymentCommand) SessionID() string { return c.sessionID }

// Paid returns the amount the processor reported as charged.
func (c ConfirmPaymentCommand) Paid() kernel.Money { return c.paid }

// ConfirmPaymentCommandHandler confirms the order linked to a paid session.
// The order is found by its stored session id, never by matching amounts;
// two concurrently checked-out orders of equal amount stay distinguishable.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    NotificationEmitter
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory, emitter NotificationEmitter,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
	}
}

// Handle confirms the linked order using the paid amount as its final price
// when no admin price was agreed beforehand. Confirming an order that is
// already confirmed fails with an invalid transition, which callers treat
// as an idempotent duplicate event.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByPaymentSession(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ConfirmPayment(cmd.Paid()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.emitter.EmitStatusChanged(ctx, aggregate)
	return aggregate, nil
}
