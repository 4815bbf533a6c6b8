package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/ports"
	"flowershop/internal/pkg/guard"
)

var (
	ErrCreatePaymentSessionCommandIsNotConstructed = errors.New(
		"CreatePaymentSessionCommand must be created via NewCreatePaymentSessionCommand constructor",
	)
)

// CreatePaymentSessionCommand requests a payment-processor checkout session
// for an order. The order id is carried in the session metadata so that
// webhook events can be matched back directly, never by amount.
type CreatePaymentSessionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewCreatePaymentSessionCommand creates a command to open a checkout session.
// The amount must be strictly greater than zero.
func NewCreatePaymentSessionCommand(orderID kernel.UUID, amount kernel.Money) (CreatePaymentSessionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreatePaymentSessionCommand{}, err
	}
	if !amount.IsPositive() {
		return CreatePaymentSessionCommand{}, order.ErrPriceIsInvalid
	}

	return CreatePaymentSessionCommand{
		orderID: orderID,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentSessionCommandIsNotConstructed)
}

// OrderID returns the order to be paid.
func (c CreatePaymentSessionCommand) OrderID() kernel.UUID { return c.orderID }

// Amount returns the amount to charge.
func (c CreatePaymentSessionCommand) Amount() kernel.Money { return c.amount }

// CreatePaymentSessionCommandHandler opens a checkout session with the
// payment processor and links it to the order.
type CreatePaymentSessionCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewCreatePaymentSessionCommandHandler creates a handler for checkout
// session creation.
func NewCreatePaymentSessionCommandHandler(
	uowFactory OrderUoWFactory, gateway ports.PaymentGateway,
) CreatePaymentSessionCommandHandler {
	return CreatePaymentSessionCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle verifies the order exists, creates the provider session and stores
// the session id on the order. Returns the session so the caller can
// redirect the client to its URL.
func (h *CreatePaymentSessionCommandHandler) Handle(
	ctx context.Context, cmd CreatePaymentSessionCommand,
) (ports.CheckoutSession, error) {
	if err := cmd.Validate(); err != nil {
		return ports.CheckoutSession{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.CheckoutSession{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, aggregate.ID(), cmd.Amount())
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = aggregate.AttachPaymentSession(session.ID); err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.CheckoutSession{}, err
	}

	return session, nil
}
