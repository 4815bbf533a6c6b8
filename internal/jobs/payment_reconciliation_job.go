package jobs

import (
	"context"
	"errors"
	"log/slog"

	"flowershop/internal/core/application/usecases/commands"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PaymentReconciliationJob re-checks orders that hold a payment session id
// but were never confirmed. Runs every minute and covers webhook deliveries
// that were lost or arrived out of order.
type PaymentReconciliationJob struct {
	uowFactory commands.OrderUoWFactory
	gateway    ports.PaymentGateway
	handler    commands.ConfirmPaymentCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPaymentReconciliationJob creates a new job for reconciling payments.
// Uses ConfirmPaymentCommandHandler so that reconciliation goes through the
// same lifecycle guard as webhook confirmations.
func NewPaymentReconciliationJob(
	uowFactory commands.OrderUoWFactory,
	gateway ports.PaymentGateway,
	handler commands.ConfirmPaymentCommandHandler,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		uowFactory: uowFactory,
		gateway:    gateway,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "payment_reconciliation_job"),
	}
}

// Start begins the payment reconciliation job to run every minute.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.reconcile(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started (running every minute)")
	return nil
}

// Stop stops the payment reconciliation job.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}

func (j *PaymentReconciliationJob) reconcile(ctx context.Context) error {
	awaiting, err := j.awaitingPayment(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range awaiting {
		sessionID := aggregate.PaymentSessionID()
		if sessionID == nil {
			continue
		}

		status, err := j.gateway.GetSessionStatus(ctx, *sessionID)
		if err != nil {
			j.logger.WarnContext(ctx, "Failed to query payment session",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		if !status.Paid {
			continue
		}

		if err := j.confirm(ctx, *sessionID, status); err != nil {
			// A webhook may have confirmed the order between the listing
			// and this check; that is not a failure.
			if errors.Is(err, order.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to confirm reconciled payment",
				"order_id", aggregate.ID().String(), "error", err)
		}
	}

	return nil
}

func (j *PaymentReconciliationJob) awaitingPayment(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllAwaitingPayment(ctx)
}

func (j *PaymentReconciliationJob) confirm(
	ctx context.Context, sessionID string, status ports.PaymentSessionStatus,
) error {
	cmd, err := commands.NewConfirmPaymentCommand(sessionID, status.AmountTotal)
	if err != nil {
		return err
	}

	_, err = j.handler.Handle(ctx, cmd)
	return err
}
