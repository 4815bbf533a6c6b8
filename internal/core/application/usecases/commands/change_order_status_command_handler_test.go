package commands_test

import (
	"errors"
	"testing"

	"flowershop/internal/core/application/usecases/commands"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestPendingOrder(t, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Cancelled), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	// no user on the order, so nothing is emitted
	notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_EmitsNotification(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	testOrder := newTestPendingOrder(t, &userID)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Cancelled), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifications.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	notifications.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	testOrder := newTestPendingOrder(t, &userID)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Cancelled), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifications.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	notifications.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_UpdatesOnly(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	testOrder := newTestPendingOrder(t, &userID)
	cmd, err := commands.NewChangeOrderStatusCommand(testOrder.ID(), nil, commands.OrderUpdates{
		DeliveryAddress: strPtr("Jl. Kenanga No. 5, Bandung"),
		Notes:           strPtr("Ring the bell twice"),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Jl. Kenanga No. 5, Bandung", updated.DeliveryAddress())
	assert.Equal(t, "Ring the bell twice", updated.Notes())
	assert.Equal(t, order.Pending, updated.Status())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	// no status change, so nothing is announced even with a user attached
	notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_UpdatesWithStatusChange(t *testing.T) {
	ctx := t.Context()

	userID := kernel.NewUUID()
	testOrder := newTestPendingOrder(t, &userID)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Cancelled), commands.OrderUpdates{
			Notes: strPtr("Customer asked to cancel"),
		})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifications.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Equal(t, "Customer asked to cancel", updated.Notes())
	assert.Equal(t, "Jl. Melati 5, Jakarta", updated.DeliveryAddress())
	notifications.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_EmptyDeliveryAddressRejected(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestPendingOrder(t, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(testOrder.ID(), nil, commands.OrderUpdates{
		DeliveryAddress: strPtr(""),
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, "Jl. Melati 5, Jakarta", testOrder.DeliveryAddress())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestPendingOrder(t, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Completed), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Pending, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ConfirmWithoutPrice(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestPendingOrder(t, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Confirmed), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrFinalPriceRequired)
	assert.Equal(t, order.Pending, testOrder.Status())
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	notifications := new(MockNotificationRepository)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err := handler.Handle(ctx, commands.ChangeOrderStatusCommand{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewChangeOrderStatusCommand constructor")
	factory.AssertNotCalled(t, "Create")
}

func TestChangeOrderStatusCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, statusPtr(order.Cancelled), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errors.New("not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestPendingOrder(t, nil)
	cmd, err := commands.NewChangeOrderStatusCommand(
		testOrder.ID(), statusPtr(order.Cancelled), commands.OrderUpdates{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockOrderUnitOfWork)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, discardEmitter(notifications))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
