package commands_test

import (
	"errors"
	"testing"

	"flowershop/internal/core/application/usecases/commands"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogProduct(t *testing.T, name, price string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(
		kernel.NewUUID(), name, mustMoney(t, price), "", "bouquets", "")
	require.NoError(t, err)
	return p
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	roses := newCatalogProduct(t, "Red Rose Bouquet", "150000")
	lilies := newCatalogProduct(t, "White Lily Bouquet", "180000")
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), nil, testCustomer(), "Jl. Melati 5, Jakarta", "",
		[]commands.OrderLine{
			{ProductID: roses.ID(), Quantity: 2},
			{ProductID: lilies.ID(), Quantity: 1},
		})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockCheckoutUnitOfWork)
	factory := new(MockCheckoutUoWFactory)

	var added *order.Order
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, roses.ID()).Return(roses, nil).Once(),
		productRepo.On("Get", ctx, lilies.ID()).Return(lilies, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
			added = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, order.Pending, added.Status())
	require.Len(t, added.Items(), 2)
	// items snapshot catalog name and price, total is the sum of subtotals
	assert.Equal(t, "Red Rose Bouquet", added.Items()[0].Name())
	assert.True(t, added.Items()[0].Subtotal().IsEqual(mustMoney(t, "300000")))
	assert.True(t, added.TotalAmount().IsEqual(mustMoney(t, "480000")))
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()

	missingID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), nil, testCustomer(), "Jl. Melati 5, Jakarta", "",
		[]commands.OrderLine{{ProductID: missingID, Quantity: 1}})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockCheckoutUnitOfWork)
	factory := new(MockCheckoutUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, missingID).Return(nil, errors.New("product not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockCheckoutUoWFactory)

	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, commands.CreateOrderCommand{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewCreateOrderCommand constructor")
	factory.AssertNotCalled(t, "Create")
}
