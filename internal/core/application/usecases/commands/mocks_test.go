package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"flowershop/internal/core/application/usecases/commands"
	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/notification"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/domain/model/product"
	"flowershop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentSession(ctx context.Context, sessionID string) (*order.Order, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingPayment(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context, category string) ([]*product.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockImageRepository struct{ mock.Mock }

func (m *MockImageRepository) Add(ctx context.Context, g *image.GeneratedImage) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockImageRepository) Update(ctx context.Context, g *image.GeneratedImage) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockImageRepository) Get(ctx context.Context, id kernel.UUID) (*image.GeneratedImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*image.GeneratedImage), args.Error(1)
}

func (m *MockImageRepository) GetAllPending(ctx context.Context) ([]*image.GeneratedImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*image.GeneratedImage), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockOrderUnitOfWork struct{ mock.Mock }

func (m *MockOrderUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUnitOfWork struct{ mock.Mock }

func (m *MockCheckoutUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUnitOfWork) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockProductUnitOfWork struct{ mock.Mock }

func (m *MockProductUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductUnitOfWork) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

type MockImageUnitOfWork struct{ mock.Mock }

func (m *MockImageUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockImageUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockImageUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockImageUnitOfWork) ImageRepository() ports.ImageRepository {
	args := m.Called()
	return args.Get(0).(ports.ImageRepository)
}

type MockImageUoWFactory struct{ mock.Mock }

func (m *MockImageUoWFactory) Create() commands.ImageUoW {
	args := m.Called()
	return args.Get(0).(commands.ImageUoW)
}

type MockImageGenerator struct{ mock.Mock }

func (m *MockImageGenerator) Generate(ctx context.Context, req ports.ImageGenerationRequest) (ports.GeneratedAsset, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.GeneratedAsset), args.Error(1)
}

func (m *MockImageGenerator) UploadAsset(ctx context.Context, imageBase64, taskUUID string) (string, error) {
	args := m.Called(ctx, imageBase64, taskUUID)
	return args.String(0), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCheckoutSession(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money,
) (ports.CheckoutSession, error) {
	args := m.Called(ctx, orderID, amount)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) GetSessionStatus(
	ctx context.Context, sessionID string,
) (ports.PaymentSessionStatus, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(ports.PaymentSessionStatus), args.Error(1)
}

type RecordingInvalidator struct{ Calls int }

func (r *RecordingInvalidator) Invalidate(context.Context) { r.Calls++ }

func discardEmitter(notifications ports.NotificationRepository) commands.NotificationEmitter {
	return commands.NewNotificationEmitter(
		notifications, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testCustomer() order.Customer {
	return order.Customer{Name: "Siti Rahma", Email: "siti@example.com", Phone: "+62-811-000-111"}
}

// newTestPendingOrder creates a one-item checkout order. userID may be nil.
func newTestPendingOrder(t *testing.T, userID *kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Red Rose Bouquet", 2, mustMoney(t, "150000"))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), userID, testCustomer(), "Jl. Melati 5, Jakarta", "", []order.Item{item})
	require.NoError(t, err)
	return o
}
