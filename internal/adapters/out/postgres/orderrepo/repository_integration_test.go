package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"flowershop/internal/adapters/out/postgres/orderrepo"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_PersistsOrderAndItems() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithItems() {
	ctx := context.Background()

	original := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.ID().IsEqual(retrieved.ID()))
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal("Siti Rahma", retrieved.Customer().Name)
	suite.Equal("12 Garden Lane", retrieved.DeliveryAddress())
	suite.True(original.TotalAmount().IsEqual(retrieved.TotalAmount()))
	suite.Nil(retrieved.FinalPrice())
	suite.Nil(retrieved.PaymentSessionID())
	suite.Len(retrieved.Items(), 2)
	suite.Equal("Red Rose Bouquet", retrieved.Items()[0].Name())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_FinalPriceAndStatus_ItemsStayUntouched() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Agree a final price and persist the change
	finalPrice, err := kernel.MoneyFromString("500000")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.SetFinalPrice(finalPrice))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.WaitingAdminConfirmation, retrieved.Status())
	suite.Require().NotNil(retrieved.FinalPrice())
	suite.True(finalPrice.IsEqual(*retrieved.FinalPrice()))
	suite.True(finalPrice.IsEqual(retrieved.TotalAmount()))
	suite.Len(retrieved.Items(), 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByPaymentSession_FindsLinkedOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AttachPaymentSession("cs_test_123"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.GetByPaymentSession(ctx, "cs_test_123")
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(retrieved.ID()))

	_, err = suite.repository.GetByPaymentSession(ctx, "cs_unknown")
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllAwaitingPayment_SkipsConfirmedOrders() {
	ctx := context.Background()

	awaiting := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", awaiting.ID(), awaiting).Once()
	suite.Require().NoError(suite.repository.Add(ctx, awaiting))
	suite.Require().NoError(awaiting.AttachPaymentSession("cs_awaiting"))
	suite.Require().NoError(suite.repository.Update(ctx, awaiting))

	confirmed := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", confirmed.ID(), confirmed).Once()
	suite.Require().NoError(suite.repository.Add(ctx, confirmed))
	suite.Require().NoError(confirmed.AttachPaymentSession("cs_confirmed"))
	paid, err := kernel.MoneyFromString("480000")
	suite.Require().NoError(err)
	suite.Require().NoError(confirmed.ConfirmPayment(paid))
	suite.Require().NoError(suite.repository.Update(ctx, confirmed))

	noSession := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", noSession.ID(), noSession).Once()
	suite.Require().NoError(suite.repository.Add(ctx, noSession))

	result, err := suite.repository.GetAllAwaitingPayment(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.True(awaiting.ID().IsEqual(result[0].ID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	unitPrice, err := kernel.MoneyFromString("150000")
	suite.Require().NoError(err)

	rose, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Red Rose Bouquet", 2, unitPrice)
	suite.Require().NoError(err)

	tulipPrice, err := kernel.MoneyFromString("180000")
	suite.Require().NoError(err)

	tulip, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Tulip Mix", 1, tulipPrice)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		nil,
		order.Customer{Name: "Siti Rahma", Email: "siti@example.com", Phone: "+62-811-000-111"},
		"12 Garden Lane",
		"ring the bell",
		[]order.Item{rose, tulip},
	)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
