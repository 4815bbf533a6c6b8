package cmd

import (
	"log/slog"

	httpin "flowershop/internal/adapters/in/http"
	"flowershop/internal/adapters/out/payment"
	"flowershop/internal/adapters/out/postgres"
	"flowershop/internal/adapters/out/postgres/notificationrepo"
	"flowershop/internal/adapters/out/postgres/productrepo"
	"flowershop/internal/adapters/out/postgres/userrolerepo"
	redisout "flowershop/internal/adapters/out/redis"
	"flowershop/internal/core/application/usecases/commands"
	"flowershop/internal/core/application/usecases/queries"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/ports"
	"flowershop/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	products    ports.ProductRepository
	invalidator commands.CatalogInvalidator
	gateway     *payment.Client
	generator   ports.ImageGenerator
	emitter     commands.NotificationEmitter
	logger      *slog.Logger
}

// NewCompositionRoot wires the adapters and use case handlers together.
// A nil redis client disables the catalog cache; catalog reads then go
// straight to the database and invalidation becomes a no-op.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	generator ports.ImageGenerator,
	logger *slog.Logger,
) CompositionRoot {
	baseProducts := productrepo.NewGormProductRepository(gormDB, passthroughTracker{})

	var products ports.ProductRepository = baseProducts
	var invalidator commands.CatalogInvalidator = commands.NoopCatalogInvalidator{}
	if redisClient != nil {
		cached := redisout.NewCachedProductRepository(baseProducts, redisClient, logger)
		products = cached
		invalidator = cached
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),

		products:    products,
		invalidator: invalidator,
		gateway:     payment.NewClient(config.PaymentBaseURL, config.PaymentAPIKey),
		generator:   generator,
		emitter: commands.NewNotificationEmitter(
			notificationrepo.NewGormNotificationRepository(gormDB), logger,
		),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCustomOrderCommandHandler() commands.CreateCustomOrderCommandHandler {
	return commands.NewCreateCustomOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.emitter)
}

func (c *CompositionRoot) CreateSetOrderPriceCommandHandler() commands.SetOrderPriceCommandHandler {
	return commands.NewSetOrderPriceCommandHandler(c.orderUoWFactory(), c.emitter)
}

func (c *CompositionRoot) CreateCreatePaymentSessionCommandHandler() commands.CreatePaymentSessionCommandHandler {
	return commands.NewCreatePaymentSessionCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.emitter)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.productUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	return commands.NewUpdateProductCommandHandler(c.productUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	return commands.NewDeleteProductCommandHandler(c.productUoWFactory(), c.invalidator)
}

func (c *CompositionRoot) CreateGenerateImageCommandHandler() commands.GenerateImageCommandHandler {
	return commands.NewGenerateImageCommandHandler(c.imageUoWFactory(), c.generator)
}

func (c *CompositionRoot) CreateUploadImageCommandHandler() commands.UploadImageCommandHandler {
	return commands.NewUploadImageCommandHandler(c.generator)
}

func (c *CompositionRoot) CreateModerateImageCommandHandler() commands.ModerateImageCommandHandler {
	return commands.NewModerateImageCommandHandler(c.imageUoWFactory())
}

func (c *CompositionRoot) CreateGetProductsQueryHandler() queries.GetProductsQueryHandler {
	return queries.NewGetProductsQueryHandler(c.products)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingImagesQueryHandler() queries.GetPendingImagesQueryHandler {
	return queries.NewGetPendingImagesQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the API server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		httpin.ServerHandlers{
			CreateOrder:          c.CreateCreateOrderCommandHandler(),
			CreateCustomOrder:    c.CreateCreateCustomOrderCommandHandler(),
			ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
			SetOrderPrice:        c.CreateSetOrderPriceCommandHandler(),
			CreatePaymentSession: c.CreateCreatePaymentSessionCommandHandler(),
			ConfirmPayment:       c.CreateConfirmPaymentCommandHandler(),
			CreateProduct:        c.CreateCreateProductCommandHandler(),
			UpdateProduct:        c.CreateUpdateProductCommandHandler(),
			DeleteProduct:        c.CreateDeleteProductCommandHandler(),
			GenerateImage:        c.CreateGenerateImageCommandHandler(),
			UploadImage:          c.CreateUploadImageCommandHandler(),
			ModerateImage:        c.CreateModerateImageCommandHandler(),

			GetProducts:          c.CreateGetProductsQueryHandler(),
			GetCustomerOrders:    c.CreateGetCustomerOrdersQueryHandler(),
			GetUncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
			GetNotifications:     c.CreateGetNotificationsQueryHandler(),
			GetPendingImages:     c.CreateGetPendingImagesQueryHandler(),
		},
		c.gateway,
		payment.NewWebhookVerifier(c.config.PaymentWebhookSecret),
	)
}

// CreateAuthMiddleware builds the bearer token middleware with the shared
// signing secret and the database-backed role reader.
func (c *CompositionRoot) CreateAuthMiddleware() *httpin.AuthMiddleware {
	return httpin.NewAuthMiddleware(c.config.JWTSecret, userrolerepo.NewGormRoleReader(c.gormDB))
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.orderUoWFactory(), c.gateway, c.CreateConfirmPaymentCommandHandler(), c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) imageUoWFactory() commands.ImageUoWFactory {
	return FuncImageUoWFactory(func() commands.ImageUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncImageUoWFactory func() commands.ImageUoW

func (f FuncImageUoWFactory) Create() commands.ImageUoW {
	return f()
}

// passthroughTracker satisfies the repositories' tracker dependency for the
// standalone read path, where no unit of work collects aggregates.
type passthroughTracker struct{}

func (passthroughTracker) TrackAggregate(kernel.UUID, any) {}
