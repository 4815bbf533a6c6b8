package http

import (
	"errors"
	"io"
	"net/http"

	"flowershop/internal/adapters/out/payment"
	"flowershop/internal/core/application/usecases/commands"
	"flowershop/internal/core/application/usecases/queries"
	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/domain/services"
	"flowershop/internal/core/ports"
	"flowershop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the shop API over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	createCustomOrderHandler    commands.CreateCustomOrderCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	setOrderPriceHandler        commands.SetOrderPriceCommandHandler
	createPaymentSessionHandler commands.CreatePaymentSessionCommandHandler
	confirmPaymentHandler       commands.ConfirmPaymentCommandHandler
	createProductHandler        commands.CreateProductCommandHandler
	updateProductHandler        commands.UpdateProductCommandHandler
	deleteProductHandler        commands.DeleteProductCommandHandler
	generateImageHandler        commands.GenerateImageCommandHandler
	uploadImageHandler          commands.UploadImageCommandHandler
	moderateImageHandler        commands.ModerateImageCommandHandler

	// Query handlers
	getProductsHandler          queries.GetProductsQueryHandler
	getCustomerOrdersHandler    queries.GetCustomerOrdersQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getNotificationsHandler     queries.GetNotificationsQueryHandler
	getPendingImagesHandler     queries.GetPendingImagesQueryHandler

	gateway       ports.PaymentGateway
	webhooks      payment.WebhookVerifier
	cardExtractor services.FlowerCardExtractor
}

// ServerHandlers bundles the use case handlers the server dispatches to.
type ServerHandlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	CreateCustomOrder    commands.CreateCustomOrderCommandHandler
	ChangeOrderStatus    commands.ChangeOrderStatusCommandHandler
	SetOrderPrice        commands.SetOrderPriceCommandHandler
	CreatePaymentSession commands.CreatePaymentSessionCommandHandler
	ConfirmPayment       commands.ConfirmPaymentCommandHandler
	CreateProduct        commands.CreateProductCommandHandler
	UpdateProduct        commands.UpdateProductCommandHandler
	DeleteProduct        commands.DeleteProductCommandHandler
	GenerateImage        commands.GenerateImageCommandHandler
	UploadImage          commands.UploadImageCommandHandler
	ModerateImage        commands.ModerateImageCommandHandler

	GetProducts          queries.GetProductsQueryHandler
	GetCustomerOrders    queries.GetCustomerOrdersQueryHandler
	GetUncompletedOrders queries.GetUncompletedOrdersQueryHandler
	GetNotifications     queries.GetNotificationsQueryHandler
	GetPendingImages     queries.GetPendingImagesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers, the payment webhook verifier and the flower card extractor.
func NewServer(
	handlers ServerHandlers,
	gateway ports.PaymentGateway,
	webhooks payment.WebhookVerifier,
) *Server {
	return &Server{
		createOrderHandler:          handlers.CreateOrder,
		createCustomOrderHandler:    handlers.CreateCustomOrder,
		changeOrderStatusHandler:    handlers.ChangeOrderStatus,
		setOrderPriceHandler:        handlers.SetOrderPrice,
		createPaymentSessionHandler: handlers.CreatePaymentSession,
		confirmPaymentHandler:       handlers.ConfirmPayment,
		createProductHandler:        handlers.CreateProduct,
		updateProductHandler:        handlers.UpdateProduct,
		deleteProductHandler:        handlers.DeleteProduct,
		generateImageHandler:        handlers.GenerateImage,
		uploadImageHandler:          handlers.UploadImage,
		moderateImageHandler:        handlers.ModerateImage,
		getProductsHandler:          handlers.GetProducts,
		getCustomerOrdersHandler:    handlers.GetCustomerOrders,
		getUncompletedOrdersHandler: handlers.GetUncompletedOrders,
		getNotificationsHandler:     handlers.GetNotifications,
		getPendingImagesHandler:     handlers.GetPendingImages,
		gateway:                     gateway,
		webhooks:                    webhooks,
		cardExtractor:               services.NewFlowerCardExtractor(),
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *AuthMiddleware) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.GET("/products", s.GetProducts)
	api.POST("/products", s.CreateProduct, auth.Authenticate, auth.RequireRole(RoleAdmin))
	api.PUT("/products/:id", s.UpdateProduct, auth.Authenticate, auth.RequireRole(RoleAdmin))
	api.DELETE("/products/:id", s.DeleteProduct, auth.Authenticate, auth.RequireRole(RoleAdmin))

	api.POST("/orders", s.CreateOrder, auth.AuthenticateOptional)
	api.POST("/orders/custom", s.CreateCustomOrder, auth.AuthenticateOptional)
	api.GET("/orders", s.GetCustomerOrders, auth.Authenticate)
	api.GET("/orders/uncompleted", s.GetUncompletedOrders,
		auth.Authenticate, auth.RequireRole(RoleAdmin, RoleSeller))
	api.PATCH("/orders/status", s.ChangeOrderStatus,
		auth.Authenticate, auth.RequireRole(RoleAdmin, RoleSeller))
	api.POST("/orders/price", s.SetOrderPrice, auth.Authenticate, auth.RequireRole(RoleAdmin))

	api.POST("/payments/session", s.CreatePaymentSession)
	api.POST("/payments/webhook", s.PaymentWebhook)
	api.POST("/payments/verify", s.VerifyPayment)

	api.POST("/images/generate", s.GenerateImage, auth.AuthenticateOptional)
	api.POST("/images/upload", s.UploadImage)
	api.GET("/images/pending", s.GetPendingImages, auth.Authenticate, auth.RequireRole(RoleAdmin))
	api.PATCH("/images/moderate", s.ModerateImage, auth.Authenticate, auth.RequireRole(RoleAdmin))

	api.GET("/notifications", s.GetNotifications, auth.Authenticate)

	api.POST("/cards/extract", s.ExtractFlowerCards)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetProducts handles GET /api/v1/products - lists the catalog, optionally
// filtered by the category query parameter.
func (s *Server) GetProducts(ctx echo.Context) error {
	query := queries.NewGetProductsQuery(ctx.QueryParam("category"))

	products, err := s.getProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve products",
		})
	}

	response := make([]productPayload, len(products))
	for i, p := range products {
		response[i] = productPayload{
			ID:          p.ID().Bytes(),
			Name:        p.Name(),
			Price:       p.Price().Float64(),
			Description: p.Description(),
			Category:    p.Category(),
			ImageURL:    p.ImageURL(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products - adds a catalog product.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var request newProductRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	price, err := kernel.MoneyFromFloat(request.Price)
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		productID, request.Name, price, request.Description, request.Category, request.ImageURL,
	)
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	if handleErr := s.createProductHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.domainError(ctx, handleErr, "Failed to create product")
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{ID: productID.Bytes()})
}

// UpdateProduct handles PUT /api/v1/products/:id.
func (s *Server) UpdateProduct(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	var request newProductRequest
	if err = ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	price, err := kernel.MoneyFromFloat(request.Price)
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	cmd, err := commands.NewUpdateProductCommand(
		productID, request.Name, price, request.Description, request.Category, request.ImageURL,
	)
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	if handleErr := s.updateProductHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.domainError(ctx, handleErr, "Failed to update product")
	}

	return ctx.NoContent(http.StatusOK)
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	cmd, err := commands.NewDeleteProductCommand(productID)
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	if handleErr := s.deleteProductHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.domainError(ctx, handleErr, "Failed to delete product")
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateOrder handles POST /api/v1/orders - registers a checkout order.
// The order belongs to the authenticated user when a bearer token is sent;
// guest checkout is allowed.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request newOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	lines := make([]commands.OrderLine, len(request.Items))
	for i, item := range request.Items {
		productID, err := kernel.UUIDFromBytes(item.ProductID[:])
		if err != nil {
			return badRequest(ctx, "Invalid product id in order items")
		}
		lines[i] = commands.OrderLine{ProductID: productID, Quantity: item.Quantity}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		optionalUserID(ctx),
		order.Customer{
			Name:  request.CustomerName,
			Email: request.CustomerEmail,
			Phone: request.CustomerPhone,
		},
		request.DeliveryAddress,
		request.Notes,
		lines,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.domainError(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{ID: orderID.Bytes()})
}

// CreateCustomOrder handles POST /api/v1/orders/custom - registers a
// chat-driven custom arrangement that awaits an admin price.
func (s *Server) CreateCustomOrder(ctx echo.Context) error {
	var request newCustomOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	var estimated *kernel.Money
	if request.EstimatedPrice != nil {
		price, err := kernel.MoneyFromFloat(*request.EstimatedPrice)
		if err != nil {
			return badRequest(ctx, "Invalid estimated price")
		}
		estimated = &price
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateCustomOrderCommand(
		orderID,
		optionalUserID(ctx),
		order.Customer{
			Name:  request.CustomerName,
			Email: request.CustomerEmail,
			Phone: request.CustomerPhone,
		},
		request.DeliveryAddress,
		request.Description,
		estimated,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createCustomOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.domainError(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{ID: orderID.Bytes()})
}

// GetCustomerOrders handles GET /api/v1/orders - the caller's order history.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	userID, ok := AuthenticatedUser(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing bearer token",
		})
	}

	query, err := queries.NewGetCustomerOrdersQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]customerOrderPayload, len(orders))
	for i, o := range orders {
		items := make([]orderItemPayload, len(o.Items))
		for j, item := range o.Items {
			items[j] = orderItemPayload{
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice.Float64(),
				Subtotal:  item.Subtotal.Float64(),
			}
		}

		response[i] = customerOrderPayload{
			ID:              o.ID.Bytes(),
			Status:          o.Status,
			TotalAmount:     o.TotalAmount.Float64(),
			FinalPrice:      optionalAmount(o.FinalPrice),
			DeliveryAddress: o.DeliveryAddress,
			CreatedAt:       o.CreatedAt,
			Items:           items,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUncompletedOrders handles GET /api/v1/orders/uncompleted - the admin
// panel work list.
func (s *Server) GetUncompletedOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]uncompletedOrderPayload, len(orders))
	for i, o := range orders {
		response[i] = uncompletedOrderPayload{
			ID:            o.ID.Bytes(),
			Status:        o.Status,
			CustomerName:  o.CustomerName,
			CustomerEmail: o.CustomerEmail,
			TotalAmount:   o.TotalAmount.Float64(),
			HasFinalPrice: o.HasFinalPrice,
			CreatedAt:     o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/status - moves an order
// through its lifecycle and/or edits its delivery details.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var request changeOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	orderID, err := kernel.UUIDFromBytes(request.ID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var status *order.Status
	if request.Status != "" {
		parsed, err := order.StatusFromString(request.Status)
		if err != nil {
			return badRequest(ctx, "Invalid status: "+request.Status)
		}
		status = &parsed
	}

	var updates commands.OrderUpdates
	if request.Updates != nil {
		updates.DeliveryAddress = request.Updates.DeliveryAddress
		updates.Notes = request.Updates.Notes
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, updates)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to change order status")
	}

	return ctx.JSON(http.StatusOK, changeOrderStatusResponse{
		Success: true,
		Updated: orderStatusPayload{
			ID:     updated.ID().Bytes(),
			Status: updated.Status().String(),
		},
	})
}

// SetOrderPrice handles POST /api/v1/orders/price - attaches the final
// price an admin agreed with the customer.
func (s *Server) SetOrderPrice(ctx echo.Context) error {
	var request setOrderPriceRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	orderID, err := kernel.UUIDFromBytes(request.ID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	price, err := kernel.MoneyFromFloat(request.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price")
	}

	cmd, err := commands.NewSetOrderPriceCommand(orderID, price)
	if err != nil {
		return badRequest(ctx, "Invalid price: "+err.Error())
	}

	updated, err := s.setOrderPriceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to set order price")
	}

	finalPrice := updated.FinalPrice()
	response := setOrderPriceResponse{
		ID:     updated.ID().Bytes(),
		Status: updated.Status().String(),
	}
	if finalPrice != nil {
		response.FinalPrice = finalPrice.Float64()
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreatePaymentSession handles POST /api/v1/payments/session - opens a
// provider checkout session and returns the redirect URL.
func (s *Server) CreatePaymentSession(ctx echo.Context) error {
	var request newPaymentSessionRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	orderID, err := kernel.UUIDFromBytes(request.OrderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	amount, err := kernel.MoneyFromFloat(request.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount")
	}

	cmd, err := commands.NewCreatePaymentSessionCommand(orderID, amount)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	session, err := s.createPaymentSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to create payment session")
	}

	return ctx.JSON(http.StatusOK, paymentSessionResponse{URL: session.URL})
}

// PaymentWebhook handles POST /api/v1/payments/webhook - processor
// callbacks. The signature covers the raw body, so the body is read before
// any decoding. Orders are matched by the stored session id only.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return invalidBody(ctx)
	}

	signature := ctx.Request().Header.Get("X-Webhook-Signature")
	if err = s.webhooks.Verify(body, signature); err != nil {
		return badRequest(ctx, "Invalid webhook signature")
	}

	event, err := payment.ParseEvent(body)
	if err != nil {
		return invalidBody(ctx)
	}

	if event.Session.PaymentStatus != "paid" {
		return ctx.JSON(http.StatusOK, map[string]bool{"received": true})
	}

	paid, err := kernel.MoneyFromString(event.Session.AmountTotal)
	if err != nil {
		return badRequest(ctx, "Invalid amount in webhook payload")
	}

	cmd, err := commands.NewConfirmPaymentCommand(event.Session.ID, paid)
	if err != nil {
		return badRequest(ctx, "Invalid webhook payload: "+err.Error())
	}

	if _, handleErr := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		// Processors redeliver events; an order that is already confirmed
		// is acknowledged rather than reported as a conflict.
		if errors.Is(handleErr, order.ErrInvalidTransition) {
			return ctx.JSON(http.StatusOK, map[string]bool{"received": true})
		}
		return s.domainError(ctx, handleErr, "Failed to confirm payment")
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"received": true})
}

// VerifyPayment handles POST /api/v1/payments/verify - re-queries the
// processor for a session and confirms the order when it was paid. Used
// when the customer returns from checkout before the webhook lands.
func (s *Server) VerifyPayment(ctx echo.Context) error {
	var request verifyPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}
	if request.SessionID == "" {
		return badRequest(ctx, "Session id is required")
	}

	status, err := s.gateway.GetSessionStatus(ctx.Request().Context(), request.SessionID)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to verify payment session",
		})
	}

	if !status.Paid {
		return ctx.JSON(http.StatusOK, verifyPaymentResponse{Paid: false, Status: "unpaid"})
	}

	cmd, err := commands.NewConfirmPaymentCommand(request.SessionID, status.AmountTotal)
	if err != nil {
		return badRequest(ctx, "Invalid session data: "+err.Error())
	}

	if _, handleErr := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, order.ErrInvalidTransition) {
			return ctx.JSON(http.StatusOK, verifyPaymentResponse{Paid: true, Status: "confirmed"})
		}
		return s.domainError(ctx, handleErr, "Failed to confirm payment")
	}

	return ctx.JSON(http.StatusOK, verifyPaymentResponse{Paid: true, Status: "confirmed"})
}

// GenerateImage handles POST /api/v1/images/generate - proxies a bouquet
// preview request to the image provider and records the result for
// moderation.
func (s *Server) GenerateImage(ctx echo.Context) error {
	var request generateImageRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	var orderID *kernel.UUID
	if request.OrderID != nil {
		id, err := kernel.UUIDFromBytes(request.OrderID[:])
		if err != nil {
			return badRequest(ctx, "Invalid order id")
		}
		orderID = &id
	}

	cmd, err := commands.NewGenerateImageCommand(
		kernel.NewUUID(), request.Prompt, request.UseImageToImage, request.BaseImageUUID, orderID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid image request: "+err.Error())
	}

	generated, err := s.generateImageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to generate image")
	}

	return ctx.JSON(http.StatusOK, generateImageResponse{
		ImageURL: generated.URL(),
		Prompt:   generated.Prompt(),
		TaskUUID: generated.TaskUUID(),
		Seed:     generated.Seed(),
	})
}

// UploadImage handles POST /api/v1/images/upload - uploads a customer
// reference photo to the image provider for image-to-image generation.
func (s *Server) UploadImage(ctx echo.Context) error {
	var request uploadImageRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewUploadImageCommand(request.Image, request.TaskUUID)
	if err != nil {
		return badRequest(ctx, "Invalid upload request: "+err.Error())
	}

	imageUUID, err := s.uploadImageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to upload image")
	}

	return ctx.JSON(http.StatusOK, uploadImageResponse{
		ImageUUID: imageUUID,
		TaskUUID:  cmd.TaskUUID(),
	})
}

// GetPendingImages handles GET /api/v1/images/pending - the moderation
// queue, including moderated images whose verdict disagrees with the
// linked order's state.
func (s *Server) GetPendingImages(ctx echo.Context) error {
	query := queries.NewGetPendingImagesQuery()

	images, err := s.getPendingImagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve images",
		})
	}

	response := make([]pendingImagePayload, len(images))
	for i, img := range images {
		payload := pendingImagePayload{
			ID:               img.ID.Bytes(),
			Prompt:           img.Prompt,
			URL:              img.URL,
			ModerationStatus: img.ModerationStatus,
			OrderStatus:      img.OrderStatus,
			StatusMismatch:   img.StatusMismatch,
			CreatedAt:        img.CreatedAt,
		}
		if img.OrderID != nil {
			id := img.OrderID.Bytes()
			payload.OrderID = &id
		}
		response[i] = payload
	}

	return ctx.JSON(http.StatusOK, response)
}

// ModerateImage handles PATCH /api/v1/images/moderate.
func (s *Server) ModerateImage(ctx echo.Context) error {
	var request moderateImageRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	imageID, err := kernel.UUIDFromBytes(request.ID[:])
	if err != nil {
		return badRequest(ctx, "Invalid image id")
	}

	cmd, err := commands.NewModerateImageCommand(imageID, request.Approve)
	if err != nil {
		return badRequest(ctx, "Invalid moderation request: "+err.Error())
	}

	if handleErr := s.moderateImageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.domainError(ctx, handleErr, "Failed to moderate image")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetNotifications handles GET /api/v1/notifications - the caller's order
// notifications, unread first.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, ok := AuthenticatedUser(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing bearer token",
		})
	}

	query, err := queries.NewGetNotificationsQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve notifications",
		})
	}

	response := make([]notificationPayload, len(notifications))
	for i, n := range notifications {
		response[i] = notificationPayload{
			ID:        n.ID.Bytes(),
			OrderID:   n.OrderID.Bytes(),
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ExtractFlowerCards handles POST /api/v1/cards/extract - parses structured
// flower records out of assistant free text. An empty card list means the
// client should show the raw text instead.
func (s *Server) ExtractFlowerCards(ctx echo.Context) error {
	var request extractCardsRequest
	if err := ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	cards := s.cardExtractor.Extract(request.Text)

	response := extractCardsResponse{Cards: make([]flowerCardPayload, len(cards))}
	for i, card := range cards {
		response.Cards[i] = flowerCardPayload{
			Name:        card.Name,
			Description: card.Description,
			Price:       card.Price,
			Color:       card.Color,
			Size:        card.Size,
			Style:       card.Style,
			Rating:      card.Rating,
			Category:    card.Category,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// domainError maps use case failures to HTTP statuses: unknown aggregates
// to 404, lifecycle conflicts to 409, everything else to 500.
func (s *Server) domainError(ctx echo.Context, err error, fallback string) error {
	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrFinalPriceRequired),
		errors.Is(err, image.ErrAlreadyModerated):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func invalidBody(ctx echo.Context) error {
	return badRequest(ctx, "Invalid request body")
}

func optionalUserID(ctx echo.Context) *kernel.UUID {
	if userID, ok := AuthenticatedUser(ctx); ok {
		return &userID
	}
	return nil
}

func optionalAmount(m *kernel.Money) *float64 {
	if m == nil {
		return nil
	}
	amount := m.Float64()
	return &amount
}
