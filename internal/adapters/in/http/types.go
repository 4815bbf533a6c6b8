package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type productPayload struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

type newProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

type orderLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type newOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Notes           string             `json:"notes"`
	Items           []orderLineRequest `json:"items"`
}

type newCustomOrderRequest struct {
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail"`
	CustomerPhone   string   `json:"customerPhone"`
	DeliveryAddress string   `json:"deliveryAddress"`
	Description     string   `json:"description"`
	EstimatedPrice  *float64 `json:"estimatedPrice"`
}

type orderCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type orderItemPayload struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

type customerOrderPayload struct {
	ID              uuid.UUID          `json:"id"`
	Status          string             `json:"status"`
	TotalAmount     float64            `json:"totalAmount"`
	FinalPrice      *float64           `json:"finalPrice"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CreatedAt       time.Time          `json:"createdAt"`
	Items           []orderItemPayload `json:"items"`
}

type uncompletedOrderPayload struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	TotalAmount   float64   `json:"totalAmount"`
	HasFinalPrice bool      `json:"hasFinalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

type changeOrderStatusRequest struct {
	ID      uuid.UUID            `json:"id"`
	Status  string               `json:"status"`
	Updates *orderUpdatesPayload `json:"updates"`
}

type orderUpdatesPayload struct {
	DeliveryAddress *string `json:"deliveryAddress"`
	Notes           *string `json:"notes"`
}

type changeOrderStatusResponse struct {
	Success bool               `json:"success"`
	Updated orderStatusPayload `json:"updated"`
}

type orderStatusPayload struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type setOrderPriceRequest struct {
	ID    uuid.UUID `json:"id"`
	Price float64   `json:"price"`
}

type setOrderPriceResponse struct {
	ID         uuid.UUID `json:"id"`
	Status     string    `json:"status"`
	FinalPrice float64   `json:"finalPrice"`
}

type newPaymentSessionRequest struct {
	OrderID uuid.UUID `json:"orderId"`
	Amount  float64   `json:"amount"`
}

type paymentSessionResponse struct {
	URL string `json:"url"`
}

type verifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

type verifyPaymentResponse struct {
	Paid   bool   `json:"paid"`
	Status string `json:"status"`
}

type generateImageRequest struct {
	Prompt          string     `json:"prompt"`
	UseImageToImage bool       `json:"useImageToImage"`
	BaseImageUUID   string     `json:"baseImageUUID"`
	OrderID         *uuid.UUID `json:"orderId"`
}

type generateImageResponse struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
	TaskUUID string `json:"taskUUID"`
	Seed     int64  `json:"seed"`
}

type uploadImageRequest struct {
	Image    string `json:"image"`
	TaskUUID string `json:"taskUUID"`
}

type uploadImageResponse struct {
	ImageUUID string `json:"imageUUID"`
	TaskUUID  string `json:"taskUUID"`
}

type moderateImageRequest struct {
	ID      uuid.UUID `json:"id"`
	Approve bool      `json:"approve"`
}

type pendingImagePayload struct {
	ID               uuid.UUID  `json:"id"`
	Prompt           string     `json:"prompt"`
	URL              string     `json:"url"`
	ModerationStatus string     `json:"moderationStatus"`
	OrderID          *uuid.UUID `json:"orderId"`
	OrderStatus      string     `json:"orderStatus,omitempty"`
	StatusMismatch   bool       `json:"statusMismatch"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type notificationPayload struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type extractCardsRequest struct {
	Text string `json:"text"`
}

type flowerCardPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	Style       string `json:"style,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Category    string `json:"category,omitempty"`
}

type extractCardsResponse struct {
	Cards []flowerCardPayload `json:"cards"`
}
