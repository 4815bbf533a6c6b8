package ports

import (
	"context"

	"flowershop/internal/core/domain/model/kernel"
)

// CheckoutSession is a payment-processor checkout session created for an order.
type CheckoutSession struct {
	// ID is the processor's session identifier.
	ID string

	// URL is where the client is redirected to complete payment.
	URL string
}

// PaymentSessionStatus is the processor's view of a checkout session.
type PaymentSessionStatus struct {
	// Paid reports whether the session completed successfully.
	Paid bool

	// AmountTotal is the amount charged for a paid session.
	AmountTotal kernel.Money
}

// PaymentGateway is the outbound contract to the payment processor.
// No retry or timeout policy beyond the underlying HTTP client's defaults
// is applied; failures surface immediately to the caller.
type PaymentGateway interface {
	// CreateCheckoutSession creates a checkout session for the given order
	// and amount. The order id travels in the session metadata so that
	// webhook events can be matched back to the order directly.
	CreateCheckoutSession(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (CheckoutSession, error)

	// GetSessionStatus re-queries the processor for the current state of a
	// checkout session.
	GetSessionStatus(ctx context.Context, sessionID string) (PaymentSessionStatus, error)
}

// GeneratedAsset is the result of one image generation request.
type GeneratedAsset struct {
	ImageURL string
	TaskUUID string
	Seed     int64
}

// ImageGenerationRequest describes one generation request to the provider.
type ImageGenerationRequest struct {
	Prompt string

	// UseImageToImage switches the provider into image-to-image mode,
	// transforming the uploaded base image instead of generating from
	// scratch. BaseImageUUID must be set when true.
	UseImageToImage bool
	BaseImageUUID   string
}

// ImageGenerator is the outbound contract to the image-generation provider.
type ImageGenerator interface {
	// Generate forwards a generation request and returns the produced asset.
	Generate(ctx context.Context, req ImageGenerationRequest) (GeneratedAsset, error)

	// UploadAsset uploads a base64-encoded image to the provider's asset
	// store and returns the provider's image identifier.
	UploadAsset(ctx context.Context, imageBase64, taskUUID string) (string, error)
}
