package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/ports"
	"flowershop/internal/pkg/errs"
	"flowershop/internal/pkg/guard"
)

var (
	ErrUploadImageCommandIsNotConstructed = errors.New(
		"UploadImageCommand must be created via NewUploadImageCommand constructor",
	)
)

// UploadImageCommand represents uploading a customer's reference photo to the
// image provider's asset store so it can serve as an image-to-image base.
type UploadImageCommand struct { //nolint:recvcheck //using for validation
	imageBase64 string
	taskUUID    string

	guard guard.ConstructorGuard
}

// NewUploadImageCommand creates a command to upload a base64-encoded image.
func NewUploadImageCommand(imageBase64, taskUUID string) (UploadImageCommand, error) {
	if imageBase64 == "" {
		return UploadImageCommand{}, errs.NewValueIsRequiredError("image data")
	}
	if taskUUID == "" {
		return UploadImageCommand{}, errs.NewValueIsRequiredError("task uuid")
	}

	return UploadImageCommand{
		imageBase64: imageBase64,
		taskUUID:    taskUUID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UploadImageCommand) Validate() error {
	return c.guard.Validate(ErrUploadImageCommandIsNotConstructed)
}

// ImageBase64 returns the base64-encoded image data.
func (c UploadImageCommand) ImageBase64() string { return c.imageBase64 }

// TaskUUID returns the client-chosen task identifier for the upload.
func (c UploadImageCommand) TaskUUID() string { return c.taskUUID }

// UploadImageCommandHandler forwards uploads to the image provider.
// Nothing is persisted locally; the provider's image identifier is handed
// back to the client for a later generation request.
type UploadImageCommandHandler struct {
	generator ports.ImageGenerator
}

// NewUploadImageCommandHandler creates a handler for base image uploads.
func NewUploadImageCommandHandler(generator ports.ImageGenerator) UploadImageCommandHandler {
	return UploadImageCommandHandler{generator: generator}
}

// Handle uploads the image and returns the provider's image identifier.
func (h *UploadImageCommandHandler) Handle(ctx context.Context, cmd UploadImageCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	return h.generator.UploadAsset(ctx, cmd.ImageBase64(), cmd.TaskUUID())
}
