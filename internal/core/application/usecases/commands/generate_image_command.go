package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/ports"
	"flowershop/internal/pkg/errs"
	"flowershop/internal/pkg/guard"
)

var (
	ErrGenerateImageCommandIsNotConstructed = errors.New(
		"GenerateImageCommand must be created via NewGenerateImageCommand constructor",
	)
)

// GenerateImageCommand represents a request to produce a bouquet preview
// image from a text prompt, optionally transforming an uploaded base image.
type GenerateImageCommand struct { //nolint:recvcheck //using for validation
	imageID         kernel.UUID
	prompt          string
	useImageToImage bool
	baseImageUUID   string
	orderID         *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateImageCommand creates a command to generate a preview image.
// baseImageUUID is required when useImageToImage is set. orderID may be nil.
func NewGenerateImageCommand(
	imageID kernel.UUID, prompt string, useImageToImage bool, baseImageUUID string, orderID *kernel.UUID,
) (GenerateImageCommand, error) {
	if err := imageID.Validate(); err != nil {
		return GenerateImageCommand{}, err
	}
	if prompt == "" {
		return GenerateImageCommand{}, errs.NewValueIsRequiredError("prompt")
	}
	if useImageToImage && baseImageUUID == "" {
		return GenerateImageCommand{}, errs.NewValueIsRequiredError("base image uuid")
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GenerateImageCommand{}, err
		}
	}

	return GenerateImageCommand{
		imageID:         imageID,
		prompt:          prompt,
		useImageToImage: useImageToImage,
		baseImageUUID:   baseImageUUID,
		orderID:         orderID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateImageCommand) Validate() error {
	return c.guard.Validate(ErrGenerateImageCommandIsNotConstructed)
}

// ImageID returns the identifier for the new image record.
func (c GenerateImageCommand) ImageID() kernel.UUID { return c.imageID }

// Prompt returns the generation prompt.
func (c GenerateImageCommand) Prompt() string { return c.prompt }

// UseImageToImage reports whether the provider should transform a base image.
func (c GenerateImageCommand) UseImageToImage() bool { return c.useImageToImage }

// BaseImageUUID returns the provider identifier of the uploaded base image.
func (c GenerateImageCommand) BaseImageUUID() string { return c.baseImageUUID }

// OrderID returns the order to associate the image with, or nil.
func (c GenerateImageCommand) OrderID() *kernel.UUID { return c.orderID }

// GenerateImageCommandHandler forwards generation requests to the image
// provider and records the produced asset as a pending image.
type GenerateImageCommandHandler struct {
	uowFactory ImageUoWFactory
	generator  ports.ImageGenerator
}

// NewGenerateImageCommandHandler creates a handler for image generation.
func NewGenerateImageCommandHandler(
	uowFactory ImageUoWFactory, generator ports.ImageGenerator,
) GenerateImageCommandHandler {
	return GenerateImageCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
	}
}

// Handle generates the image and persists a pending moderation record.
func (h *GenerateImageCommandHandler) Handle(
	ctx context.Context, cmd GenerateImageCommand,
) (*image.GeneratedImage, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	asset, err := h.generator.Generate(ctx, ports.ImageGenerationRequest{
		Prompt:          cmd.Prompt(),
		UseImageToImage: cmd.UseImageToImage(),
		BaseImageUUID:   cmd.BaseImageUUID(),
	})
	if err != nil {
		return nil, err
	}

	record, err := image.NewGeneratedImage(
		cmd.ImageID(), cmd.Prompt(), asset.ImageURL, asset.TaskUUID, asset.Seed,
	)
	if err != nil {
		return nil, err
	}

	if cmd.OrderID() != nil {
		if err = record.AssociateOrder(*cmd.OrderID()); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ImageRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
