package commands

import (
	"context"
	"errors"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/guard"
)

var (
	ErrModerateImageCommandIsNotConstructed = errors.New(
		"ModerateImageCommand must be created via NewModerateImageCommand constructor",
	)
)

// ModerateImageCommand represents an admin's moderation verdict on a
// pending generated image.
type ModerateImageCommand struct { //nolint:recvcheck //using for validation
	imageID kernel.UUID
	approve bool

	guard guard.ConstructorGuard
}

// NewModerateImageCommand creates a command to approve or reject an image.
func NewModerateImageCommand(imageID kernel.UUID, approve bool) (ModerateImageCommand, error) {
	if err := imageID.Validate(); err != nil {
		return ModerateImageCommand{}, err
	}

	return ModerateImageCommand{
		imageID: imageID,
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ModerateImageCommand) Validate() error {
	return c.guard.Validate(ErrModerateImageCommandIsNotConstructed)
}

// ImageID returns the identifier of the image to moderate.
func (c ModerateImageCommand) ImageID() kernel.UUID { return c.imageID }

// Approve reports whether the verdict is approval; otherwise rejection.
func (c ModerateImageCommand) Approve() bool { return c.approve }

// ModerateImageCommandHandler applies moderation verdicts to pending images.
type ModerateImageCommandHandler struct {
	uowFactory ImageUoWFactory
}

// NewModerateImageCommandHandler creates a handler for image moderation.
func NewModerateImageCommandHandler(uowFactory ImageUoWFactory) ModerateImageCommandHandler {
	return ModerateImageCommandHandler{uowFactory: uowFactory}
}

// Handle applies the verdict. Returns image.ErrAlreadyModerated when the
// image is no longer pending.
func (h *ModerateImageCommandHandler) Handle(ctx context.Context, cmd ModerateImageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.ImageRepository().Get(ctx, cmd.ImageID())
	if err != nil {
		return err
	}

	if cmd.Approve() {
		err = record.Approve()
	} else {
		err = record.Reject()
	}
	if err != nil {
		return err
	}

	if err = uow.ImageRepository().Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
