// Package image provides the GeneratedImage aggregate: a record of an
// AI-produced image awaiting admin moderation. Images may be loosely
// associated with an order for display; that association carries no
// invariant of its own.
package image

import (
	"errors"
	"fmt"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/errs"
)

var (
	// ErrImageIsNotConstructed is returned when a GeneratedImage was not
	// created through the NewGeneratedImage or RestoreGeneratedImage
	// factory functions.
	ErrImageIsNotConstructed = errors.New(
		"GeneratedImage must be created via NewGeneratedImage or RestoreGeneratedImage")

	// ErrAlreadyModerated is returned when approving or rejecting an image
	// that has already left the pending state. Moderation is one-shot.
	ErrAlreadyModerated = errors.New("image has already been moderated")
)

// ModerationStatus is the moderation state of a generated image.
//
// State transitions:
//
//	pending ──> approved
//	pending ──> rejected
//
// Both approved and rejected are terminal.
type ModerationStatus int

const (
	// ModerationUnknown represents an invalid or undefined status.
	ModerationUnknown ModerationStatus = iota

	// ModerationPending is the initial status of every generated image.
	ModerationPending

	// ModerationApproved means an admin accepted the image for display.
	ModerationApproved

	// ModerationRejected means an admin declined the image.
	ModerationRejected
)

func getModerationStatusStrings() map[ModerationStatus]string {
	return map[ModerationStatus]string{
		ModerationUnknown:  "unknown",
		ModerationPending:  "pending",
		ModerationApproved: "approved",
		ModerationRejected: "rejected",
	}
}

// ModerationStatusFromString parses a wire-level moderation status string.
func ModerationStatusFromString(s string) (ModerationStatus, error) {
	for status, str := range getModerationStatusStrings() {
		if status != ModerationUnknown && str == s {
			return status, nil
		}
	}
	return ModerationUnknown, errs.NewValueIsInvalidErrorWithCause("moderation status",
		fmt.Errorf("%q is not a valid moderation status", s))
}

// Validate checks if the ModerationStatus value is valid.
func (s ModerationStatus) Validate() error {
	if s != ModerationPending && s != ModerationApproved && s != ModerationRejected {
		return errs.NewValueIsInvalidErrorWithCause("moderation status",
			fmt.Errorf("%d is not a valid moderation status", s))
	}
	return nil
}

// String returns the wire-level string of the status, e.g. "pending".
func (s ModerationStatus) String() string {
	if str, ok := getModerationStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// GeneratedImage records one AI-produced image: the prompt that produced it,
// the provider task identifiers, and its moderation state.
type GeneratedImage struct {
	id       kernel.UUID
	prompt   string
	url      string
	taskUUID string
	seed     int64
	status   ModerationStatus

	// orderID loosely associates the image with an order for display (nil if none)
	orderID *kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewGeneratedImage creates a pending image record for a completed
// provider generation.
func NewGeneratedImage(id kernel.UUID, prompt, url, taskUUID string, seed int64) (*GeneratedImage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if prompt == "" {
		return nil, errs.NewValueIsRequiredError("prompt")
	}
	if url == "" {
		return nil, errs.NewValueIsRequiredError("image url")
	}

	now := time.Now().UTC()
	return &GeneratedImage{
		id:            id,
		prompt:        prompt,
		url:           url,
		taskUUID:      taskUUID,
		seed:          seed,
		status:        ModerationPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreGeneratedImage reconstructs an image record from persistence.
func RestoreGeneratedImage(
	id kernel.UUID,
	prompt, url, taskUUID string,
	seed int64,
	status ModerationStatus,
	orderID *kernel.UUID,
	createdAt, updatedAt time.Time,
) (*GeneratedImage, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &GeneratedImage{
		id:            id,
		prompt:        prompt,
		url:           url,
		taskUUID:      taskUUID,
		seed:          seed,
		status:        status,
		orderID:       orderID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the image was created through a factory function.
func (g *GeneratedImage) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrImageIsNotConstructed
	}
	return nil
}

// Approve marks a pending image as accepted for display.
// Returns ErrAlreadyModerated for images that already left pending.
func (g *GeneratedImage) Approve() error {
	return g.moderate(ModerationApproved)
}

// Reject marks a pending image as declined.
// Returns ErrAlreadyModerated for images that already left pending.
func (g *GeneratedImage) Reject() error {
	return g.moderate(ModerationRejected)
}

func (g *GeneratedImage) moderate(dst ModerationStatus) error {
	if g.status != ModerationPending {
		return ErrAlreadyModerated
	}

	g.status = dst
	g.updatedAt = time.Now().UTC()
	return nil
}

// AssociateOrder links the image to an order for display purposes.
func (g *GeneratedImage) AssociateOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	g.orderID = &orderID
	g.updatedAt = time.Now().UTC()
	return nil
}

// ID returns the image record's unique identifier.
func (g *GeneratedImage) ID() kernel.UUID { return g.id }

// Prompt returns the generation prompt.
func (g *GeneratedImage) Prompt() string { return g.prompt }

// URL returns the provider-hosted image URL.
func (g *GeneratedImage) URL() string { return g.url }

// TaskUUID returns the provider task identifier.
func (g *GeneratedImage) TaskUUID() string { return g.taskUUID }

// Seed returns the generation seed reported by the provider.
func (g *GeneratedImage) Seed() int64 { return g.seed }

// Status returns the current moderation status.
func (g *GeneratedImage) Status() ModerationStatus { return g.status }

// OrderID returns the associated order, or nil if the image is unattached.
func (g *GeneratedImage) OrderID() *kernel.UUID { return g.orderID }

// CreatedAt returns the creation timestamp (UTC).
func (g *GeneratedImage) CreatedAt() time.Time { return g.createdAt }

// UpdatedAt returns the last mutation timestamp (UTC).
func (g *GeneratedImage) UpdatedAt() time.Time { return g.updatedAt }
