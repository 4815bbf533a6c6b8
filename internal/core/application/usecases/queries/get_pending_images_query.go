package queries

import (
	"errors"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/pkg/guard"
)

var (
	ErrGetPendingImagesQueryIsNotConstructed = errors.New(
		"GetPendingImagesQuery must be created via NewGetPendingImagesQuery constructor",
	)
)

// GetPendingImagesQuery retrieves the moderation work list: every image
// still pending, plus already-moderated images whose verdict now disagrees
// with their linked order (approved image on a cancelled order, rejected
// image on a confirmed order). The latter carry a mismatch warning so an
// admin can revisit them.
type GetPendingImagesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingImagesQuery creates a query for the moderation work list.
func NewGetPendingImagesQuery() GetPendingImagesQuery {
	return GetPendingImagesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingImagesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingImagesQueryIsNotConstructed)
}

// GetPendingImagesQueryResponse is one entry on the moderation work list.
type GetPendingImagesQueryResponse struct {
	ID               kernel.UUID
	Prompt           string
	URL              string
	ModerationStatus string

	// OrderID and OrderStatus are set when the image is linked to an order.
	OrderID     *kernel.UUID
	OrderStatus string

	// StatusMismatch warns that the moderation verdict disagrees with the
	// linked order's state. Display only.
	StatusMismatch bool

	CreatedAt time.Time
}
