package queries

import (
	"context"
	"database/sql"
	"time"

	"flowershop/internal/core/domain/model/image"
	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"
	"flowershop/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingImagesQueryHandler builds the moderation work list from the
// database. The candidate set is fetched with one joined query; the
// mismatch rule itself lives in the domain service, so rows that were
// already moderated only stay on the list when the service flags them.
type GetPendingImagesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingImagesQueryHandler creates a handler for moderation queries.
// Requires a GORM database connection for query execution.
func NewGetPendingImagesQueryHandler(db *gorm.DB) GetPendingImagesQueryHandler {
	return GetPendingImagesQueryHandler{db: db}
}

// Handle executes the moderation work list query, oldest first.
func (h GetPendingImagesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingImagesQuery,
) ([]GetPendingImagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	images := make([]GetPendingImagesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.prompt,
			i.url,
			i.status,
			i.order_id,
			o.status,
			i.created_at
		FROM generated_images i
		LEFT JOIN orders o ON o.id = i.order_id
		WHERE i.status = ? OR i.order_id IS NOT NULL
		ORDER BY i.created_at
	`, image.ModerationPending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			prompt      string
			url         string
			status      string
			orderID     uuid.NullUUID
			orderStatus sql.NullString
			createdAt   time.Time
		)

		err = rows.Scan(&id, &prompt, &url, &status, &orderID, &orderStatus, &createdAt)
		if err != nil {
			return nil, err
		}

		imageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := GetPendingImagesQueryResponse{
			ID:               imageID,
			Prompt:           prompt,
			URL:              url,
			ModerationStatus: status,
			OrderStatus:      orderStatus.String,
			CreatedAt:        createdAt,
		}

		if orderID.Valid {
			linked, linkErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if linkErr != nil {
				return nil, linkErr
			}
			resp.OrderID = &linked
		}

		resp.StatusMismatch = h.mismatch(orderStatus, status)

		// moderated images only stay on the list when flagged
		if status != image.ModerationPending.String() && !resp.StatusMismatch {
			continue
		}

		images = append(images, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

func (h GetPendingImagesQueryHandler) mismatch(orderStatus sql.NullString, imageStatus string) bool {
	if !orderStatus.Valid {
		return false
	}

	os, err := order.StatusFromString(orderStatus.String)
	if err != nil {
		return false
	}
	is, err := image.ModerationStatusFromString(imageStatus)
	if err != nil {
		return false
	}

	return services.StatusMismatch(os, is)
}
