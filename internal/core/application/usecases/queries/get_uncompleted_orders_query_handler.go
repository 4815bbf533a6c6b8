package queries

import (
	"context"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves open orders from the database.
// Terminal orders (completed, cancelled) are filtered out so the admin
// work list only shows orders that can still move.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all open orders, oldest first so
// the longest-waiting customers surface at the top.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_name,
			customer_email,
			total_amount,
			final_price IS NOT NULL,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, order.Completed.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			status        string
			customerName  string
			customerEmail string
			totalAmount   decimal.Decimal
			hasFinalPrice bool
			createdAt     time.Time
		)

		err = rows.Scan(
			&id, &status, &customerName, &customerEmail, &totalAmount, &hasFinalPrice, &createdAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		total, moneyErr := kernel.NewMoney(totalAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}

		orders = append(orders, GetUncompletedOrdersQueryResponse{
			ID:            orderID,
			Status:        status,
			CustomerName:  customerName,
			CustomerEmail: customerEmail,
			TotalAmount:   total,
			HasFinalPrice: hasFinalPrice,
			CreatedAt:     createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
