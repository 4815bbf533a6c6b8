package queries

import (
	"context"
	"database/sql"
	"time"

	"flowershop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler reads a user's order history straight from
// the database, bypassing the aggregate repositories.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the history query. Orders come back newest first with
// their snapshotted line items attached.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCustomerOrdersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			total_amount,
			final_price,
			delivery_address,
			created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, query.UserID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			status      string
			totalAmount decimal.Decimal
			finalPrice  decimal.NullDecimal
			address     sql.NullString
			createdAt   time.Time
		)

		if err = rows.Scan(&id, &status, &totalAmount, &finalPrice, &address, &createdAt); err != nil {
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

		resp := GetCustomerOrdersQueryResponse{
			ID:              orderID,
			Status:          status,
			TotalAmount:     total,
			DeliveryAddress: address.String,
			CreatedAt:       createdAt,
			Items:           make([]CustomerOrderItemResponse, 0),
		}

		if finalPrice.Valid {
			final, finalErr := kernel.NewMoney(finalPrice.Decimal)
			if finalErr != nil {
				return nil, finalErr
			}
			resp.FinalPrice = &final
		}

		index[id] = len(orders)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err = h.attachItems(ctx, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetCustomerOrdersQueryHandler) attachItems(
	ctx context.Context,
	orders []GetCustomerOrdersQueryResponse,
	index map[uuid.UUID]int,
) error {
	orderIDs := make([]string, 0, len(index))
	for id := range index {
		orderIDs = append(orderIDs, id.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			name,
			quantity,
			unit_price,
			subtotal
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY id
	`, orderIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID   uuid.UUID
			name      string
			quantity  int
			unitPrice decimal.Decimal
			subtotal  decimal.Decimal
		)

		if err = rows.Scan(&orderID, &name, &quantity, &unitPrice, &subtotal); err != nil {
			return err
		}

		unit, moneyErr := kernel.NewMoney(unitPrice)
		if moneyErr != nil {
			return moneyErr
		}
		sub, moneyErr := kernel.NewMoney(subtotal)
		if moneyErr != nil {
			return moneyErr
		}

		pos, ok := index[orderID]
		if !ok {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, CustomerOrderItemResponse{
			Name:      name,
			Quantity:  quantity,
			UnitPrice: unit,
			Subtotal:  sub,
		})
	}

	return rows.Err()
}
