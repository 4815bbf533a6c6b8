// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities
// and database representations.
package orderrepo

import (
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire string so the table reads naturally in SQL
// and the admin queries can filter without knowing enum ordinals.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	DeliveryAddress  string
	Notes            string
	Status           string               `gorm:"index"`
	TotalAmount      decimal.Decimal      `gorm:"type:numeric"`
	EstimatedPrice   decimal.NullDecimal  `gorm:"type:numeric"`
	FinalPrice       decimal.NullDecimal  `gorm:"type:numeric"`
	PaymentSessionID *string              `gorm:"uniqueIndex"`
	Items            []ItemDTO            `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one snapshotted line item row.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
	Subtotal  decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var userID *uuid.UUID
	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
			Subtotal:  item.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		UserID:           userID,
		CustomerName:     aggregate.Customer().Name,
		CustomerEmail:    aggregate.Customer().Email,
		CustomerPhone:    aggregate.Customer().Phone,
		DeliveryAddress:  aggregate.DeliveryAddress(),
		Notes:            aggregate.Notes(),
		Status:           aggregate.Status().String(),
		TotalAmount:      aggregate.TotalAmount().Amount(),
		EstimatedPrice:   nullDecimal(aggregate.EstimatedPrice()),
		FinalPrice:       nullDecimal(aggregate.FinalPrice()),
		PaymentSessionID: aggregate.PaymentSessionID(),
		Items:            items,
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

func nullDecimal(m *kernel.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Amount(), Valid: true}
}

func optionalMoney(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil
	}

	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	estimated, err := optionalMoney(dto.EstimatedPrice)
	if err != nil {
		return nil, err
	}

	final, err := optionalMoney(dto.FinalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		userID,
		order.Customer{
			Name:  dto.CustomerName,
			Email: dto.CustomerEmail,
			Phone: dto.CustomerPhone,
		},
		dto.DeliveryAddress,
		dto.Notes,
		status,
		total,
		estimated,
		final,
		dto.PaymentSessionID,
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(id, productID, dto.Name, dto.Quantity, unitPrice, subtotal), nil
}
