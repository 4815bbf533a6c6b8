package userrolerepo

import (
	"context"

	"flowershop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoleDTO is a role grant row. A user may hold several roles.
type UserRoleDTO struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   string    `gorm:"primaryKey"`
}

// TableName overrides the table name used by GORM.
func (UserRoleDTO) TableName() string {
	return "user_roles"
}

// GormRoleReader loads role grants from the user_roles table. Role checks
// always go through storage; role claims carried in tokens are never
// trusted.
type GormRoleReader struct {
	db *gorm.DB
}

// NewGormRoleReader creates a new GORM role reader.
func NewGormRoleReader(db *gorm.DB) *GormRoleReader {
	return &GormRoleReader{db: db}
}

// Roles returns the roles granted to the user. A user without grants gets
// an empty set, not an error.
func (r *GormRoleReader) Roles(ctx context.Context, userID kernel.UUID) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&UserRoleDTO{}).
		Where("user_id = ?", userID.Bytes()).
		Order("role").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, err
	}

	return roles, nil
}
