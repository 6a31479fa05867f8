package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductView is one observation of a user looking at a product. Repeated
// views inside the dedup window refresh ViewedAt in place instead of adding a
// row; rows are never deleted.
type ProductView struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_product_view_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_product_view_user_product" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	SessionID string    `gorm:"column:session_id" json:"session_id,omitempty"`
	ViewedAt  time.Time `gorm:"not null;index;column:viewed_at" json:"viewed_at"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ProductView) TableName() string { return "product_view" }
