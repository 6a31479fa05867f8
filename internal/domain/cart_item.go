package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem has the same natural key and soft-delete semantics as
// WishlistItem; quantity is last-write-wins on repeated adds.
type CartItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   *Product   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Quantity  int        `gorm:"not null;default:1;column:quantity" json:"quantity"`
	Status    ItemStatus `gorm:"not null;default:active;index;column:status" json:"status"`
	AddedAt   time.Time  `gorm:"not null;index;column:added_at" json:"added_at"`
	RemovedAt *time.Time `gorm:"column:removed_at" json:"removed_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_item" }
