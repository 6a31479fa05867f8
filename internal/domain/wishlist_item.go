package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is unique per (user, product). Re-adding flips a removed row
// back to active; removal is a soft delete that stamps RemovedAt.
type WishlistItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Product   *Product   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Status    ItemStatus `gorm:"not null;default:active;index;column:status" json:"status"`
	AddedAt   time.Time  `gorm:"not null;index;column:added_at" json:"added_at"`
	RemovedAt *time.Time `gorm:"column:removed_at" json:"removed_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (WishlistItem) TableName() string { return "wishlist_item" }
