package db

import (
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity
		// =========================
		&types.User{},

		// =========================
		// Catalog (read model)
		// =========================
		&types.Category{},
		&types.Product{},
		&types.ProductTag{},

		// =========================
		// Behavior store
		// =========================
		&types.ProductView{},
		&types.WishlistItem{},
		&types.CartItem{},

		// =========================
		// Orders (read model)
		// =========================
		&types.Order{},
		&types.OrderItem{},
	)
}
