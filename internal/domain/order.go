package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Order is owned by the order-fulfillment module; the recommendation core
// only reads it to exclude purchased products and widen interest.
type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Items           []OrderItem    `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrderID;references:ID" json:"items,omitempty"`
	Status          OrderStatus    `gorm:"not null;default:pending;index;column:status" json:"status"`
	Total           float64        `gorm:"not null;default:0;column:total" json:"total"`
	ShippingAddress datatypes.JSON `gorm:"type:jsonb;column:shipping_address" json:"shipping_address,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string { return "customer_order" }

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:SET NULL;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1;column:quantity" json:"quantity"`
	Price     float64   `gorm:"not null;default:0;column:price" json:"price"`
}

func (OrderItem) TableName() string { return "customer_order_item" }
