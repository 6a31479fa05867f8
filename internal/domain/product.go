package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string         `gorm:"not null;column:name" json:"name"`
	Description     string         `gorm:"column:description" json:"description"`
	Price           float64        `gorm:"not null;column:price" json:"price"`
	SalePrice       *float64       `gorm:"column:sale_price" json:"sale_price,omitempty"`
	StockQuantity   int            `gorm:"not null;default:0;column:stock_quantity" json:"stock_quantity"`
	Images          datatypes.JSON `gorm:"type:jsonb;column:images" json:"images,omitempty"`
	CategoryID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category        *Category      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Target          string         `gorm:"column:target;default:both" json:"target"`
	Brand           string         `gorm:"column:brand" json:"brand,omitempty"`
	Tags            []ProductTag   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"tags,omitempty"`
	Rating          float64        `gorm:"not null;default:0;column:rating" json:"rating"`
	SalesCount      int            `gorm:"not null;default:0;index;column:sales_count" json:"sales_count"`
	BestsellerScore float64        `gorm:"not null;default:0;column:bestseller_score" json:"bestseller_score"`
	IsFeatured      bool           `gorm:"not null;default:false;column:is_featured" json:"is_featured"`
	IsActive        bool           `gorm:"not null;default:true;index;column:is_active" json:"is_active"`
	CreatedAt       time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// TagNames flattens the tag rows into the plain string set the scorer and the
// candidate queries work with.
func (p *Product) TagNames() []string {
	if len(p.Tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		out = append(out, t.Tag)
	}
	return out
}

// ProductTag is one tag on one product. Tags live in their own table so the
// candidate query can match "any tag in set" in SQL.
type ProductTag struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Tag       string    `gorm:"primaryKey;index" json:"-"`
}

func (ProductTag) TableName() string { return "product_tag" }

// Tags serialize as plain strings so product payloads carry
// `"tags": ["grain-free", ...]` like the rest of the API.
func (t ProductTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Tag)
}

func (t *ProductTag) UnmarshalJSON(raw []byte) error {
	return json.Unmarshal(raw, &t.Tag)
}
