package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
		Role:     "customer",
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:       uuid.New(),
		Name:     name,
		Type:     "product",
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, name string, tags ...string) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         9.99,
		StockQuantity: 100,
		CategoryID:    categoryID,
		Rating:        4.0,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	for _, tag := range tags {
		row := &types.ProductTag{ProductID: p.ID, Tag: tag}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed product tag: %v", err)
		}
		p.Tags = append(p.Tags, *row)
	}
	return p
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.OrderStatus, createdAt time.Time, productIDs ...uuid.UUID) *types.Order {
	tb.Helper()
	o := &types.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    status,
		Total:     10,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	for _, pid := range productIDs {
		item := &types.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: pid,
			Quantity:  1,
			Price:     10,
		}
		if err := tx.WithContext(ctx).Create(item).Error; err != nil {
			tb.Fatalf("seed order item: %v", err)
		}
		o.Items = append(o.Items, *item)
	}
	return o
}

func PtrTime(v time.Time) *time.Time { return &v }
