package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
)

type CartRepo interface {
	// Upsert mirrors WishlistRepo.Upsert with quantity last-write-wins.
	Upsert(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, quantity int, now time.Time) (*types.CartItem, error)
	SoftRemove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.CartItem, error)
	GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.ItemStatus) ([]*types.CartItem, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	repoLog := baseLog.With("repo", "CartRepo")
	return &cartRepo{db: db, log: repoLog}
}

func (r *cartRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, quantity int, now time.Time) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	item := &types.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    types.ItemStatusActive,
		AddedAt:   now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     string(types.ItemStatusActive),
				"quantity":   quantity,
				"added_at":   now,
				"removed_at": nil,
				"updated_at": now,
			}),
		}).
		Create(item).Error; err != nil {
		return nil, err
	}

	return r.getByUserAndProduct(ctx, transaction, userID, productID)
}

func (r *cartRepo) SoftRemove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{
			"status":     string(types.ItemStatusRemoved),
			"removed_at": now,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.ErrNotFound
	}

	return r.getByUserAndProduct(ctx, transaction, userID, productID)
}

func (r *cartRepo) GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.ItemStatus) ([]*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CartItem
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Tags").
		Where("user_id = ? AND status = ?", userID, status).
		Order("added_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cartRepo) getByUserAndProduct(ctx context.Context, transaction *gorm.DB, userID, productID uuid.UUID) (*types.CartItem, error) {
	var item types.CartItem
	if err := transaction.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
