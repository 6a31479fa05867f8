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

type WishlistRepo interface {
	// Upsert inserts the (user, product) row or reactivates it in a single
	// ON CONFLICT write: status back to active, added_at refreshed,
	// removed_at cleared.
	Upsert(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.WishlistItem, error)
	// SoftRemove flips the row to removed and stamps removed_at. The row is
	// retained as a negative signal. Returns ErrNotFound when no row exists
	// for the pair.
	SoftRemove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.WishlistItem, error)
	GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.ItemStatus) ([]*types.WishlistItem, error)
}

type wishlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWishlistRepo(db *gorm.DB, baseLog *logger.Logger) WishlistRepo {
	repoLog := baseLog.With("repo", "WishlistRepo")
	return &wishlistRepo{db: db, log: repoLog}
}

func (r *wishlistRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	item := &types.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Status:    types.ItemStatusActive,
		AddedAt:   now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     string(types.ItemStatusActive),
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

func (r *wishlistRepo) SoftRemove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.WishlistItem{}).
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

func (r *wishlistRepo) GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.ItemStatus) ([]*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WishlistItem
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

func (r *wishlistRepo) getByUserAndProduct(ctx context.Context, transaction *gorm.DB, userID, productID uuid.UUID) (*types.WishlistItem, error) {
	var item types.WishlistItem
	if err := transaction.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
