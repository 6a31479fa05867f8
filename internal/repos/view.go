package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
)

type ProductViewRepo interface {
	// RefreshOrCreate bumps viewed_at on an existing row inside the dedup
	// window, or inserts a new row when none matched. The update is a single
	// conditional write, so concurrent duplicate requests cannot double-bump.
	RefreshOrCreate(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, sessionID string, since, now time.Time) (created bool, err error)
	GetRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.ProductView, error)
}

type productViewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductViewRepo(db *gorm.DB, baseLog *logger.Logger) ProductViewRepo {
	repoLog := baseLog.With("repo", "ProductViewRepo")
	return &productViewRepo{db: db, log: repoLog}
}

func (r *productViewRepo) RefreshOrCreate(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, sessionID string, since, now time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.ProductView{}).
		Where("user_id = ? AND product_id = ? AND viewed_at >= ?", userID, productID, since).
		Updates(map[string]interface{}{
			"viewed_at":  now,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	view := &types.ProductView{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		SessionID: sessionID,
		ViewedAt:  now,
	}
	if err := transaction.WithContext(ctx).Create(view).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *productViewRepo) GetRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.ProductView, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProductView
	if userID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Where("user_id = ? AND viewed_at >= ?", userID, since).
		Order("viewed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
