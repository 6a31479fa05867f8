package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
)

// OrderRepo is a read-only view over the fulfillment module's tables.
type OrderRepo interface {
	// GetPurchasedProductIDs flattens recent orders in the given states to
	// their line-item product IDs. May contain duplicates; callers dedupe.
	GetPurchasedProductIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, statuses []types.OrderStatus) ([]uuid.UUID, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (r *orderRepo) GetPurchasedProductIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, statuses []types.OrderStatus) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if userID == uuid.Nil || len(statuses) == 0 {
		return ids, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.OrderItem{}).
		Joins("JOIN customer_order ON customer_order.id = customer_order_item.order_id").
		Where("customer_order.user_id = ? AND customer_order.created_at >= ? AND customer_order.status IN ?", userID, since, statuses).
		Pluck("customer_order_item.product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
