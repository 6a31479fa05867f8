package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
)

// CandidateQuery selects active products matching the interest vocabulary
// (category OR tag) minus the excluded IDs, capped at Limit.
type CandidateQuery struct {
	CategoryIDs []uuid.UUID
	Tags        []string
	ExcludeIDs  []uuid.UUID
	Limit       int
}

type ProductRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Product, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	FindCandidates(ctx context.Context, tx *gorm.DB, q CandidateQuery) ([]*types.Product, error)
	FindPopular(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (r *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Product
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return false, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) FindCandidates(ctx context.Context, tx *gorm.DB, q CandidateQuery) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Product
	if len(q.CategoryIDs) == 0 && len(q.Tags) == 0 {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Preload("Category").
		Preload("Tags").
		Where("is_active = ?", true)

	if len(q.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", q.ExcludeIDs)
	}

	tagged := transaction.Model(&types.ProductTag{}).
		Select("product_id").
		Where("tag IN ?", q.Tags)

	switch {
	case len(q.CategoryIDs) > 0 && len(q.Tags) > 0:
		query = query.Where("category_id IN ? OR id IN (?)", q.CategoryIDs, tagged)
	case len(q.CategoryIDs) > 0:
		query = query.Where("category_id IN ?", q.CategoryIDs)
	default:
		query = query.Where("id IN (?)", tagged)
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productRepo) FindPopular(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Product
	query := transaction.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("is_active = ?", true).
		Order("rating DESC, sales_count DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
