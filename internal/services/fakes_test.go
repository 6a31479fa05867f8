package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
	"github.com/pawmart/pawmart-backend/internal/repos"
)

// In-memory repo fakes. Services run without a *gorm.DB in unit tests, so
// these only need to honor the repo contracts, not SQL semantics.

type fakeProductRepo struct {
	products map[uuid.UUID]*types.Product

	candidates    []*types.Product
	lastCandidate repos.CandidateQuery
	popular       []*types.Product
	popularCalls  int
}

func newFakeProductRepo(products ...*types.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*types.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Product, error) {
	var out []*types.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	_, ok := r.products[id]
	return ok, nil
}

func (r *fakeProductRepo) FindCandidates(ctx context.Context, tx *gorm.DB, q repos.CandidateQuery) ([]*types.Product, error) {
	r.lastCandidate = q
	excluded := make(map[uuid.UUID]struct{}, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*types.Product
	for _, p := range r.candidates {
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		out = append(out, p)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeProductRepo) FindPopular(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Product, error) {
	r.popularCalls++
	out := r.popular
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeViewRepo struct {
	views []*types.ProductView

	refreshed int
	created   int
}

func (r *fakeViewRepo) RefreshOrCreate(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, sessionID string, since, now time.Time) (bool, error) {
	for _, v := range r.views {
		if v.UserID == userID && v.ProductID == productID && !v.ViewedAt.Before(since) {
			v.ViewedAt = now
			r.refreshed++
			return false, nil
		}
	}
	r.views = append(r.views, &types.ProductView{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		SessionID: sessionID,
		ViewedAt:  now,
	})
	r.created++
	return true, nil
}

func (r *fakeViewRepo) GetRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.ProductView, error) {
	var out []*types.ProductView
	for _, v := range r.views {
		if v.UserID == userID && !v.ViewedAt.Before(since) {
			out = append(out, v)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeWishlistRepo struct {
	items []*types.WishlistItem
}

func (r *fakeWishlistRepo) find(userID, productID uuid.UUID) *types.WishlistItem {
	for _, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			return it
		}
	}
	return nil
}

func (r *fakeWishlistRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.WishlistItem, error) {
	if it := r.find(userID, productID); it != nil {
		it.Status = types.ItemStatusActive
		it.AddedAt = now
		it.RemovedAt = nil
		return it, nil
	}
	it := &types.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Status:    types.ItemStatusActive,
		AddedAt:   now,
	}
	r.items = append(r.items, it)
	return it, nil
}

func (r *fakeWishlistRepo) SoftRemove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.WishlistItem, error) {
	it := r.find(userID, productID)
	if it == nil {
		return nil, pkgerrors.ErrNotFound
	}
	it.Status = types.ItemStatusRemoved
	it.RemovedAt = &now
	return it, nil
}

func (r *fakeWishlistRepo) GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.ItemStatus) ([]*types.WishlistItem, error) {
	var out []*types.WishlistItem
	for _, it := range r.items {
		if it.UserID == userID && it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	items []*types.CartItem
}

func (r *fakeCartRepo) find(userID, productID uuid.UUID) *types.CartItem {
	for _, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			return it
		}
	}
	return nil
}

func (r *fakeCartRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, quantity int, now time.Time) (*types.CartItem, error) {
	if it := r.find(userID, productID); it != nil {
		it.Status = types.ItemStatusActive
		it.Quantity = quantity
		it.AddedAt = now
		it.RemovedAt = nil
		return it, nil
	}
	it := &types.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    types.ItemStatusActive,
		AddedAt:   now,
	}
	r.items = append(r.items, it)
	return it, nil
}

func (r *fakeCartRepo) SoftRemove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID, now time.Time) (*types.CartItem, error) {
	it := r.find(userID, productID)
	if it == nil {
		return nil, pkgerrors.ErrNotFound
	}
	it.Status = types.ItemStatusRemoved
	it.RemovedAt = &now
	return it, nil
}

func (r *fakeCartRepo) GetByUserAndStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.ItemStatus) ([]*types.CartItem, error) {
	var out []*types.CartItem
	for _, it := range r.items {
		if it.UserID == userID && it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	purchased map[uuid.UUID][]uuid.UUID
}

func (r *fakeOrderRepo) GetPurchasedProductIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, statuses []types.OrderStatus) ([]uuid.UUID, error) {
	if r.purchased == nil {
		return nil, nil
	}
	return r.purchased[userID], nil
}

type fakePopularityCache struct {
	store map[int][]*types.Product
	hits  int
	sets  int
}

func (c *fakePopularityCache) GetPopular(ctx context.Context, limit int) ([]*types.Product, bool) {
	if c.store == nil {
		return nil, false
	}
	products, ok := c.store[limit]
	if ok {
		c.hits++
	}
	return products, ok
}

func (c *fakePopularityCache) SetPopular(ctx context.Context, limit int, products []*types.Product) {
	if c.store == nil {
		c.store = make(map[int][]*types.Product)
	}
	c.store[limit] = products
	c.sets++
}

func (c *fakePopularityCache) Close() error { return nil }
