package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/repos"
)

// viewDedupWindow bounds how long a repeated view refreshes the existing row
// instead of creating a new one.
const viewDedupWindow = time.Hour

// BehaviorService is the interaction recorder: the only writer of the
// behavior store. All removals are soft deletes.
type BehaviorService interface {
	TrackView(ctx context.Context, userID, productID uuid.UUID, sessionID string) error
	AddToWishlist(ctx context.Context, userID, productID uuid.UUID) (*types.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) (*types.WishlistItem, error)
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]*types.WishlistItem, error)
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*types.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*types.CartItem, error)
	GetCart(ctx context.Context, userID uuid.UUID) ([]*types.CartItem, error)
}

type behaviorService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	viewRepo     repos.ProductViewRepo
	wishlistRepo repos.WishlistRepo
	cartRepo     repos.CartRepo
}

func NewBehaviorService(
	db *gorm.DB,
	log *logger.Logger,
	productRepo repos.ProductRepo,
	viewRepo repos.ProductViewRepo,
	wishlistRepo repos.WishlistRepo,
	cartRepo repos.CartRepo,
) BehaviorService {
	serviceLog := log.With("service", "BehaviorService")
	return &behaviorService{
		db:           db,
		log:          serviceLog,
		productRepo:  productRepo,
		viewRepo:     viewRepo,
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
	}
}

func validatePair(userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidInput)
	}
	if productID == uuid.Nil {
		return fmt.Errorf("%w: product id required", pkgerrors.ErrInvalidInput)
	}
	return nil
}

func (s *behaviorService) requireProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	exists, err := s.productRepo.Exists(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: product %s", pkgerrors.ErrNotFound, productID)
	}
	return nil
}

func (s *behaviorService) TrackView(ctx context.Context, userID, productID uuid.UUID, sessionID string) error {
	if err := validatePair(userID, productID); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.transact(ctx, func(tx *gorm.DB) error {
		if err := s.requireProduct(ctx, tx, productID); err != nil {
			return err
		}
		created, err := s.viewRepo.RefreshOrCreate(ctx, tx, userID, productID, sessionID, now.Add(-viewDedupWindow), now)
		if err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}
		if created {
			s.log.Debug("View recorded", "user_id", userID.String(), "product_id", productID.String())
		}
		return nil
	})
}

func (s *behaviorService) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) (*types.WishlistItem, error) {
	if err := validatePair(userID, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var item *types.WishlistItem
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := s.requireProduct(ctx, tx, productID); err != nil {
			return err
		}
		upserted, err := s.wishlistRepo.Upsert(ctx, tx, userID, productID, now)
		if err != nil {
			return fmt.Errorf("failed to upsert wishlist item: %w", err)
		}
		item = upserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *behaviorService) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) (*types.WishlistItem, error) {
	if err := validatePair(userID, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var item *types.WishlistItem
	err := s.transact(ctx, func(tx *gorm.DB) error {
		removed, err := s.wishlistRepo.SoftRemove(ctx, tx, userID, productID, now)
		if err != nil {
			return err
		}
		item = removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *behaviorService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]*types.WishlistItem, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidInput)
	}
	return s.wishlistRepo.GetByUserAndStatus(ctx, nil, userID, types.ItemStatusActive)
}

func (s *behaviorService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*types.CartItem, error) {
	if err := validatePair(userID, productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", pkgerrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	var item *types.CartItem
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := s.requireProduct(ctx, tx, productID); err != nil {
			return err
		}
		upserted, err := s.cartRepo.Upsert(ctx, tx, userID, productID, quantity, now)
		if err != nil {
			return fmt.Errorf("failed to upsert cart item: %w", err)
		}
		item = upserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *behaviorService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*types.CartItem, error) {
	if err := validatePair(userID, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var item *types.CartItem
	err := s.transact(ctx, func(tx *gorm.DB) error {
		removed, err := s.cartRepo.SoftRemove(ctx, tx, userID, productID, now)
		if err != nil {
			return err
		}
		item = removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *behaviorService) GetCart(ctx context.Context, userID uuid.UUID) ([]*types.CartItem, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidInput)
	}
	return s.cartRepo.GetByUserAndStatus(ctx, nil, userID, types.ItemStatusActive)
}

// transact runs fn inside a transaction when a database is configured; unit
// tests wire repos directly and run without one.
func (s *behaviorService) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}
