package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/internal/clients/redis"
	types "github.com/pawmart/pawmart-backend/internal/domain"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/repos"
)

// Interaction windows: events older than these no longer count as live
// interest signal.
const (
	viewWindow  = 7 * 24 * time.Hour
	orderWindow = 30 * 24 * time.Hour

	viewFetchLimit      = 20
	candidateMultiplier = 3
	defaultLimit        = 10
)

// InteractionSummary reports how many behavior signals fed a recommendation
// response, per source.
type InteractionSummary struct {
	Viewed   int `json:"viewed"`
	Wishlist int `json:"wishlist"`
	Cart     int `json:"cart"`
	Orders   int `json:"orders"`
}

type ScoredProduct struct {
	*types.Product
	RecommendationScore float64 `json:"recommendation_score,omitempty"`
}

type RecommendationResult struct {
	Products     []*ScoredProduct   `json:"products"`
	Total        int                `json:"total"`
	Fallback     bool               `json:"is_fallback"`
	Interactions InteractionSummary `json:"user_interactions"`
}

type RecommendationService interface {
	// GetRecommendations returns the top-limit scored products for the user,
	// or the popularity fallback list (Fallback=true) when the user has no
	// interaction signal at all.
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (*RecommendationResult, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	viewRepo     repos.ProductViewRepo
	wishlistRepo repos.WishlistRepo
	cartRepo     repos.CartRepo
	orderRepo    repos.OrderRepo
	popularCache redis.PopularityCache
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	productRepo repos.ProductRepo,
	viewRepo repos.ProductViewRepo,
	wishlistRepo repos.WishlistRepo,
	cartRepo repos.CartRepo,
	orderRepo repos.OrderRepo,
	popularCache redis.PopularityCache,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{
		db:           db,
		log:          serviceLog,
		productRepo:  productRepo,
		viewRepo:     viewRepo,
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		popularCache: popularCache,
	}
}

// behaviorSignals is the raw per-source output of the parallel fan-out, kept
// separate so the summary counts signals before dedup.
type behaviorSignals struct {
	viewedIDs   []uuid.UUID
	wishlistIDs []uuid.UUID
	cartIDs     []uuid.UUID
	orderIDs    []uuid.UUID
	excludedIDs []uuid.UUID
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (*RecommendationResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	signals, err := s.collectSignals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect behavior signals: %w", err)
	}

	summary := InteractionSummary{
		Viewed:   len(signals.viewedIDs),
		Wishlist: len(signals.wishlistIDs),
		Cart:     len(signals.cartIDs),
		Orders:   len(signals.orderIDs),
	}

	interacted := distinctIDs(signals.viewedIDs, signals.wishlistIDs, signals.cartIDs, signals.orderIDs)
	if len(interacted) == 0 {
		return s.popularFallback(ctx, limit, summary)
	}

	interactedProducts, err := s.productRepo.GetByIDs(ctx, nil, interacted)
	if err != nil {
		return nil, fmt.Errorf("failed to load interacted products: %w", err)
	}
	interest := newInterestProfile(interactedProducts)

	exclude := distinctIDs(signals.cartIDs, signals.orderIDs, signals.excludedIDs)
	candidates, err := s.productRepo.FindCandidates(ctx, nil, repos.CandidateQuery{
		CategoryIDs: interest.categoryIDList(),
		Tags:        interest.tagList(),
		ExcludeIDs:  exclude,
		Limit:       limit * candidateMultiplier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	now := time.Now().UTC()
	scored := make([]*ScoredProduct, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, &ScoredProduct{
			Product:             candidate,
			RecommendationScore: scoreCandidate(candidate, interest, now),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RecommendationScore > scored[j].RecommendationScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	s.log.Debug("Personalized recommendations computed",
		"user_id", userID.String(),
		"candidates", len(candidates),
		"returned", len(scored),
	)
	return &RecommendationResult{
		Products:     scored,
		Total:        len(scored),
		Fallback:     false,
		Interactions: summary,
	}, nil
}

// collectSignals issues the behavior-store reads concurrently; they have no
// ordering dependency on each other.
func (s *recommendationService) collectSignals(ctx context.Context, userID uuid.UUID) (*behaviorSignals, error) {
	now := time.Now().UTC()

	var (
		views           []*types.ProductView
		wishlistItems   []*types.WishlistItem
		cartItems       []*types.CartItem
		orderIDs        []uuid.UUID
		removedWishlist []*types.WishlistItem
		removedCart     []*types.CartItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		views, err = s.viewRepo.GetRecentByUser(gctx, nil, userID, now.Add(-viewWindow), viewFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		wishlistItems, err = s.wishlistRepo.GetByUserAndStatus(gctx, nil, userID, types.ItemStatusActive)
		return err
	})
	g.Go(func() error {
		var err error
		cartItems, err = s.cartRepo.GetByUserAndStatus(gctx, nil, userID, types.ItemStatusActive)
		return err
	})
	g.Go(func() error {
		var err error
		orderIDs, err = s.orderRepo.GetPurchasedProductIDs(gctx, nil, userID, now.Add(-orderWindow), types.PurchaseStatuses)
		return err
	})
	g.Go(func() error {
		var err error
		removedWishlist, err = s.wishlistRepo.GetByUserAndStatus(gctx, nil, userID, types.ItemStatusRemoved)
		return err
	})
	g.Go(func() error {
		var err error
		removedCart, err = s.cartRepo.GetByUserAndStatus(gctx, nil, userID, types.ItemStatusRemoved)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	signals := &behaviorSignals{}
	for _, v := range views {
		signals.viewedIDs = append(signals.viewedIDs, v.ProductID)
	}
	for _, item := range wishlistItems {
		signals.wishlistIDs = append(signals.wishlistIDs, item.ProductID)
	}
	for _, item := range cartItems {
		signals.cartIDs = append(signals.cartIDs, item.ProductID)
	}
	signals.orderIDs = orderIDs
	for _, item := range removedWishlist {
		signals.excludedIDs = append(signals.excludedIDs, item.ProductID)
	}
	for _, item := range removedCart {
		signals.excludedIDs = append(signals.excludedIDs, item.ProductID)
	}
	return signals, nil
}

func (s *recommendationService) popularFallback(ctx context.Context, limit int, summary InteractionSummary) (*RecommendationResult, error) {
	var products []*types.Product
	if s.popularCache != nil {
		if cached, ok := s.popularCache.GetPopular(ctx, limit); ok {
			products = cached
		}
	}
	if products == nil {
		var err error
		products, err = s.productRepo.FindPopular(ctx, nil, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load popular products: %w", err)
		}
		if s.popularCache != nil {
			s.popularCache.SetPopular(ctx, limit, products)
		}
	}

	out := make([]*ScoredProduct, 0, len(products))
	for _, p := range products {
		out = append(out, &ScoredProduct{Product: p})
	}
	return &RecommendationResult{
		Products:     out,
		Total:        len(out),
		Fallback:     true,
		Interactions: summary,
	}, nil
}

func distinctIDs(lists ...[]uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, list := range lists {
		for _, id := range list {
			if id == uuid.Nil {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
