package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
)

func newBehaviorFixture(t *testing.T, products ...*types.Product) (BehaviorService, *fakeProductRepo, *fakeViewRepo, *fakeWishlistRepo, *fakeCartRepo) {
	t.Helper()
	productRepo := newFakeProductRepo(products...)
	viewRepo := &fakeViewRepo{}
	wishlistRepo := &fakeWishlistRepo{}
	cartRepo := &fakeCartRepo{}
	svc := NewBehaviorService(nil, testLogger(t), productRepo, viewRepo, wishlistRepo, cartRepo)
	return svc, productRepo, viewRepo, wishlistRepo, cartRepo
}

func TestTrackViewValidation(t *testing.T) {
	svc, _, _, _, _ := newBehaviorFixture(t)
	ctx := context.Background()

	if err := svc.TrackView(ctx, uuid.Nil, uuid.New(), ""); !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("nil user: expected ErrInvalidInput, got %v", err)
	}
	if err := svc.TrackView(ctx, uuid.New(), uuid.Nil, ""); !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("nil product: expected ErrInvalidInput, got %v", err)
	}
	if err := svc.TrackView(ctx, uuid.New(), uuid.New(), ""); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("unknown product: expected ErrNotFound, got %v", err)
	}
}

func TestTrackViewDedup(t *testing.T) {
	now := time.Now().UTC()
	product := tagged(uuid.New(), 4.0, 0, now)
	svc, _, viewRepo, _, _ := newBehaviorFixture(t, product)
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.TrackView(ctx, userID, product.ID, "sess"); err != nil {
		t.Fatalf("TrackView: %v", err)
	}
	if viewRepo.created != 1 {
		t.Fatalf("expected 1 created row, got %d", viewRepo.created)
	}

	// Same pair again inside the hour refreshes instead of inserting.
	if err := svc.TrackView(ctx, userID, product.ID, "sess"); err != nil {
		t.Fatalf("TrackView (repeat): %v", err)
	}
	if viewRepo.created != 1 || viewRepo.refreshed != 1 {
		t.Fatalf("expected refresh, got created=%d refreshed=%d", viewRepo.created, viewRepo.refreshed)
	}

	// A different user gets their own row.
	if err := svc.TrackView(ctx, uuid.New(), product.ID, "sess"); err != nil {
		t.Fatalf("TrackView (other user): %v", err)
	}
	if viewRepo.created != 2 {
		t.Fatalf("expected 2 created rows, got %d", viewRepo.created)
	}
}

func TestWishlistLifecycle(t *testing.T) {
	now := time.Now().UTC()
	product := tagged(uuid.New(), 4.0, 0, now)
	svc, _, _, wishlistRepo, _ := newBehaviorFixture(t, product)
	ctx := context.Background()
	userID := uuid.New()

	item, err := svc.AddToWishlist(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if item.Status != types.ItemStatusActive {
		t.Fatalf("expected active item, got %s", item.Status)
	}

	// Idempotent re-add.
	again, err := svc.AddToWishlist(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("AddToWishlist (repeat): %v", err)
	}
	if again.ID != item.ID || len(wishlistRepo.items) != 1 {
		t.Fatalf("repeat add must reuse the row: ids %v/%v rows=%d", item.ID, again.ID, len(wishlistRepo.items))
	}

	removed, err := svc.RemoveFromWishlist(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("RemoveFromWishlist: %v", err)
	}
	if removed.Status != types.ItemStatusRemoved || removed.RemovedAt == nil {
		t.Fatalf("expected soft-removed item, got %s %v", removed.Status, removed.RemovedAt)
	}

	active, err := svc.GetWishlist(ctx, userID)
	if err != nil {
		t.Fatalf("GetWishlist: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("removed items must not list as active, got %d", len(active))
	}

	// Re-add flips the same row back.
	revived, err := svc.AddToWishlist(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("AddToWishlist (revive): %v", err)
	}
	if revived.ID != item.ID || revived.Status != types.ItemStatusActive || revived.RemovedAt != nil {
		t.Fatalf("revive must reset the original row: %+v", revived)
	}

	if _, err := svc.RemoveFromWishlist(ctx, userID, uuid.New()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("removing unknown pair: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.AddToWishlist(ctx, userID, uuid.New()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("adding unknown product: expected ErrNotFound, got %v", err)
	}
}

func TestCartLifecycle(t *testing.T) {
	now := time.Now().UTC()
	product := tagged(uuid.New(), 4.0, 0, now)
	svc, _, _, _, cartRepo := newBehaviorFixture(t, product)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.AddToCart(ctx, userID, product.ID, 0); !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("quantity 0: expected ErrInvalidInput, got %v", err)
	}

	item, err := svc.AddToCart(ctx, userID, product.ID, 2)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected qty 2, got %d", item.Quantity)
	}

	// Last write wins on quantity.
	updated, err := svc.AddToCart(ctx, userID, product.ID, 7)
	if err != nil {
		t.Fatalf("AddToCart (update): %v", err)
	}
	if updated.ID != item.ID || updated.Quantity != 7 || len(cartRepo.items) != 1 {
		t.Fatalf("expected same row with qty 7, got qty=%d rows=%d", updated.Quantity, len(cartRepo.items))
	}

	removed, err := svc.RemoveFromCart(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if removed.Status != types.ItemStatusRemoved {
		t.Fatalf("expected removed, got %s", removed.Status)
	}

	cart, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("expected empty active cart, got %d", len(cart))
	}
}
