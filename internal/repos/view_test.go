package repos

import (
	"context"
	"testing"
	"time"

	"github.com/pawmart/pawmart-backend/internal/repos/testutil"
)

func TestProductViewRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProductViewRepo(db, testutil.Logger(t))

	now := time.Now().UTC().Truncate(time.Microsecond)
	dedupWindow := time.Hour
	user := testutil.SeedUser(t, ctx, tx, "views@test.local")
	category := testutil.SeedCategory(t, ctx, tx, "aquarium")
	product := testutil.SeedProduct(t, ctx, tx, category.ID, "filter")

	created, err := repo.RefreshOrCreate(ctx, tx, user.ID, product.ID, "sess-1", now.Add(-dedupWindow), now)
	if err != nil {
		t.Fatalf("RefreshOrCreate: %v", err)
	}
	if !created {
		t.Fatalf("RefreshOrCreate: expected a new row")
	}

	// A second view inside the window refreshes in place.
	later := now.Add(10 * time.Minute)
	created, err = repo.RefreshOrCreate(ctx, tx, user.ID, product.ID, "sess-1", later.Add(-dedupWindow), later)
	if err != nil {
		t.Fatalf("RefreshOrCreate (dedup): %v", err)
	}
	if created {
		t.Fatalf("RefreshOrCreate (dedup): expected refresh, got new row")
	}
	views, err := repo.GetRecentByUser(ctx, tx, user.ID, now.Add(-time.Minute), 0)
	if err != nil {
		t.Fatalf("GetRecentByUser: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("GetRecentByUser: expected 1 row after dedup, got %d", len(views))
	}
	if !views[0].ViewedAt.Equal(later) {
		t.Fatalf("GetRecentByUser: expected viewed_at %v, got %v", later, views[0].ViewedAt)
	}

	// Outside the window a fresh row is inserted.
	muchLater := now.Add(2 * time.Hour)
	created, err = repo.RefreshOrCreate(ctx, tx, user.ID, product.ID, "sess-2", muchLater.Add(-dedupWindow), muchLater)
	if err != nil {
		t.Fatalf("RefreshOrCreate (expired): %v", err)
	}
	if !created {
		t.Fatalf("RefreshOrCreate (expired): expected a new row")
	}
	views, err = repo.GetRecentByUser(ctx, tx, user.ID, now.Add(-time.Minute), 0)
	if err != nil {
		t.Fatalf("GetRecentByUser: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("GetRecentByUser: expected 2 rows, got %d", len(views))
	}
	// Newest first.
	if !views[0].ViewedAt.Equal(muchLater) {
		t.Fatalf("GetRecentByUser: expected newest first, got %v", views[0].ViewedAt)
	}

	// The since bound trims stale views; limit caps the result.
	views, err = repo.GetRecentByUser(ctx, tx, user.ID, muchLater.Add(-time.Minute), 0)
	if err != nil {
		t.Fatalf("GetRecentByUser (since): %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("GetRecentByUser (since): expected 1 row, got %d", len(views))
	}
	views, err = repo.GetRecentByUser(ctx, tx, user.ID, now.Add(-time.Minute), 1)
	if err != nil {
		t.Fatalf("GetRecentByUser (limit): %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("GetRecentByUser (limit): expected 1 row, got %d", len(views))
	}
}
