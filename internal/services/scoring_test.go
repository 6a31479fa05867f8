package services

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/pawmart/pawmart-backend/internal/domain"
)

func tagged(categoryID uuid.UUID, rating float64, sales int, createdAt time.Time, tags ...string) *types.Product {
	p := &types.Product{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Rating:     rating,
		SalesCount: sales,
		CreatedAt:  createdAt,
	}
	for _, tag := range tags {
		p.Tags = append(p.Tags, types.ProductTag{ProductID: p.ID, Tag: tag})
	}
	return p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreCandidateComponents(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	dogFood := uuid.New()
	toys := uuid.New()
	old := now.Add(-365 * 24 * time.Hour)

	interest := newInterestProfile([]*types.Product{
		tagged(dogFood, 0, 0, old, "grain-free", "puppy"),
	})

	// Category match alone: 40 points.
	if got := scoreCandidate(tagged(dogFood, 0, 0, old), interest, now); !almostEqual(got, 40) {
		t.Fatalf("category match: expected 40, got %v", got)
	}

	// Full tag overlap: 30 points; half overlap: 15.
	if got := scoreCandidate(tagged(toys, 0, 0, old, "grain-free", "puppy"), interest, now); !almostEqual(got, 30) {
		t.Fatalf("full tag overlap: expected 30, got %v", got)
	}
	if got := scoreCandidate(tagged(toys, 0, 0, old, "grain-free"), interest, now); !almostEqual(got, 15) {
		t.Fatalf("half tag overlap: expected 15, got %v", got)
	}

	// Tags outside the user's vocabulary contribute nothing.
	if got := scoreCandidate(tagged(toys, 0, 0, old, "senior"), interest, now); !almostEqual(got, 0) {
		t.Fatalf("no overlap: expected 0, got %v", got)
	}

	// Popularity: 2*rating plus sales/10 capped at 10.
	if got := scoreCandidate(tagged(toys, 4.5, 50, old), interest, now); !almostEqual(got, 2*4.5+5) {
		t.Fatalf("popularity: expected 14, got %v", got)
	}
	if got := scoreCandidate(tagged(toys, 0, 1000, old), interest, now); !almostEqual(got, 10) {
		t.Fatalf("sales cap: expected 10, got %v", got)
	}

	// Recency: full bonus at age 0, decays linearly, gone at 30 days.
	if got := scoreCandidate(tagged(toys, 0, 0, now), interest, now); !almostEqual(got, 10) {
		t.Fatalf("recency at age 0: expected 10, got %v", got)
	}
	fifteenDays := now.Add(-15 * 24 * time.Hour)
	if got := scoreCandidate(tagged(toys, 0, 0, fifteenDays), interest, now); !almostEqual(got, 5) {
		t.Fatalf("recency at 15 days: expected 5, got %v", got)
	}
	thirtyDays := now.Add(-30 * 24 * time.Hour)
	if got := scoreCandidate(tagged(toys, 0, 0, thirtyDays), interest, now); !almostEqual(got, 0) {
		t.Fatalf("recency at 30 days: expected 0, got %v", got)
	}
}

func TestScoreCandidateCombined(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	dogFood := uuid.New()
	old := now.Add(-365 * 24 * time.Hour)

	interest := newInterestProfile([]*types.Product{
		tagged(dogFood, 0, 0, old, "grain-free", "puppy"),
	})

	// Same category, 1 of 2 tags, rating 4.0, 80 sales, brand new:
	// 40 + 15 + (8 + 8) + 10 = 81.
	candidate := tagged(dogFood, 4.0, 80, now, "grain-free", "senior")
	if got := scoreCandidate(candidate, interest, now); !almostEqual(got, 81) {
		t.Fatalf("combined: expected 81, got %v", got)
	}

	// Determinism: identical inputs, identical outputs.
	for i := 0; i < 5; i++ {
		if got := scoreCandidate(candidate, interest, now); !almostEqual(got, 81) {
			t.Fatalf("determinism: run %d gave %v", i, got)
		}
	}
}

func TestInterestProfileAggregation(t *testing.T) {
	now := time.Now().UTC()
	catA := uuid.New()
	catB := uuid.New()

	profile := newInterestProfile([]*types.Product{
		tagged(catA, 0, 0, now, "grain-free"),
		tagged(catA, 0, 0, now, "grain-free", "puppy"),
		tagged(catB, 0, 0, now),
		nil,
	})

	if len(profile.categoryIDList()) != 2 {
		t.Fatalf("expected 2 distinct categories, got %d", len(profile.categoryIDList()))
	}
	if len(profile.tagList()) != 2 {
		t.Fatalf("expected 2 distinct tags, got %d", len(profile.tagList()))
	}
}
