package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	types "github.com/pawmart/pawmart-backend/internal/domain"
)

// Scoring weights. The 40/30/20/10 split is part of the observable contract;
// do not retune without versioning the API.
const (
	categoryMatchPoints = 40.0
	tagOverlapPoints    = 30.0
	ratingWeight        = 2.0
	salesPointsDivisor  = 10.0
	salesPointsCap      = 10.0
	recencyBonusPoints  = 10.0
	recencyWindowDays   = 30.0
)

// interestProfile is the aggregated interest vocabulary derived from a
// user's interacted products.
type interestProfile struct {
	categoryIDs map[uuid.UUID]struct{}
	tags        map[string]struct{}
}

func newInterestProfile(products []*types.Product) interestProfile {
	profile := interestProfile{
		categoryIDs: make(map[uuid.UUID]struct{}),
		tags:        make(map[string]struct{}),
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if p.CategoryID != uuid.Nil {
			profile.categoryIDs[p.CategoryID] = struct{}{}
		}
		for _, tag := range p.TagNames() {
			profile.tags[tag] = struct{}{}
		}
	}
	return profile
}

func (p interestProfile) categoryIDList() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.categoryIDs))
	for id := range p.categoryIDs {
		out = append(out, id)
	}
	return out
}

func (p interestProfile) tagList() []string {
	out := make([]string, 0, len(p.tags))
	for tag := range p.tags {
		out = append(out, tag)
	}
	return out
}

// scoreCandidate computes the recommendation score for one candidate:
// category match (0 or 40), tag overlap (0-30, proportional to the user's
// tag vocabulary), popularity (2*rating + capped sales points) and a recency
// bonus (0-10, linear decay over 30 days). Pure: same inputs, same score.
func scoreCandidate(p *types.Product, interest interestProfile, now time.Time) float64 {
	score := 0.0

	if _, ok := interest.categoryIDs[p.CategoryID]; ok {
		score += categoryMatchPoints
	}

	if len(interest.tags) > 0 {
		matching := 0
		for _, tag := range p.TagNames() {
			if _, ok := interest.tags[tag]; ok {
				matching++
			}
		}
		score += float64(matching) / float64(len(interest.tags)) * tagOverlapPoints
	}

	score += ratingWeight*p.Rating + math.Min(float64(p.SalesCount)/salesPointsDivisor, salesPointsCap)

	ageDays := now.Sub(p.CreatedAt).Hours() / 24
	if ageDays >= 0 && ageDays < recencyWindowDays {
		score += recencyBonusPoints * (1 - ageDays/recencyWindowDays)
	}

	return score
}
