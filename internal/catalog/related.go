package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/sivahkrishna/indian-movie-recommender/internal/metrics"
	"github.com/sivahkrishna/indian-movie-recommender/internal/recommender"
)

// Service combines the store with the recommender for "related movies".
type Service struct {
	store *Store
	rec   *recommender.Recommender
}

// NewService creates a Service. A nil recommender uses the defaults.
func NewService(store *Store, rec *recommender.Recommender) *Service {
	if rec == nil {
		rec = recommender.New(recommender.DefaultOptions())
	}
	return &Service{store: store, rec: rec}
}

// Store returns the underlying movie store.
func (s *Service) Store() *Store { return s.store }

// RelatedIDs ranks the whole catalog against movieID and returns the scored
// IDs. watched may be nil.
func (s *Service) RelatedIDs(ctx context.Context, movieID int64, watched map[int64]struct{}) ([]recommender.Scored, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}

	start := time.Now()
	scored := s.rec.Scores(movieID, Items(all), watched)
	metrics.ObserveRecommendation(len(all), len(scored), time.Since(start))
	return scored, nil
}

// Related returns up to five movies similar to movieID, best first. An
// unknown movie or a catalog of one yields an empty slice, not an error.
func (s *Service) Related(ctx context.Context, movieID int64, watched map[int64]struct{}) ([]Movie, error) {
	scored, err := s.RelatedIDs(ctx, movieID, watched)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(scored))
	for i, sc := range scored {
		ids[i] = sc.ID
	}
	return s.store.GetByIDs(ctx, ids)
}
