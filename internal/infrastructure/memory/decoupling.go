package memory

import (
	"context"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

func (s *Store) SaveRecommendation(ctx context.Context, rec *domain.DecouplingRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations = append(s.recommendations, *rec)
	return nil
}

func (s *Store) Recommendations(locationID string) []domain.DecouplingRecommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.DecouplingRecommendation, 0)
	for _, r := range s.recommendations {
		if r.LocationID == locationID {
			result = append(result, r)
		}
	}
	return result
}
