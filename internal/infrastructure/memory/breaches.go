package memory

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

func (s *Store) OpenBreaches(ctx context.Context, productID, locationID string) ([]*domain.BreachEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BreachEvent, 0)
	for _, e := range s.breaches {
		if e.ProductID == productID && e.LocationID == locationID && e.IsOpen() {
			cp := *e
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *Store) CreateBreachIfAbsent(ctx context.Context, event *domain.BreachEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.breaches {
		if e.ProductID == event.ProductID &&
			e.LocationID == event.LocationID &&
			e.BreachType == event.BreachType &&
			e.IsOpen() {
			return false, nil
		}
	}
	cp := *event
	s.breaches = append(s.breaches, &cp)
	return true, nil
}

func (s *Store) AcknowledgeBreach(ctx context.Context, breachID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.breaches {
		if e.ID == breachID {
			// повторное подтверждение не меняет исходную метку времени
			if !e.Acknowledged {
				e.Acknowledged = true
				e.AcknowledgedAt = &at
			}
			return nil
		}
	}
	return domain.ErrBreachNotFound
}

func (s *Store) ListOpenBreaches(ctx context.Context, scope domain.Scope) ([]*domain.BreachEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BreachEvent, 0)
	for _, e := range s.breaches {
		if e.IsOpen() && scope.Matches(e.ProductID, e.LocationID) {
			cp := *e
			result = append(result, &cp)
		}
	}
	return result, nil
}

// AllBreaches возвращает все события, включая подтвержденные.
func (s *Store) AllBreaches() []domain.BreachEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.BreachEvent, 0, len(s.breaches))
	for _, e := range s.breaches {
		result = append(result, *e)
	}
	return result
}
