package memory

import (
	"context"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

func (s *Store) HasDraft(ctx context.Context, productID, locationID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasDraftLocked(productID, locationID), nil
}

func (s *Store) CreateDraftIfAbsent(ctx context.Context, order *domain.ReplenishmentOrder) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasDraftLocked(order.ProductID, order.LocationID) {
		return false, nil
	}
	cp := *order
	s.replenishments = append(s.replenishments, &cp)
	return true, nil
}

func (s *Store) ListDrafts(ctx context.Context, scope domain.Scope) ([]*domain.ReplenishmentOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ReplenishmentOrder, 0)
	for _, o := range s.replenishments {
		if o.Status == domain.ReplenishmentDraft && scope.Matches(o.ProductID, o.LocationID) {
			cp := *o
			result = append(result, &cp)
		}
	}
	return result, nil
}

// SetReplenishmentStatus имитирует внешнее утверждение или отправку заказа.
func (s *Store) SetReplenishmentStatus(orderID string, status domain.ReplenishmentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.replenishments {
		if o.ID == orderID {
			o.Status = status
		}
	}
}

func (s *Store) hasDraftLocked(productID, locationID string) bool {
	for _, o := range s.replenishments {
		if o.ProductID == productID && o.LocationID == locationID && o.Status == domain.ReplenishmentDraft {
			return true
		}
	}
	return false
}
