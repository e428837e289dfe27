package memory

import (
	"context"
	"sort"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

// PutBuffer создает или заменяет буфер пары product-location.
func (s *Store) PutBuffer(b *domain.BufferState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.buffers[key(b.ProductID, b.LocationID)] = &cp
}

func (s *Store) ListBuffers(ctx context.Context, scope domain.Scope) ([]*domain.BufferState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BufferState, 0, len(s.buffers))
	for _, b := range s.buffers {
		if scope.Matches(b.ProductID, b.LocationID) {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return key(result[i].ProductID, result[i].LocationID) < key(result[j].ProductID, result[j].LocationID)
	})
	return result, nil
}

func (s *Store) GetBuffer(ctx context.Context, productID, locationID string) (*domain.BufferState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buffers[key(productID, locationID)]
	if !ok {
		return nil, domain.ErrBufferNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) ApplyRecalculation(ctx context.Context, b *domain.BufferState, record *domain.RecalculationHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(b.ProductID, b.LocationID)
	if _, ok := s.buffers[k]; !ok {
		return domain.ErrBufferNotFound
	}
	cp := *b
	s.buffers[k] = &cp
	s.history = append(s.history, *record)
	return nil
}

func (s *Store) ListHistory(ctx context.Context, productID, locationID string, limit int) ([]*domain.RecalculationHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RecalculationHistoryRecord, 0)
	for i := len(s.history) - 1; i >= 0; i-- {
		r := s.history[i]
		if r.ProductID != productID || r.LocationID != locationID {
			continue
		}
		result = append(result, &r)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
