package memory

import (
	"context"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

func (s *Store) PutLocation(l *domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	s.locations[l.ID] = &cp
}

func (s *Store) PutProfile(p *domain.BufferProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.ID] = &cp
}

func (s *Store) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.locations[locationID]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *Store) GetProfile(ctx context.Context, profileID string) (*domain.BufferProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}
