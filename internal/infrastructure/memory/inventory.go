package memory

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) AddOnHand(snap domain.OnHandSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onHand = append(s.onHand, snap)
}

func (s *Store) AddSupply(order domain.OpenSupplyOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supply = append(s.supply, order)
}

func (s *Store) AddDemand(records ...domain.DemandRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demand = append(s.demand, records...)
}

func (s *Store) AddAdjustment(adj domain.PlannedAdjustment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments = append(s.adjustments, adj)
}

func (s *Store) LatestOnHand(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.OnHandSnapshot
	for i := range s.onHand {
		snap := &s.onHand[i]
		if snap.ProductID != productID || snap.LocationID != locationID {
			continue
		}
		if latest == nil || snap.CapturedAt.After(latest.CapturedAt) {
			latest = snap
		}
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return latest.Qty, nil
}

func (s *Store) OpenSupply(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, o := range s.supply {
		if o.ProductID == productID && o.LocationID == locationID && o.Status == domain.SupplyOpen {
			total = total.Add(o.OpenQty)
		}
	}
	return total, nil
}

func (s *Store) DemandHistory(ctx context.Context, productID, locationID string, from, to time.Time) ([]*domain.DemandRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.DemandRecord, 0)
	for i := range s.demand {
		r := s.demand[i]
		if r.ProductID != productID || r.LocationID != locationID {
			continue
		}
		if r.DemandDate.Before(from) || !r.DemandDate.Before(to) {
			continue
		}
		result = append(result, &r)
	}
	return result, nil
}

func (s *Store) ActiveAdjustments(ctx context.Context, productID, locationID string, at time.Time) ([]*domain.PlannedAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.PlannedAdjustment, 0)
	for i := range s.adjustments {
		a := s.adjustments[i]
		if a.ProductID == productID && a.LocationID == locationID && a.ActiveAt(at) {
			result = append(result, &a)
		}
	}
	return result, nil
}
