package memory

import (
	"context"
	"sort"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveSalesOrder(ctx context.Context, order *domain.SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	s.salesOrders[order.ID] = &cp
	return nil
}

// SetSalesOrderStatus имитирует отгрузку или отмену заказа внешней системой.
func (s *Store) SetSalesOrderStatus(orderID string, status domain.SalesOrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.salesOrders[orderID]; ok {
		o.Status = status
	}
}

func (s *Store) LatestQualification(ctx context.Context, orderID string) (*domain.OrderQualification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.latestLocked(orderID)
	if !ok {
		return nil, domain.ErrQualificationNotFound
	}
	return &q, nil
}

func (s *Store) AppendQualification(ctx context.Context, q *domain.OrderQualification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.qualifications[q.OrderID] {
		if existing.Revision == q.Revision {
			return false, nil
		}
	}
	s.qualifications[q.OrderID] = append(s.qualifications[q.OrderID], *q)
	return true, nil
}

func (s *Store) ListPendingRequalification(ctx context.Context, scope domain.Scope) ([]*domain.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.SalesOrder, 0)
	for id, o := range s.salesOrders {
		if o.Status != domain.SalesOrderOpen || !scope.Matches(o.ProductID, o.LocationID) {
			continue
		}
		latest, ok := s.latestLocked(id)
		if !ok || latest.QualificationReason != domain.ReasonOutsideHorizon {
			continue
		}
		cp := *o
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) QualifiedDemand(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for id, o := range s.salesOrders {
		if o.ProductID != productID || o.LocationID != locationID || o.Status != domain.SalesOrderOpen {
			continue
		}
		if latest, ok := s.latestLocked(id); ok {
			total = total.Add(latest.QualifiedQty)
		}
	}
	return total, nil
}

func (s *Store) latestLocked(orderID string) (domain.OrderQualification, bool) {
	var latest domain.OrderQualification
	found := false
	for _, q := range s.qualifications[orderID] {
		if !found || q.Revision > latest.Revision {
			latest = q
			found = true
		}
	}
	return latest, found
}

// Qualifications возвращает все ревизии квалификации заказа.
func (s *Store) Qualifications(orderID string) []domain.OrderQualification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OrderQualification(nil), s.qualifications[orderID]...)
}
