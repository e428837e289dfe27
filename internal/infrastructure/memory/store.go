// Package memory хранит все таблицы движка в памяти процесса.
// Используется для локального запуска (storage.driver=memory) и в тестах.
package memory

import (
	"sync"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

func key(productID, locationID string) string {
	return productID + "|" + locationID
}

// Store реализует все репозитории движка поверх map под одним мьютексом.
type Store struct {
	mu sync.RWMutex

	buffers   map[string]*domain.BufferState
	history   []domain.RecalculationHistoryRecord
	locations map[string]*domain.Location
	profiles  map[string]*domain.BufferProfile

	onHand      []domain.OnHandSnapshot
	supply      []domain.OpenSupplyOrder
	demand      []domain.DemandRecord
	adjustments []domain.PlannedAdjustment

	salesOrders    map[string]*domain.SalesOrder
	qualifications map[string][]domain.OrderQualification

	breaches        []*domain.BreachEvent
	replenishments  []*domain.ReplenishmentOrder
	recommendations []domain.DecouplingRecommendation
}

func NewStore() *Store {
	return &Store{
		buffers:        make(map[string]*domain.BufferState),
		locations:      make(map[string]*domain.Location),
		profiles:       make(map[string]*domain.BufferProfile),
		salesOrders:    make(map[string]*domain.SalesOrder),
		qualifications: make(map[string][]domain.OrderQualification),
	}
}

// Verify interface compliance
var (
	_ domain.BufferRepository        = (*Store)(nil)
	_ domain.InventoryRepository     = (*Store)(nil)
	_ domain.MasterDataRepository    = (*Store)(nil)
	_ domain.OrderRepository         = (*Store)(nil)
	_ domain.BreachRepository        = (*Store)(nil)
	_ domain.ReplenishmentRepository = (*Store)(nil)
	_ domain.DecouplingRepository    = (*Store)(nil)
)
