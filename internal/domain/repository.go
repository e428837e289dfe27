package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BufferRepository interface {
	ListBuffers(ctx context.Context, scope Scope) ([]*BufferState, error)
	GetBuffer(ctx context.Context, productID, locationID string) (*BufferState, error)
	// ApplyRecalculation атомарно сохраняет новый буфер и добавляет запись истории.
	ApplyRecalculation(ctx context.Context, buffer *BufferState, record *RecalculationHistoryRecord) error
	ListHistory(ctx context.Context, productID, locationID string, limit int) ([]*RecalculationHistoryRecord, error)
}

type InventoryRepository interface {
	LatestOnHand(ctx context.Context, productID, locationID string) (decimal.Decimal, error)
	OpenSupply(ctx context.Context, productID, locationID string) (decimal.Decimal, error)
	DemandHistory(ctx context.Context, productID, locationID string, from, to time.Time) ([]*DemandRecord, error)
	ActiveAdjustments(ctx context.Context, productID, locationID string, at time.Time) ([]*PlannedAdjustment, error)
}

type MasterDataRepository interface {
	GetLocation(ctx context.Context, locationID string) (*Location, error)
	GetProfile(ctx context.Context, profileID string) (*BufferProfile, error)
}

type OrderRepository interface {
	SaveSalesOrder(ctx context.Context, order *SalesOrder) error
	LatestQualification(ctx context.Context, orderID string) (*OrderQualification, error)
	// AppendQualification возвращает false, если ревизия уже записана.
	AppendQualification(ctx context.Context, q *OrderQualification) (bool, error)
	ListPendingRequalification(ctx context.Context, scope Scope) ([]*SalesOrder, error)
	QualifiedDemand(ctx context.Context, productID, locationID string) (decimal.Decimal, error)
}

type BreachRepository interface {
	OpenBreaches(ctx context.Context, productID, locationID string) ([]*BreachEvent, error)
	// CreateBreachIfAbsent не создает событие, если открытое событие того же типа уже есть.
	CreateBreachIfAbsent(ctx context.Context, event *BreachEvent) (bool, error)
	AcknowledgeBreach(ctx context.Context, breachID string, at time.Time) error
	ListOpenBreaches(ctx context.Context, scope Scope) ([]*BreachEvent, error)
}

type ReplenishmentRepository interface {
	HasDraft(ctx context.Context, productID, locationID string) (bool, error)
	// CreateDraftIfAbsent не создает заказ, если DRAFT по паре уже существует.
	CreateDraftIfAbsent(ctx context.Context, order *ReplenishmentOrder) (bool, error)
	ListDrafts(ctx context.Context, scope Scope) ([]*ReplenishmentOrder, error)
}

type DecouplingRepository interface {
	SaveRecommendation(ctx context.Context, rec *DecouplingRecommendation) error
}
