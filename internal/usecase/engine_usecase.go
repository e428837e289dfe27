package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	bufferdto "github.com/LavaJover/shvark-buffer-service/internal/usecase/dto/buffer"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/breach"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/decoupling"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/netflow"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/qualifier"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/recalculation"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/replenishment"
)

const defaultHistoryLimit = 50

type EngineUsecase interface {
	DetectBreaches(ctx context.Context, scope domain.Scope) (*breach.Summary, error)
	GenerateReplenishment(ctx context.Context, scope domain.Scope) (*replenishment.Summary, error)
	RecalculateBuffers(ctx context.Context, scope domain.Scope, triggeredBy domain.TriggeredBy) (*recalculation.Result, error)
	ScoreDecouplingPoint(ctx context.Context, input *bufferdto.ScoreDecouplingInput) (*domain.DecouplingRecommendation, error)

	QualifyOrder(ctx context.Context, order *domain.SalesOrder) (*domain.OrderQualification, bool, error)
	RequalifyOrders(ctx context.Context, scope domain.Scope) (*qualifier.RequalifySummary, error)
	AcknowledgeBreach(ctx context.Context, breachID string) error
	RunPlanningCycle(ctx context.Context, scope domain.Scope) (*bufferdto.CycleOutput, error)

	GetBufferStatus(ctx context.Context, productID, locationID string) (*bufferdto.BufferStatusOutput, error)
	ListOpenBreaches(ctx context.Context, scope domain.Scope) ([]*domain.BreachEvent, error)
	ListDraftOrders(ctx context.Context, scope domain.Scope) ([]*domain.ReplenishmentOrder, error)
	ListHistory(ctx context.Context, productID, locationID string, limit int) ([]*domain.RecalculationHistoryRecord, error)
}

type DefaultEngineUsecase struct {
	buffers       domain.BufferRepository
	breaches      domain.BreachRepository
	drafts        domain.ReplenishmentRepository
	reader        *netflow.Reader
	detector      *breach.Detector
	generator     *replenishment.Generator
	recalculation *recalculation.Engine
	scorer        *decoupling.Scorer
	qualifier     *qualifier.Service
	logger        *slog.Logger
	now           func() time.Time
}

type EngineDeps struct {
	Buffers       domain.BufferRepository
	Breaches      domain.BreachRepository
	Drafts        domain.ReplenishmentRepository
	Reader        *netflow.Reader
	Detector      *breach.Detector
	Generator     *replenishment.Generator
	Recalculation *recalculation.Engine
	Scorer        *decoupling.Scorer
	Qualifier     *qualifier.Service
	Logger        *slog.Logger
}

func NewDefaultEngineUsecase(deps EngineDeps) *DefaultEngineUsecase {
	return &DefaultEngineUsecase{
		buffers:       deps.Buffers,
		breaches:      deps.Breaches,
		drafts:        deps.Drafts,
		reader:        deps.Reader,
		detector:      deps.Detector,
		generator:     deps.Generator,
		recalculation: deps.Recalculation,
		scorer:        deps.Scorer,
		qualifier:     deps.Qualifier,
		logger:        deps.Logger,
		now:           time.Now,
	}
}

func (uc *DefaultEngineUsecase) DetectBreaches(ctx context.Context, scope domain.Scope) (*breach.Summary, error) {
	return uc.detector.DetectBreaches(ctx, scope)
}

func (uc *DefaultEngineUsecase) GenerateReplenishment(ctx context.Context, scope domain.Scope) (*replenishment.Summary, error) {
	return uc.generator.Generate(ctx, scope)
}

func (uc *DefaultEngineUsecase) RecalculateBuffers(ctx context.Context, scope domain.Scope, triggeredBy domain.TriggeredBy) (*recalculation.Result, error) {
	return uc.recalculation.Recalculate(ctx, scope, triggeredBy)
}

func (uc *DefaultEngineUsecase) ScoreDecouplingPoint(ctx context.Context, input *bufferdto.ScoreDecouplingInput) (*domain.DecouplingRecommendation, error) {
	if input.LocationID == "" {
		return nil, fmt.Errorf("%w: location_id is required", domain.ErrInvalidScope)
	}
	return uc.scorer.ScoreLocation(ctx, input.LocationID, input.Factors)
}

func (uc *DefaultEngineUsecase) QualifyOrder(ctx context.Context, order *domain.SalesOrder) (*domain.OrderQualification, bool, error) {
	return uc.qualifier.QualifyBooking(ctx, order)
}

func (uc *DefaultEngineUsecase) RequalifyOrders(ctx context.Context, scope domain.Scope) (*qualifier.RequalifySummary, error) {
	return uc.qualifier.Requalify(ctx, scope)
}

func (uc *DefaultEngineUsecase) AcknowledgeBreach(ctx context.Context, breachID string) error {
	return uc.breaches.AcknowledgeBreach(ctx, breachID, uc.now())
}

// RunPlanningCycle последовательно выполняет переквалификацию, пересчет
// (BATCH_AUTO), поиск нарушений и генерацию заказов. Шаг, который не смог
// стартовать, прерывает цикл.
func (uc *DefaultEngineUsecase) RunPlanningCycle(ctx context.Context, scope domain.Scope) (*bufferdto.CycleOutput, error) {
	out := &bufferdto.CycleOutput{}

	requalified, err := uc.qualifier.Requalify(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("requalify: %w", err)
	}
	out.Requalified = requalified.Requalified

	recalculated, err := uc.recalculation.Recalculate(ctx, scope, domain.TriggerBatchAuto)
	if err != nil {
		return nil, fmt.Errorf("recalculate: %w", err)
	}
	out.Recalculated = len(recalculated.Records)
	out.FailedRecalcItems = len(recalculated.Failures)

	detected, err := uc.detector.DetectBreaches(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("detect breaches: %w", err)
	}
	out.BreachesDetected = detected.BreachesDetected
	out.FailedBreachItems = len(detected.Failures)

	generated, err := uc.generator.Generate(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("generate replenishment: %w", err)
	}
	out.OrdersCreated = generated.OrdersCreated
	out.FailedReplenishing = len(generated.Failures)

	uc.logger.Info("Planning cycle finished",
		"requalified", out.Requalified,
		"recalculated", out.Recalculated,
		"breaches", out.BreachesDetected,
		"orders", out.OrdersCreated)
	return out, nil
}

func (uc *DefaultEngineUsecase) GetBufferStatus(ctx context.Context, productID, locationID string) (*bufferdto.BufferStatusOutput, error) {
	b, err := uc.buffers.GetBuffer(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	snap, err := uc.reader.Snapshot(ctx, b)
	if err != nil {
		return nil, err
	}
	return &bufferdto.BufferStatusOutput{
		ProductID:             b.ProductID,
		LocationID:            b.LocationID,
		ADU:                   b.ADU,
		DecoupledLeadTimeDays: b.DecoupledLeadTimeDays,
		Zones:                 b.Zones,
		TOR:                   b.TOR(),
		TOY:                   b.TOY(),
		TOG:                   b.TOG(),
		NetFlow:               snap,
		LastRecalculatedAt:    b.LastRecalculatedAt,
	}, nil
}

func (uc *DefaultEngineUsecase) ListOpenBreaches(ctx context.Context, scope domain.Scope) ([]*domain.BreachEvent, error) {
	return uc.breaches.ListOpenBreaches(ctx, scope)
}

func (uc *DefaultEngineUsecase) ListDraftOrders(ctx context.Context, scope domain.Scope) ([]*domain.ReplenishmentOrder, error) {
	return uc.drafts.ListDrafts(ctx, scope)
}

func (uc *DefaultEngineUsecase) ListHistory(ctx context.Context, productID, locationID string, limit int) ([]*domain.RecalculationHistoryRecord, error) {
	if productID == "" || locationID == "" {
		return nil, fmt.Errorf("%w: product_id and location_id are required", domain.ErrInvalidScope)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return uc.buffers.ListHistory(ctx, productID, locationID, limit)
}
