package recalculation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/buffer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============= АДАПТИВНЫЙ ПЕРЕСЧЕТ БУФЕРОВ =============

const aduPrecision = 4

var one = decimal.NewFromInt(1)

// Result - записи истории успешно пересчитанных буферов.
// Пары с ошибкой в Records не попадают.
type Result struct {
	Evaluated int                                  `json:"evaluated"`
	Records   []*domain.RecalculationHistoryRecord `json:"records"`
	Failures  []domain.ItemFailure                 `json:"failures,omitempty"`
}

type Engine struct {
	buffers    domain.BufferRepository
	inventory  domain.InventoryRepository
	master     domain.MasterDataRepository
	policy     buffer.Policy
	windowDays int
	publisher  domain.EventPublisher
	metrics    *metrics.EngineMetrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewEngine(
	buffers domain.BufferRepository,
	inventory domain.InventoryRepository,
	master domain.MasterDataRepository,
	policy buffer.Policy,
	windowDays int,
	publisher domain.EventPublisher,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) *Engine {
	if windowDays <= 0 {
		windowDays = 90
	}
	return &Engine{
		buffers:    buffers,
		inventory:  inventory,
		master:     master,
		policy:     policy,
		windowDays: windowDays,
		publisher:  publisher,
		metrics:    engineMetrics,
		logger:     logger,
		now:        time.Now,
	}
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Recalculate обновляет ADU, коэффициенты и зоны каждого буфера в scope
// и добавляет по одной записи истории на пару.
func (e *Engine) Recalculate(ctx context.Context, scope domain.Scope, triggeredBy domain.TriggeredBy) (*Result, error) {
	if !triggeredBy.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTrigger, triggeredBy)
	}

	start := time.Now()
	defer func() { e.metrics.ObserveRun(metrics.OpRecalculate, time.Since(start).Seconds()) }()

	buffers, err := e.buffers.ListBuffers(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list buffers: %w", err)
	}

	result := &Result{Records: make([]*domain.RecalculationHistoryRecord, 0, len(buffers))}
	for _, b := range buffers {
		result.Evaluated++

		record, err := e.recalculateOne(ctx, b, triggeredBy)
		if err != nil {
			e.logger.Error("Failed to recalculate buffer",
				"product_id", b.ProductID,
				"location_id", b.LocationID,
				"triggered_by", triggeredBy,
				"error", err)
			e.metrics.RecordRecalculation(string(triggeredBy), "failed")
			e.metrics.RecordItemFailure(metrics.OpRecalculate)
			result.Failures = append(result.Failures, domain.ItemFailure{
				ProductID:  b.ProductID,
				LocationID: b.LocationID,
				Error:      err.Error(),
			})
			continue
		}

		result.Records = append(result.Records, record)
		e.metrics.RecordRecalculation(string(triggeredBy), "ok")

		if e.publisher != nil {
			if err := e.publisher.PublishRecalculation(ctx, record); err != nil {
				e.logger.Warn("Failed to publish recalculation", "record_id", record.ID, "error", err)
			}
		}
	}

	e.logger.Info("Recalculation finished",
		"triggered_by", triggeredBy,
		"evaluated", result.Evaluated,
		"recalculated", len(result.Records),
		"failed", len(result.Failures))
	return result, nil
}

// factors - произведения активных корректировок по типам.
type factors struct {
	daf   decimal.Decimal
	ltaf  decimal.Decimal
	trend decimal.Decimal
}

func (f factors) applied() bool {
	return !f.daf.Equal(one) || !f.ltaf.Equal(one) || !f.trend.Equal(one)
}

func (e *Engine) recalculateOne(ctx context.Context, b *domain.BufferState, triggeredBy domain.TriggeredBy) (*domain.RecalculationHistoryRecord, error) {
	now := e.now()

	baseADU, hasHistory, err := e.trailingADU(ctx, b, now)
	if err != nil {
		return nil, err
	}

	adjustments, err := e.inventory.ActiveAdjustments(ctx, b.ProductID, b.LocationID, now)
	if err != nil {
		return nil, fmt.Errorf("adjustments: %w", err)
	}
	f := combine(adjustments)

	variability := b.VariabilityFactor
	if b.ProfileID != nil {
		profile, err := e.master.GetProfile(ctx, *b.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", *b.ProfileID, err)
		}
		variability = profile.VariabilityFactor
	}

	var reasons []string
	newADU := b.ADU
	if hasHistory {
		newADU = baseADU.Mul(f.trend).Round(aduPrecision)
	} else {
		// без истории ADU не меняется, тренд не накапливается
		reasons = append(reasons, domain.ChangeNoDemandHistory)
	}
	if !newADU.Equal(b.ADU) {
		reasons = append(reasons, domain.ChangeADUChanged)
	}
	if f.applied() {
		reasons = append(reasons, domain.ChangeAdjustmentApplied)
	}

	newZones := e.policy.ComputeZones(newADU, b.DecoupledLeadTimeDays, variability, f.daf, f.ltaf)
	if newZones != b.Zones {
		reasons = append(reasons, domain.ChangeZonesResized)
	}
	if len(reasons) == 0 {
		reasons = append(reasons, domain.ChangeNoChange)
	}

	record := &domain.RecalculationHistoryRecord{
		ID:           uuid.New().String(),
		BufferID:     b.ID,
		ProductID:    b.ProductID,
		LocationID:   b.LocationID,
		OldADU:       b.ADU,
		NewADU:       newADU,
		OldZones:     b.Zones,
		NewZones:     newZones,
		DAFApplied:   f.daf,
		LTAFApplied:  f.ltaf,
		TrendFactor:  f.trend,
		ChangeReason: strings.Join(reasons, ","),
		TriggeredBy:  triggeredBy,
		RecalcTS:     now,
	}

	updated := *b
	updated.ADU = newADU
	updated.VariabilityFactor = variability
	updated.Zones = newZones
	updated.DAF = f.daf
	updated.LTAF = f.ltaf
	updated.LastRecalculatedAt = &now
	updated.UpdatedAt = now

	if err := e.buffers.ApplyRecalculation(ctx, &updated, record); err != nil {
		return nil, fmt.Errorf("failed to persist recalculation: %w", err)
	}
	return record, nil
}

// trailingADU - среднее потребление за windowDays полных дней до сегодняшнего.
func (e *Engine) trailingADU(ctx context.Context, b *domain.BufferState, now time.Time) (decimal.Decimal, bool, error) {
	to := domain.TruncateDay(now)
	from := to.AddDate(0, 0, -e.windowDays)

	records, err := e.inventory.DemandHistory(ctx, b.ProductID, b.LocationID, from, to)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("demand history: %w", err)
	}
	if len(records) == 0 {
		return decimal.Zero, false, nil
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Qty)
	}
	return total.Div(decimal.NewFromInt(int64(e.windowDays))), true, nil
}

func combine(adjustments []*domain.PlannedAdjustment) factors {
	f := factors{daf: one, ltaf: one, trend: one}
	for _, a := range adjustments {
		if !a.Factor.IsPositive() {
			continue
		}
		switch a.Type {
		case domain.AdjustmentDemand:
			f.daf = f.daf.Mul(a.Factor)
		case domain.AdjustmentLeadTime:
			f.ltaf = f.ltaf.Mul(a.Factor)
		case domain.AdjustmentTrend:
			f.trend = f.trend.Mul(a.Factor)
		}
	}
	return f
}
