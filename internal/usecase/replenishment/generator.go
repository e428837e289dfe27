package replenishment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

// ============= ГЕНЕРАТОР ЗАКАЗОВ НА ПОПОЛНЕНИЕ =============

const referencePrefix = "RO-"

type Snapshotter interface {
	Snapshot(ctx context.Context, b *domain.BufferState) (domain.NetFlowSnapshot, error)
}

// Summary - итог прохода генератора. OrdersCreated считает только
// созданные заказы, не оцененные пары.
type Summary struct {
	OrdersCreated int                  `json:"orders_created"`
	Evaluated     int                  `json:"evaluated"`
	Covered       int                  `json:"covered"`
	AtTarget      int                  `json:"at_target"`
	Failures      []domain.ItemFailure `json:"failures,omitempty"`
}

type Generator struct {
	buffers   domain.BufferRepository
	snapshots Snapshotter
	breaches  domain.BreachRepository
	orders    domain.ReplenishmentRepository
	publisher domain.EventPublisher
	metrics   *metrics.EngineMetrics
	logger    *slog.Logger
	now       func() time.Time
	reference func() string
}

func NewGenerator(
	buffers domain.BufferRepository,
	snapshots Snapshotter,
	breaches domain.BreachRepository,
	orders domain.ReplenishmentRepository,
	publisher domain.EventPublisher,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) (*Generator, error) {
	idGenerator, err := nanoid.Standard(12)
	if err != nil {
		return nil, fmt.Errorf("failed to init reference generator: %w", err)
	}
	return &Generator{
		buffers:   buffers,
		snapshots: snapshots,
		breaches:  breaches,
		orders:    orders,
		publisher: publisher,
		metrics:   engineMetrics,
		logger:    logger,
		now:       time.Now,
		reference: func() string { return referencePrefix + idGenerator() },
	}, nil
}

func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate создает по одному DRAFT заказу для каждой пары в RED/YELLOW
// или с открытым нарушением HIGH/MEDIUM. Повторный запуск не создает
// дублей, пока DRAFT по паре существует.
func (g *Generator) Generate(ctx context.Context, scope domain.Scope) (*Summary, error) {
	start := time.Now()
	defer func() { g.metrics.ObserveRun(metrics.OpGenerateReplenishment, time.Since(start).Seconds()) }()

	buffers, err := g.buffers.ListBuffers(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list buffers: %w", err)
	}

	summary := &Summary{}
	for _, b := range buffers {
		summary.Evaluated++

		outcome, order, err := g.generateOne(ctx, b)
		if err != nil {
			g.logger.Error("Failed to generate replenishment",
				"product_id", b.ProductID,
				"location_id", b.LocationID,
				"error", err)
			g.metrics.RecordItemFailure(metrics.OpGenerateReplenishment)
			summary.Failures = append(summary.Failures, domain.ItemFailure{
				ProductID:  b.ProductID,
				LocationID: b.LocationID,
				Error:      err.Error(),
			})
			continue
		}

		switch outcome {
		case outcomeCreated:
			summary.OrdersCreated++
			g.metrics.RecordOrderCreated(order.LocationID, order.QtyRecommend)
			if g.publisher != nil {
				if err := g.publisher.PublishReplenishment(ctx, order); err != nil {
					g.logger.Warn("Failed to publish replenishment order", "order_id", order.ID, "error", err)
				}
			}
		case outcomeCovered:
			summary.Covered++
		case outcomeAtTarget:
			summary.AtTarget++
		}
	}

	g.logger.Info("Replenishment run finished",
		"evaluated", summary.Evaluated,
		"created", summary.OrdersCreated,
		"covered", summary.Covered,
		"failed", len(summary.Failures))
	return summary, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeAtTarget
	outcomeCovered
	outcomeCreated
)

func (g *Generator) generateOne(ctx context.Context, b *domain.BufferState) (outcome, *domain.ReplenishmentOrder, error) {
	if b.Zones.IsEmpty() {
		return outcomeSkipped, nil, nil
	}

	snap, err := g.snapshots.Snapshot(ctx, b)
	if err != nil {
		return outcomeSkipped, nil, err
	}

	open, err := g.breaches.OpenBreaches(ctx, b.ProductID, b.LocationID)
	if err != nil {
		return outcomeSkipped, nil, fmt.Errorf("open breaches: %w", err)
	}
	trigger := demandingBreach(open)

	if !snap.NeedsReplenishment() && trigger == nil {
		return outcomeSkipped, nil, nil
	}

	gap := decimal.NewFromInt(b.TOG()).Sub(snap.NFP)
	if !gap.IsPositive() {
		return outcomeAtTarget, nil, nil
	}

	covered, err := g.orders.HasDraft(ctx, b.ProductID, b.LocationID)
	if err != nil {
		return outcomeSkipped, nil, fmt.Errorf("draft lookup: %w", err)
	}
	if covered {
		return outcomeCovered, nil, nil
	}

	now := g.now()
	order := &domain.ReplenishmentOrder{
		ID:            uuid.New().String(),
		Reference:     g.reference(),
		ProductID:     b.ProductID,
		LocationID:    b.LocationID,
		QtyRecommend:  RecommendQty(gap, b.RoundingMultiple, b.MOQ),
		NetFlow:       snap.NFP,
		TopOfGreen:    b.TOG(),
		TargetDueDate: domain.TruncateDay(now).AddDate(0, 0, b.DecoupledLeadTimeDays),
		Status:        domain.ReplenishmentDraft,
		ProposalTS:    now,
	}
	if trigger != nil {
		order.BreachID = &trigger.ID
	}

	created, err := g.orders.CreateDraftIfAbsent(ctx, order)
	if err != nil {
		return outcomeSkipped, nil, fmt.Errorf("failed to save draft: %w", err)
	}
	if !created {
		// параллельный запуск успел создать DRAFT
		return outcomeCovered, nil, nil
	}
	return outcomeCreated, order, nil
}

// RecommendQty округляет разрыв вверх до кратности и поднимает до MOQ.
// Некратность <= 0 трактуется как 1.
func RecommendQty(gap decimal.Decimal, roundingMultiple, moq int64) int64 {
	qty := gap.Ceil().IntPart()
	if qty <= 0 {
		return 0
	}
	if roundingMultiple > 1 {
		packs := (qty + roundingMultiple - 1) / roundingMultiple
		qty = packs * roundingMultiple
	}
	if qty < moq {
		qty = moq
	}
	return qty
}

// demandingBreach выбирает самое серьезное открытое нарушение HIGH/MEDIUM.
func demandingBreach(open []*domain.BreachEvent) *domain.BreachEvent {
	var picked *domain.BreachEvent
	for _, e := range open {
		if !e.Demands() {
			continue
		}
		if picked == nil || (e.Severity == domain.SeverityHigh && picked.Severity != domain.SeverityHigh) {
			picked = e
		}
	}
	return picked
}
