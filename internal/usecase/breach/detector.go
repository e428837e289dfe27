package breach

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

// ============= ДЕТЕКТОР НАРУШЕНИЙ БУФЕРА =============

// Snapshotter возвращает текущий NetFlowSnapshot буфера.
type Snapshotter interface {
	Snapshot(ctx context.Context, b *domain.BufferState) (domain.NetFlowSnapshot, error)
}

// Summary - итог одного прохода детектора.
type Summary struct {
	BreachesDetected int                  `json:"breaches_detected"`
	CriticalCount    int                  `json:"critical_count"`
	HighCount        int                  `json:"high_count"`
	LowCount         int                  `json:"low_count"`
	Evaluated        int                  `json:"evaluated"`
	Suppressed       int                  `json:"suppressed"`
	Failures         []domain.ItemFailure `json:"failures,omitempty"`
}

type Detector struct {
	buffers   domain.BufferRepository
	snapshots Snapshotter
	breaches  domain.BreachRepository
	publisher domain.EventPublisher
	metrics   *metrics.EngineMetrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewDetector(
	buffers domain.BufferRepository,
	snapshots Snapshotter,
	breaches domain.BreachRepository,
	publisher domain.EventPublisher,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) *Detector {
	return &Detector{
		buffers:   buffers,
		snapshots: snapshots,
		breaches:  breaches,
		publisher: publisher,
		metrics:   engineMetrics,
		logger:    logger,
		now:       time.Now,
	}
}

func (d *Detector) WithClock(now func() time.Time) *Detector {
	d.now = now
	return d
}

// DetectBreaches классифицирует каждый буфер в scope и записывает событие
// для RED, YELLOW и BLUE. Открытое событие того же типа не дублируется.
// Ошибка по одной паре не прерывает проход.
func (d *Detector) DetectBreaches(ctx context.Context, scope domain.Scope) (*Summary, error) {
	start := time.Now()
	defer func() { d.metrics.ObserveRun(metrics.OpDetectBreaches, time.Since(start).Seconds()) }()

	buffers, err := d.buffers.ListBuffers(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list buffers: %w", err)
	}

	summary := &Summary{}
	for _, b := range buffers {
		summary.Evaluated++

		event, created, err := d.evaluate(ctx, b)
		if err != nil {
			d.logger.Error("Failed to evaluate buffer",
				"product_id", b.ProductID,
				"location_id", b.LocationID,
				"error", err)
			d.metrics.RecordItemFailure(metrics.OpDetectBreaches)
			summary.Failures = append(summary.Failures, domain.ItemFailure{
				ProductID:  b.ProductID,
				LocationID: b.LocationID,
				Error:      err.Error(),
			})
			continue
		}
		if event == nil {
			continue
		}
		if !created {
			summary.Suppressed++
			d.metrics.RecordBreachSuppressed(string(event.BreachType))
			continue
		}

		summary.BreachesDetected++
		switch event.Severity {
		case domain.SeverityHigh:
			summary.CriticalCount++
		case domain.SeverityMedium:
			summary.HighCount++
		default:
			summary.LowCount++
		}
		d.metrics.RecordBreach(string(event.BreachType), string(event.Severity))

		if d.publisher != nil {
			if err := d.publisher.PublishBreach(ctx, event); err != nil {
				d.logger.Warn("Failed to publish breach event", "breach_id", event.ID, "error", err)
			}
		}
	}

	d.logger.Info("Breach scan finished",
		"evaluated", summary.Evaluated,
		"detected", summary.BreachesDetected,
		"critical", summary.CriticalCount,
		"high", summary.HighCount,
		"suppressed", summary.Suppressed,
		"failed", len(summary.Failures))
	return summary, nil
}

// evaluate возвращает nil, если буфер в GREEN или не поддерживается.
func (d *Detector) evaluate(ctx context.Context, b *domain.BufferState) (*domain.BreachEvent, bool, error) {
	if b.Zones.IsEmpty() {
		d.logger.Debug("Skipping unmaintained buffer", "product_id", b.ProductID, "location_id", b.LocationID)
		return nil, false, nil
	}

	snap, err := d.snapshots.Snapshot(ctx, b)
	if err != nil {
		return nil, false, err
	}
	breachType, ok := domain.BreachTypeForStatus(snap.Status)
	if !ok {
		return nil, false, nil
	}

	event := &domain.BreachEvent{
		ID:         uuid.New().String(),
		ProductID:  b.ProductID,
		LocationID: b.LocationID,
		BreachType: breachType,
		CurrentOH:  snap.OnHand,
		NetFlow:    snap.NFP,
		Threshold:  Threshold(b, breachType),
		Severity:   breachType.Severity(),
		DetectedAt: d.now(),
	}

	created, err := d.breaches.CreateBreachIfAbsent(ctx, event)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save breach: %w", err)
	}
	return event, created, nil
}

// Threshold - граница, которую пересек NFP.
func Threshold(b *domain.BufferState, t domain.BreachType) int64 {
	switch t {
	case domain.BreachBelowTOR:
		return b.TOR()
	case domain.BreachBelowTOY:
		return b.TOY()
	default:
		return b.TOG()
	}
}
