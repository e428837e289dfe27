package qualifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Defaults применяются, когда у буфера нет профиля.
type Defaults struct {
	SpikeHorizonFactor   decimal.Decimal
	SpikeThresholdFactor decimal.Decimal
}

type Service struct {
	orders   domain.OrderRepository
	buffers  domain.BufferRepository
	master   domain.MasterDataRepository
	defaults Defaults
	metrics  *metrics.EngineMetrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	orders domain.OrderRepository,
	buffers domain.BufferRepository,
	master domain.MasterDataRepository,
	defaults Defaults,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		orders:   orders,
		buffers:  buffers,
		master:   master,
		defaults: defaults,
		metrics:  engineMetrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RequalifySummary - итог прохода повторной квалификации.
type RequalifySummary struct {
	Evaluated    int                  `json:"evaluated"`
	Requalified  int                  `json:"requalified"`
	StillOutside int                  `json:"still_outside"`
	Failures     []domain.ItemFailure `json:"failures,omitempty"`
}

// QualifyBooking квалифицирует новый заказ один раз. Повторная доставка
// того же заказа возвращает уже сохраненную запись и created=false.
func (s *Service) QualifyBooking(ctx context.Context, order *domain.SalesOrder) (*domain.OrderQualification, bool, error) {
	if err := order.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.orders.LatestQualification(ctx, order.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrQualificationNotFound) {
		return nil, false, fmt.Errorf("failed to load qualification: %w", err)
	}

	if order.Status == "" {
		order.Status = domain.SalesOrderOpen
	}
	if order.BookedAt.IsZero() {
		order.BookedAt = s.now()
	}

	b, err := s.buffers.GetBuffer(ctx, order.ProductID, order.LocationID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load buffer: %w", err)
	}
	if err := s.orders.SaveSalesOrder(ctx, order); err != nil {
		return nil, false, fmt.Errorf("failed to save sales order: %w", err)
	}

	q, err := s.evaluate(ctx, order, b)
	if err != nil {
		return nil, false, err
	}
	q.Revision = 1

	created, err := s.orders.AppendQualification(ctx, q)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save qualification: %w", err)
	}
	if !created {
		existing, err := s.orders.LatestQualification(ctx, order.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load qualification: %w", err)
		}
		return existing, false, nil
	}

	s.metrics.RecordQualification(string(q.QualificationReason), q.IsSpike)
	s.logger.Info("Order qualified",
		"order_id", order.ID,
		"product_id", order.ProductID,
		"location_id", order.LocationID,
		"reason", q.QualificationReason,
		"qualified_qty", q.QualifiedQty.String())

	return q, true, nil
}

// Requalify переоценивает заказы, которые были за горизонтом.
// Новая оценка добавляется следующей ревизией, старая не меняется.
func (s *Service) Requalify(ctx context.Context, scope domain.Scope) (*RequalifySummary, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRun(metrics.OpRequalify, time.Since(start).Seconds()) }()

	pending, err := s.orders.ListPendingRequalification(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}

	summary := &RequalifySummary{}
	for _, order := range pending {
		summary.Evaluated++

		requalified, err := s.requalifyOne(ctx, order)
		if err != nil {
			s.logger.Error("Failed to requalify order",
				"order_id", order.ID,
				"product_id", order.ProductID,
				"location_id", order.LocationID,
				"error", err)
			s.metrics.RecordItemFailure(metrics.OpRequalify)
			summary.Failures = append(summary.Failures, domain.ItemFailure{
				ProductID:  order.ProductID,
				LocationID: order.LocationID,
				Error:      err.Error(),
			})
			continue
		}
		if requalified {
			summary.Requalified++
		} else {
			summary.StillOutside++
		}
	}

	s.logger.Info("Requalification finished",
		"evaluated", summary.Evaluated,
		"requalified", summary.Requalified,
		"failed", len(summary.Failures))
	return summary, nil
}

func (s *Service) requalifyOne(ctx context.Context, order *domain.SalesOrder) (bool, error) {
	latest, err := s.orders.LatestQualification(ctx, order.ID)
	if err != nil {
		return false, err
	}
	b, err := s.buffers.GetBuffer(ctx, order.ProductID, order.LocationID)
	if err != nil {
		return false, err
	}

	q, err := s.evaluate(ctx, order, b)
	if err != nil {
		return false, err
	}
	if q.QualificationReason == domain.ReasonOutsideHorizon {
		return false, nil
	}
	q.Revision = latest.Revision + 1

	created, err := s.orders.AppendQualification(ctx, q)
	if err != nil {
		return false, err
	}
	if created {
		s.metrics.RecordQualification(string(q.QualificationReason), q.IsSpike)
	}
	return created, nil
}

func (s *Service) evaluate(ctx context.Context, order *domain.SalesOrder, b *domain.BufferState) (*domain.OrderQualification, error) {
	horizonFactor, thresholdFactor, err := s.spikeFactors(ctx, b)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q := Qualify(Params{
		OrderQty:              order.Qty,
		ConfirmedDueDate:      order.ConfirmedDueDate,
		Today:                 now,
		ADU:                   b.ADU,
		SpikeHorizonFactor:    horizonFactor,
		SpikeThresholdFactor:  thresholdFactor,
		DecoupledLeadTimeDays: b.DecoupledLeadTimeDays,
	})
	q.ID = uuid.New().String()
	q.OrderID = order.ID
	q.ProductID = order.ProductID
	q.LocationID = order.LocationID
	q.QualifiedAt = now
	return &q, nil
}

func (s *Service) spikeFactors(ctx context.Context, b *domain.BufferState) (decimal.Decimal, decimal.Decimal, error) {
	horizon, threshold := s.defaults.SpikeHorizonFactor, s.defaults.SpikeThresholdFactor
	if b.ProfileID == nil {
		return horizon, threshold, nil
	}

	profile, err := s.master.GetProfile(ctx, *b.ProfileID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("profile %s: %w", *b.ProfileID, err)
	}
	if profile.SpikeHorizonFactor.IsPositive() {
		horizon = profile.SpikeHorizonFactor
	}
	if profile.SpikeThresholdFactor.IsPositive() {
		threshold = profile.SpikeThresholdFactor
	}
	return horizon, threshold, nil
}
