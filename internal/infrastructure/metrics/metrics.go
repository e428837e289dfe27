package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Операции движка, используются как значение метки "operation".
const (
	OpDetectBreaches        = "detect_breaches"
	OpGenerateReplenishment = "generate_replenishment"
	OpRecalculate           = "recalculate"
	OpRequalify             = "requalify"
)

// EngineMetrics содержит все метрики движка буферов.
// Все методы безопасны для nil-получателя.
type EngineMetrics struct {
	// Нарушения порогов
	BreachesDetectedTotal   *prometheus.CounterVec
	BreachesSuppressedTotal *prometheus.CounterVec

	// Рекомендации на пополнение
	ReplenishmentOrdersTotal *prometheus.CounterVec
	ReplenishmentQtyTotal    *prometheus.CounterVec

	// Пересчет буферов
	RecalculationsTotal *prometheus.CounterVec

	// Квалификация заказов
	QualificationsTotal *prometheus.CounterVec

	// Точки развязки
	DecouplingScores *prometheus.HistogramVec

	// Пакетные прогоны
	RunDuration       *prometheus.HistogramVec
	ItemFailuresTotal *prometheus.CounterVec
}

// NewEngineMetrics регистрирует метрики в переданном регистраторе.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	factory := promauto.With(reg)

	return &EngineMetrics{
		BreachesDetectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffer_breaches_detected_total",
				Help: "Количество созданных событий нарушения порогов буфера",
			},
			[]string{"breach_type", "severity"},
		),

		BreachesSuppressedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffer_breaches_suppressed_total",
				Help: "Нарушения, не созданные из-за уже открытого события того же типа",
			},
			[]string{"breach_type"},
		),

		ReplenishmentOrdersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "replenishment_orders_created_total",
				Help: "Количество созданных черновиков заказов на пополнение",
			},
			[]string{"location_id"},
		),

		ReplenishmentQtyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "replenishment_qty_recommended_total",
				Help: "Суммарное рекомендованное количество к пополнению",
			},
			[]string{"location_id"},
		),

		RecalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffer_recalculations_total",
				Help: "Количество пересчетов буферов по источнику запуска и результату",
			},
			[]string{"triggered_by", "result"},
		),

		QualificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_qualifications_total",
				Help: "Количество квалификаций заказов по ветке решения",
			},
			[]string{"reason", "is_spike"},
		),

		DecouplingScores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "decoupling_point_score",
				Help:    "Распределение итоговых оценок точек развязки",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"decoupling_type"},
		),

		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buffer_engine_run_duration_seconds",
				Help:    "Длительность пакетных операций движка в секундах",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms, 20ms, 40ms...
			},
			[]string{"operation"},
		),

		ItemFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buffer_engine_item_failures_total",
				Help: "Пары product-location, пропущенные из-за ошибки внутри пакета",
			},
			[]string{"operation"},
		),
	}
}

// RecordBreach записывает созданное событие нарушения
func (m *EngineMetrics) RecordBreach(breachType, severity string) {
	if m == nil {
		return
	}
	m.BreachesDetectedTotal.WithLabelValues(breachType, severity).Inc()
}

// RecordBreachSuppressed записывает подавленный дубликат
func (m *EngineMetrics) RecordBreachSuppressed(breachType string) {
	if m == nil {
		return
	}
	m.BreachesSuppressedTotal.WithLabelValues(breachType).Inc()
}

// RecordOrderCreated записывает созданный черновик пополнения
func (m *EngineMetrics) RecordOrderCreated(locationID string, qty int64) {
	if m == nil {
		return
	}
	m.ReplenishmentOrdersTotal.WithLabelValues(locationID).Inc()
	m.ReplenishmentQtyTotal.WithLabelValues(locationID).Add(float64(qty))
}

// RecordRecalculation записывает пересчет одной пары
func (m *EngineMetrics) RecordRecalculation(triggeredBy, result string) {
	if m == nil {
		return
	}
	m.RecalculationsTotal.WithLabelValues(triggeredBy, result).Inc()
}

// RecordQualification записывает квалификацию заказа
func (m *EngineMetrics) RecordQualification(reason string, isSpike bool) {
	if m == nil {
		return
	}
	m.QualificationsTotal.WithLabelValues(reason, strconv.FormatBool(isSpike)).Inc()
}

// RecordDecouplingScore записывает оценку точки развязки
func (m *EngineMetrics) RecordDecouplingScore(decouplingType string, score int) {
	if m == nil {
		return
	}
	if decouplingType == "" {
		decouplingType = "none"
	}
	m.DecouplingScores.WithLabelValues(decouplingType).Observe(float64(score))
}

// ObserveRun записывает длительность пакетной операции
func (m *EngineMetrics) ObserveRun(operation string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.RunDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordItemFailure записывает пропуск позиции внутри пакета
func (m *EngineMetrics) RecordItemFailure(operation string) {
	if m == nil {
		return
	}
	m.ItemFailuresTotal.WithLabelValues(operation).Inc()
}
