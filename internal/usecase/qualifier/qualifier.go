package qualifier

import (
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Params - входные данные квалификации одного заказа.
type Params struct {
	OrderQty              decimal.Decimal
	ConfirmedDueDate      time.Time
	Today                 time.Time
	ADU                   decimal.Decimal
	SpikeHorizonFactor    decimal.Decimal
	SpikeThresholdFactor  decimal.Decimal
	DecoupledLeadTimeDays int
}

// Qualify решает, какая часть заказа входит в квалифицированный спрос.
//
// Заказ за горизонтом spike_horizon_days исключается целиком и будет
// переоценен позже. Внутри горизонта объем сверх spike_threshold_qty
// считается всплеском и в NFP не попадает. При нулевом ADU порог равен
// нулю, и любой положительный заказ внутри горизонта становится
// всплеском с qualified_qty = 0. Просроченные заказы находятся внутри
// горизонта.
func Qualify(p Params) domain.OrderQualification {
	dlt := decimal.NewFromInt(int64(p.DecoupledLeadTimeDays))
	horizon := dlt.Mul(p.SpikeHorizonFactor)
	threshold := p.ADU.Mul(dlt).Mul(p.SpikeThresholdFactor)

	q := domain.OrderQualification{
		OrderQty:           p.OrderQty,
		SpikeThresholdQty:  threshold,
		SpikeHorizonDays:   horizon,
		ADUAtQualification: p.ADU,
		ConfirmedDueDate:   p.ConfirmedDueDate,
	}

	if decimal.NewFromInt(daysUntil(p.Today, p.ConfirmedDueDate)).GreaterThan(horizon) {
		q.QualifiedQty = decimal.Zero
		q.UnqualifiedQty = p.OrderQty
		q.QualificationReason = domain.ReasonOutsideHorizon
		return q
	}

	switch {
	case p.OrderQty.GreaterThan(threshold):
		q.IsSpike = true
		q.QualifiedQty = threshold
		q.UnqualifiedQty = p.OrderQty.Sub(threshold)
		q.QualificationReason = domain.ReasonSpikeCapped
	default:
		q.QualifiedQty = p.OrderQty
		q.UnqualifiedQty = decimal.Zero
		q.QualificationReason = domain.ReasonWithinThreshold
	}
	return q
}

func daysUntil(today, due time.Time) int64 {
	return int64(domain.TruncateDay(due).Sub(domain.TruncateDay(today)).Hours() / 24)
}
