package buffer

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Policy - константы политики расчета зон. Полосы времени выполнения
// задаются политикой и не выводятся из данных.
type Policy struct {
	ShortLeadTimeDays    int
	MediumLeadTimeDays   int
	ShortLeadTimeFactor  decimal.Decimal
	MediumLeadTimeFactor decimal.Decimal
	LongLeadTimeFactor   decimal.Decimal
	TopOfGreenFactor     decimal.Decimal
	MinGreenZoneDays     decimal.Decimal
	MaxGreenZoneDays     decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		ShortLeadTimeDays:    7,
		MediumLeadTimeDays:   14,
		ShortLeadTimeFactor:  decimal.RequireFromString("0.7"),
		MediumLeadTimeFactor: decimal.NewFromInt(1),
		LongLeadTimeFactor:   decimal.RequireFromString("1.3"),
		TopOfGreenFactor:     decimal.RequireFromString("0.7"),
		MinGreenZoneDays:     decimal.NewFromInt(1),
		MaxGreenZoneDays:     decimal.NewFromInt(60),
	}
}

// LeadTimeFactor: short (<= 7 дней) -> 0.7, medium (<= 14) -> 1.0, long -> 1.3.
func (p Policy) LeadTimeFactor(decoupledLeadTimeDays int) decimal.Decimal {
	switch {
	case decoupledLeadTimeDays <= p.ShortLeadTimeDays:
		return p.ShortLeadTimeFactor
	case decoupledLeadTimeDays <= p.MediumLeadTimeDays:
		return p.MediumLeadTimeFactor
	default:
		return p.LongLeadTimeFactor
	}
}

// ComputeZones считает красную, желтую и зеленую зоны.
//
//	red    = round(adu * ltaf * LTF(dlt) * variability * daf)
//	yellow = round(adu * daf * dlt * ltaf)
//	green  = round(yellow * topOfGreenFactor), где покрытие зеленой зоны в днях
//	         ограничено [MinGreenZoneDays, MaxGreenZoneDays]
//
// Нулевой ADU или нулевое время выполнения дают пустой буфер, это не ошибка.
// Нулевые daf/ltaf трактуются как незаданные (1.0).
func (p Policy) ComputeZones(adu decimal.Decimal, decoupledLeadTimeDays int, variabilityFactor, daf, ltaf decimal.Decimal) domain.Zones {
	if !adu.IsPositive() || decoupledLeadTimeDays <= 0 {
		return domain.Zones{}
	}
	daf = factorOrOne(daf)
	ltaf = factorOrOne(ltaf)
	if variabilityFactor.IsNegative() {
		variabilityFactor = decimal.Zero
	}
	dlt := decimal.NewFromInt(int64(decoupledLeadTimeDays))

	red := adu.Mul(ltaf).Mul(p.LeadTimeFactor(decoupledLeadTimeDays)).Mul(variabilityFactor).Mul(daf)
	yellow := roundQty(adu.Mul(daf).Mul(dlt).Mul(ltaf))

	greenDays := dlt.Mul(ltaf).Mul(p.TopOfGreenFactor)
	var green int64
	if clamped := clamp(greenDays, p.MinGreenZoneDays, p.MaxGreenZoneDays); clamped.Equal(greenDays) {
		green = roundQty(decimal.NewFromInt(yellow).Mul(p.TopOfGreenFactor))
	} else {
		green = roundQty(adu.Mul(daf).Mul(clamped))
	}

	return domain.Zones{
		Red:    roundQty(red),
		Yellow: yellow,
		Green:  green,
	}
}

// ComputeZones считает зоны по политике по умолчанию.
func ComputeZones(adu decimal.Decimal, decoupledLeadTimeDays int, variabilityFactor, daf, ltaf decimal.Decimal) domain.Zones {
	return DefaultPolicy().ComputeZones(adu, decoupledLeadTimeDays, variabilityFactor, daf, ltaf)
}

func factorOrOne(f decimal.Decimal) decimal.Decimal {
	if f.IsZero() {
		return decimal.NewFromInt(1)
	}
	return f
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if hi.LessThan(lo) {
		hi = lo
	}
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// roundQty округляет половины от нуля и не возвращает отрицательных значений.
func roundQty(v decimal.Decimal) int64 {
	r := v.Round(0).IntPart()
	if r < 0 {
		return 0
	}
	return r
}
