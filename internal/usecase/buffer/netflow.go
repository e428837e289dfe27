package buffer

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func NetFlowPosition(onHand, onOrder, qualifiedDemand decimal.Decimal) decimal.Decimal {
	return onHand.Add(onOrder).Sub(qualifiedDemand)
}

// Status классифицирует NFP относительно порогов. Отрицательный NFP всегда RED.
func Status(nfp decimal.Decimal, tor, toy, tog int64) domain.BufferStatus {
	switch {
	case nfp.IsNegative() || nfp.LessThan(decimal.NewFromInt(tor)):
		return domain.BufferRed
	case nfp.LessThan(decimal.NewFromInt(toy)):
		return domain.BufferYellow
	case nfp.LessThanOrEqual(decimal.NewFromInt(tog)):
		return domain.BufferGreen
	default:
		return domain.BufferBlue
	}
}

// Penetration - доля NFP от TOG в процентах, только для отображения.
func Penetration(nfp decimal.Decimal, tog int64) decimal.Decimal {
	if tog <= 0 {
		return decimal.Zero
	}
	pct := nfp.Div(decimal.NewFromInt(tog)).Mul(hundred)
	return clamp(pct, decimal.Zero, hundred).Round(2)
}

func Classify(onHand, onOrder, qualifiedDemand decimal.Decimal, tor, toy, tog int64) domain.NetFlowSnapshot {
	nfp := NetFlowPosition(onHand, onOrder, qualifiedDemand)
	return domain.NetFlowSnapshot{
		OnHand:          onHand,
		OnOrder:         onOrder,
		QualifiedDemand: qualifiedDemand,
		NFP:             nfp,
		Status:          Status(nfp, tor, toy, tog),
		Penetration:     Penetration(nfp, tog),
	}
}

// ClassifyBuffer классифицирует позицию по порогам ее буфера.
func ClassifyBuffer(b *domain.BufferState, onHand, onOrder, qualifiedDemand decimal.Decimal) domain.NetFlowSnapshot {
	return Classify(onHand, onOrder, qualifiedDemand, b.TOR(), b.TOY(), b.TOG())
}
