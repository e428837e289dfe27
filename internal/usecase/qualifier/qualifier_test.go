package qualifier

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func params(qty string, dueInDays int) Params {
	return Params{
		OrderQty:              d(qty),
		ConfirmedDueDate:      today.AddDate(0, 0, dueInDays),
		Today:                 today,
		ADU:                   d("10"),
		SpikeHorizonFactor:    d("1"),
		SpikeThresholdFactor:  d("1.5"),
		DecoupledLeadTimeDays: 7,
	}
}

func TestQualify_SpikeIsCapped(t *testing.T) {
	q := Qualify(params("200", 3))

	assert.True(t, q.SpikeThresholdQty.Equal(d("105")))
	assert.True(t, q.QualifiedQty.Equal(d("105")))
	assert.True(t, q.UnqualifiedQty.Equal(d("95")))
	assert.True(t, q.IsSpike)
	assert.Equal(t, domain.ReasonSpikeCapped, q.QualificationReason)
}

func TestQualify_WithinThreshold(t *testing.T) {
	q := Qualify(params("105", 7))

	assert.True(t, q.QualifiedQty.Equal(d("105")))
	assert.True(t, q.UnqualifiedQty.IsZero())
	assert.False(t, q.IsSpike)
	assert.Equal(t, domain.ReasonWithinThreshold, q.QualificationReason)
}

func TestQualify_OutsideHorizon(t *testing.T) {
	q := Qualify(params("500", 8))

	assert.True(t, q.SpikeHorizonDays.Equal(d("7")))
	assert.True(t, q.QualifiedQty.IsZero())
	assert.True(t, q.UnqualifiedQty.Equal(d("500")))
	assert.False(t, q.IsSpike)
	assert.Equal(t, domain.ReasonOutsideHorizon, q.QualificationReason)
}

func TestQualify_PastDueIsInsideHorizon(t *testing.T) {
	q := Qualify(params("50", -4))

	assert.True(t, q.QualifiedQty.Equal(d("50")))
	assert.Equal(t, domain.ReasonWithinThreshold, q.QualificationReason)
}

func TestQualify_ZeroADUMakesEveryOrderASpike(t *testing.T) {
	p := params("40", 1)
	p.ADU = decimal.Zero

	q := Qualify(p)

	assert.True(t, q.SpikeThresholdQty.IsZero())
	assert.True(t, q.IsSpike)
	assert.True(t, q.QualifiedQty.IsZero())
	assert.True(t, q.UnqualifiedQty.Equal(d("40")))
	assert.Equal(t, domain.ReasonSpikeCapped, q.QualificationReason)
}

func TestQualify_ZeroADUZeroQtyIsWithinThreshold(t *testing.T) {
	p := params("0", 1)
	p.ADU = decimal.Zero

	q := Qualify(p)

	assert.False(t, q.IsSpike)
	assert.True(t, q.QualifiedQty.IsZero())
	assert.Equal(t, domain.ReasonWithinThreshold, q.QualificationReason)
}

func TestQualify_SplitAlwaysSumsToOrderQty(t *testing.T) {
	for _, qty := range []string{"0", "1", "104.5", "105", "105.01", "1000"} {
		for _, due := range []int{-1, 0, 7, 8, 30} {
			q := Qualify(params(qty, due))
			assert.True(t, q.QualifiedQty.Add(q.UnqualifiedQty).Equal(d(qty)), "qty=%s due=%d", qty, due)
			assert.False(t, q.QualifiedQty.IsNegative())
		}
	}
}
