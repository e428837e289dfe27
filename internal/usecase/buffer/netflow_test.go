package buffer

import (
	"testing"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatus_Boundaries(t *testing.T) {
	const tor, toy, tog = 24, 224, 364

	tests := []struct {
		nfp  string
		want domain.BufferStatus
	}{
		{"-5", domain.BufferRed},
		{"0", domain.BufferRed},
		{"23.99", domain.BufferRed},
		{"24", domain.BufferYellow},
		{"223", domain.BufferYellow},
		{"224", domain.BufferGreen},
		{"364", domain.BufferGreen},
		{"364.01", domain.BufferBlue},
	}

	for _, tt := range tests {
		t.Run(tt.nfp, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(d(tt.nfp), tor, toy, tog))
		})
	}
}

func TestStatus_NegativeAlwaysRed(t *testing.T) {
	assert.Equal(t, domain.BufferRed, Status(d("-1"), 0, 0, 0))
}

func TestStatus_HealthNonDecreasingInNFP(t *testing.T) {
	rank := map[domain.BufferStatus]int{
		domain.BufferRed:    0,
		domain.BufferYellow: 1,
		domain.BufferGreen:  2,
		domain.BufferBlue:   3,
	}

	prev := -1
	for nfp := int64(-50); nfp <= 450; nfp++ {
		status := Status(decimal.NewFromInt(nfp), 24, 224, 364)
		r, ok := rank[status]
		assert.True(t, ok, "unexpected status %s", status)
		assert.GreaterOrEqual(t, r, prev, "nfp=%d", nfp)
		prev = r
	}
}

func TestClassify_EndToEnd(t *testing.T) {
	zones := ComputeZones(d("20"), 10, d("1.2"), d("1"), d("1"))

	snap := Classify(d("150"), d("0"), d("0"), zones.TOR(), zones.TOY(), zones.TOG())

	assert.True(t, snap.NFP.Equal(d("150")))
	assert.Equal(t, domain.BufferYellow, snap.Status)
	assert.True(t, snap.Penetration.Equal(d("41.21")), snap.Penetration.String())
}

func TestClassify_QualifiedDemandReducesNFP(t *testing.T) {
	snap := Classify(d("100"), d("50"), d("180"), 24, 224, 364)

	assert.True(t, snap.NFP.Equal(d("-30")))
	assert.Equal(t, domain.BufferRed, snap.Status)
	assert.True(t, snap.Penetration.IsZero())
}

func TestPenetration(t *testing.T) {
	assert.True(t, Penetration(d("182"), 364).Equal(d("50")))
	assert.True(t, Penetration(d("-10"), 364).IsZero())
	assert.True(t, Penetration(d("500"), 364).Equal(d("100")))
	assert.True(t, Penetration(d("10"), 0).IsZero())
}
