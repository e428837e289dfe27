package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BufferStatus string

const (
	BufferRed    BufferStatus = "RED"
	BufferYellow BufferStatus = "YELLOW"
	BufferGreen  BufferStatus = "GREEN"
	BufferBlue   BufferStatus = "BLUE"
)

// Zones - размеры красной, желтой и зеленой зон в штуках.
type Zones struct {
	Red    int64 `json:"red"`
	Yellow int64 `json:"yellow"`
	Green  int64 `json:"green"`
}

func (z Zones) TOR() int64 { return z.Red }
func (z Zones) TOY() int64 { return z.Red + z.Yellow }
func (z Zones) TOG() int64 { return z.Red + z.Yellow + z.Green }

// IsEmpty - буфер не поддерживается (нулевой ADU или нулевое время выполнения).
func (z Zones) IsEmpty() bool {
	return z.TOG() == 0
}

// BufferState - буфер одной пары product-location.
// Изменяется только движком пересчета.
type BufferState struct {
	ID                    string
	ProductID             string
	LocationID            string
	ProfileID             *string
	ADU                   decimal.Decimal
	DecoupledLeadTimeDays int
	VariabilityFactor     decimal.Decimal
	Zones                 Zones
	DAF                   decimal.Decimal
	LTAF                  decimal.Decimal
	MOQ                   int64
	RoundingMultiple      int64
	LastRecalculatedAt    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (b *BufferState) TOR() int64 { return b.Zones.TOR() }
func (b *BufferState) TOY() int64 { return b.Zones.TOY() }
func (b *BufferState) TOG() int64 { return b.Zones.TOG() }

// NetFlowSnapshot вычисляется на лету и не хранится как источник истины.
type NetFlowSnapshot struct {
	OnHand          decimal.Decimal `json:"on_hand"`
	OnOrder         decimal.Decimal `json:"on_order"`
	QualifiedDemand decimal.Decimal `json:"qualified_demand"`
	NFP             decimal.Decimal `json:"nfp"`
	Status          BufferStatus    `json:"status"`
	Penetration     decimal.Decimal `json:"penetration_pct"`
}

func (s NetFlowSnapshot) NeedsReplenishment() bool {
	return s.Status == BufferRed || s.Status == BufferYellow
}
