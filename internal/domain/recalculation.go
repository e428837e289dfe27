package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TriggeredBy string

const (
	TriggerManual    TriggeredBy = "MANUAL"
	TriggerScheduled TriggeredBy = "SCHEDULED"
	TriggerBatchAuto TriggeredBy = "BATCH_AUTO"
)

func (t TriggeredBy) Valid() bool {
	switch t {
	case TriggerManual, TriggerScheduled, TriggerBatchAuto:
		return true
	}
	return false
}

// Причины изменения; в RecalculationHistoryRecord.ChangeReason склеиваются через запятую.
const (
	ChangeNoChange          = "no_change"
	ChangeADUChanged        = "adu_changed"
	ChangeAdjustmentApplied = "adjustment_applied"
	ChangeZonesResized      = "zones_resized"
	ChangeNoDemandHistory   = "no_demand_history"
)

// RecalculationHistoryRecord - неизменяемый снимок до/после пересчета.
type RecalculationHistoryRecord struct {
	ID           string
	BufferID     string
	ProductID    string
	LocationID   string
	OldADU       decimal.Decimal
	NewADU       decimal.Decimal
	OldZones     Zones
	NewZones     Zones
	DAFApplied   decimal.Decimal
	LTAFApplied  decimal.Decimal
	TrendFactor  decimal.Decimal
	ChangeReason string
	TriggeredBy  TriggeredBy
	RecalcTS     time.Time
}
