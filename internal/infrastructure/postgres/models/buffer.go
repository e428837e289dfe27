package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BufferStateModel struct {
	ID                    string          `gorm:"primaryKey;type:uuid"`
	ProductID             string          `gorm:"not null;uniqueIndex:uq_buffer_product_location"`
	LocationID            string          `gorm:"not null;uniqueIndex:uq_buffer_product_location;index"`
	ProfileID             *string         `gorm:"type:text"`
	ADU                   decimal.Decimal `gorm:"column:adu;type:numeric(18,4);not null;default:0"`
	DecoupledLeadTimeDays int             `gorm:"not null;default:0"`
	VariabilityFactor     decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	RedZone               int64           `gorm:"not null;default:0"`
	YellowZone            int64           `gorm:"not null;default:0"`
	GreenZone             int64           `gorm:"not null;default:0"`
	DAF                   decimal.Decimal `gorm:"column:daf;type:numeric(8,4);not null;default:1"`
	LTAF                  decimal.Decimal `gorm:"column:ltaf;type:numeric(8,4);not null;default:1"`
	MOQ                   int64           `gorm:"column:moq;not null;default:0"`
	RoundingMultiple      int64           `gorm:"not null;default:1"`
	LastRecalculatedAt    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (BufferStateModel) TableName() string { return "buffer_states" }

type RecalculationHistoryModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	BufferID      string          `gorm:"type:uuid;not null"`
	ProductID     string          `gorm:"not null;index:idx_recalc_product_location"`
	LocationID    string          `gorm:"not null;index:idx_recalc_product_location"`
	OldADU        decimal.Decimal `gorm:"column:old_adu;type:numeric(18,4)"`
	NewADU        decimal.Decimal `gorm:"column:new_adu;type:numeric(18,4)"`
	OldRedZone    int64
	OldYellowZone int64
	OldGreenZone  int64
	NewRedZone    int64
	NewYellowZone int64
	NewGreenZone  int64
	DAFApplied    decimal.Decimal `gorm:"column:daf_applied;type:numeric(8,4)"`
	LTAFApplied   decimal.Decimal `gorm:"column:ltaf_applied;type:numeric(8,4)"`
	TrendFactor   decimal.Decimal `gorm:"type:numeric(8,4)"`
	ChangeReason  string
	TriggeredBy   string    `gorm:"not null"`
	RecalcTS      time.Time `gorm:"column:recalc_ts;not null;index:idx_recalc_product_location,sort:desc"`
}

func (RecalculationHistoryModel) TableName() string { return "recalculation_history" }
