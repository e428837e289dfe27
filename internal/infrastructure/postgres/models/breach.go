package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Частичный уникальный индекс запрещает два открытых события одного типа.
type BreachEventModel struct {
	ID             string          `gorm:"primaryKey;type:uuid"`
	ProductID      string          `gorm:"not null;uniqueIndex:uq_open_breach,where:acknowledged = false"`
	LocationID     string          `gorm:"not null;uniqueIndex:uq_open_breach,where:acknowledged = false"`
	BreachType     string          `gorm:"not null;uniqueIndex:uq_open_breach,where:acknowledged = false"`
	CurrentOH      decimal.Decimal `gorm:"column:current_oh;type:numeric(18,4)"`
	NetFlow        decimal.Decimal `gorm:"type:numeric(18,4)"`
	Threshold      int64
	Severity       string    `gorm:"not null"`
	DetectedAt     time.Time `gorm:"not null"`
	Acknowledged   bool      `gorm:"not null;default:false"`
	AcknowledgedAt *time.Time
}

func (BreachEventModel) TableName() string { return "breach_events" }
