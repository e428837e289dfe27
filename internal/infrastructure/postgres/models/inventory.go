package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OnHandSnapshotModel struct {
	ID         uint            `gorm:"primaryKey"`
	ProductID  string          `gorm:"not null;index:idx_on_hand_latest"`
	LocationID string          `gorm:"not null;index:idx_on_hand_latest"`
	Qty        decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CapturedAt time.Time       `gorm:"not null;index:idx_on_hand_latest,sort:desc"`
}

func (OnHandSnapshotModel) TableName() string { return "on_hand_snapshots" }

type OpenSupplyOrderModel struct {
	ID         string          `gorm:"primaryKey"`
	ProductID  string          `gorm:"not null;index:idx_supply_product_location"`
	LocationID string          `gorm:"not null;index:idx_supply_product_location"`
	OpenQty    decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	DueDate    time.Time       `gorm:"type:date"`
	Status     string          `gorm:"not null;default:OPEN"`
}

func (OpenSupplyOrderModel) TableName() string { return "open_supply_orders" }

type DemandRecordModel struct {
	ID         uint            `gorm:"primaryKey"`
	ProductID  string          `gorm:"not null;index:idx_demand_product_location_date"`
	LocationID string          `gorm:"not null;index:idx_demand_product_location_date"`
	DemandDate time.Time       `gorm:"type:date;not null;index:idx_demand_product_location_date"`
	Qty        decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

func (DemandRecordModel) TableName() string { return "demand_history" }

type PlannedAdjustmentModel struct {
	ID         string          `gorm:"primaryKey"`
	ProductID  string          `gorm:"not null;index:idx_adjustment_product_location"`
	LocationID string          `gorm:"not null;index:idx_adjustment_product_location"`
	Type       string          `gorm:"not null"`
	Factor     decimal.Decimal `gorm:"type:numeric(8,4);not null"`
	StartsAt   time.Time       `gorm:"not null"`
	EndsAt     time.Time       `gorm:"not null"`
	Note       string
}

func (PlannedAdjustmentModel) TableName() string { return "planned_adjustments" }
