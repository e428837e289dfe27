package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrderModel struct {
	ID               string          `gorm:"primaryKey"`
	ProductID        string          `gorm:"not null;index:idx_sales_product_location"`
	LocationID       string          `gorm:"not null;index:idx_sales_product_location"`
	Qty              decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	ConfirmedDueDate time.Time       `gorm:"type:date;not null"`
	Status           string          `gorm:"not null;default:OPEN"`
	BookedAt         time.Time
}

func (SalesOrderModel) TableName() string { return "sales_orders" }

type OrderQualificationModel struct {
	ID                  string          `gorm:"primaryKey;type:uuid"`
	OrderID             string          `gorm:"not null;uniqueIndex:uq_qualification_revision"`
	ProductID           string          `gorm:"not null"`
	LocationID          string          `gorm:"not null"`
	Revision            int             `gorm:"not null;uniqueIndex:uq_qualification_revision"`
	OrderQty            decimal.Decimal `gorm:"type:numeric(18,4)"`
	QualifiedQty        decimal.Decimal `gorm:"type:numeric(18,4)"`
	UnqualifiedQty      decimal.Decimal `gorm:"type:numeric(18,4)"`
	IsSpike             bool
	SpikeThresholdQty   decimal.Decimal `gorm:"type:numeric(18,4)"`
	SpikeHorizonDays    decimal.Decimal `gorm:"type:numeric(10,4)"`
	ADUAtQualification  decimal.Decimal `gorm:"column:adu_at_qualification;type:numeric(18,4)"`
	ConfirmedDueDate    time.Time       `gorm:"type:date"`
	QualificationReason string          `gorm:"not null"`
	QualifiedAt         time.Time
}

func (OrderQualificationModel) TableName() string { return "order_qualifications" }
