package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReplenishmentOrderModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	Reference     string          `gorm:"not null;uniqueIndex"`
	ProductID     string          `gorm:"not null;uniqueIndex:uq_draft_per_item,where:status = 'DRAFT'"`
	LocationID    string          `gorm:"not null;uniqueIndex:uq_draft_per_item,where:status = 'DRAFT'"`
	QtyRecommend  int64           `gorm:"not null"`
	NetFlow       decimal.Decimal `gorm:"type:numeric(18,4)"`
	TopOfGreen    int64
	TargetDueDate time.Time `gorm:"type:date"`
	Status        string    `gorm:"not null;default:DRAFT"`
	BreachID      *string   `gorm:"type:uuid"`
	ProposalTS    time.Time `gorm:"column:proposal_ts;not null"`
}

func (ReplenishmentOrderModel) TableName() string { return "replenishment_orders" }
