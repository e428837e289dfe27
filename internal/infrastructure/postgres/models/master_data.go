package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocationModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Role      string `gorm:"not null;default:OTHER"`
	CreatedAt time.Time
}

func (LocationModel) TableName() string { return "locations" }

type BufferProfileModel struct {
	ID                   string `gorm:"primaryKey"`
	Name                 string
	VariabilityFactor    decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	SpikeHorizonFactor   decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	SpikeThresholdFactor decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
}

func (BufferProfileModel) TableName() string { return "buffer_profiles" }
