package models

import (
	"time"

	"gorm.io/datatypes"
)

type DecouplingRecommendationModel struct {
	ID            string         `gorm:"primaryKey;type:uuid"`
	LocationID    string         `gorm:"not null;index"`
	Score         int            `gorm:"not null"`
	Contributions datatypes.JSON `gorm:"type:jsonb"`
	Type          *string
	Confidence    int       `gorm:"not null"`
	ScoredAt      time.Time `gorm:"not null"`
}

func (DecouplingRecommendationModel) TableName() string { return "decoupling_recommendations" }
