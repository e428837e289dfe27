package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func ToGORMRecommendation(r *domain.DecouplingRecommendation) (*models.DecouplingRecommendationModel, error) {
	contributions, err := json.Marshal(r.Contributions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contributions: %w", err)
	}

	var decouplingType *string
	if r.Type != domain.DecouplingNone {
		t := string(r.Type)
		decouplingType = &t
	}

	return &models.DecouplingRecommendationModel{
		ID:            r.ID,
		LocationID:    r.LocationID,
		Score:         r.Score,
		Contributions: datatypes.JSON(contributions),
		Type:          decouplingType,
		Confidence:    r.Confidence,
		ScoredAt:      r.ScoredAt,
	}, nil
}

func ToDomainRecommendation(m *models.DecouplingRecommendationModel) (*domain.DecouplingRecommendation, error) {
	contributions := make(map[string]decimal.Decimal)
	if len(m.Contributions) > 0 {
		if err := json.Unmarshal(m.Contributions, &contributions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contributions: %w", err)
		}
	}

	rec := &domain.DecouplingRecommendation{
		ID:            m.ID,
		LocationID:    m.LocationID,
		Score:         m.Score,
		Contributions: contributions,
		Confidence:    m.Confidence,
		ScoredAt:      m.ScoredAt,
	}
	if m.Type != nil {
		rec.Type = domain.DecouplingType(*m.Type)
	}
	return rec, nil
}
