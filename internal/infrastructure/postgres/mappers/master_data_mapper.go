package mappers

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
)

func ToDomainLocation(m *models.LocationModel) *domain.Location {
	return &domain.Location{
		ID:   m.ID,
		Name: m.Name,
		Role: domain.LocationRole(m.Role),
	}
}

func ToDomainProfile(m *models.BufferProfileModel) *domain.BufferProfile {
	return &domain.BufferProfile{
		ID:                   m.ID,
		Name:                 m.Name,
		VariabilityFactor:    m.VariabilityFactor,
		SpikeHorizonFactor:   m.SpikeHorizonFactor,
		SpikeThresholdFactor: m.SpikeThresholdFactor,
	}
}

func ToDomainDemand(m *models.DemandRecordModel) *domain.DemandRecord {
	return &domain.DemandRecord{
		ProductID:  m.ProductID,
		LocationID: m.LocationID,
		DemandDate: m.DemandDate,
		Qty:        m.Qty,
	}
}

func ToDomainAdjustment(m *models.PlannedAdjustmentModel) *domain.PlannedAdjustment {
	return &domain.PlannedAdjustment{
		ID:         m.ID,
		ProductID:  m.ProductID,
		LocationID: m.LocationID,
		Type:       domain.AdjustmentType(m.Type),
		Factor:     m.Factor,
		StartsAt:   m.StartsAt,
		EndsAt:     m.EndsAt,
		Note:       m.Note,
	}
}
