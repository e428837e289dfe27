package mappers

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
)

func ToGORMBuffer(b *domain.BufferState) *models.BufferStateModel {
	return &models.BufferStateModel{
		ID:                    b.ID,
		ProductID:             b.ProductID,
		LocationID:            b.LocationID,
		ProfileID:             b.ProfileID,
		ADU:                   b.ADU,
		DecoupledLeadTimeDays: b.DecoupledLeadTimeDays,
		VariabilityFactor:     b.VariabilityFactor,
		RedZone:               b.Zones.Red,
		YellowZone:            b.Zones.Yellow,
		GreenZone:             b.Zones.Green,
		DAF:                   b.DAF,
		LTAF:                  b.LTAF,
		MOQ:                   b.MOQ,
		RoundingMultiple:      b.RoundingMultiple,
		LastRecalculatedAt:    b.LastRecalculatedAt,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func ToDomainBuffer(m *models.BufferStateModel) *domain.BufferState {
	return &domain.BufferState{
		ID:                    m.ID,
		ProductID:             m.ProductID,
		LocationID:            m.LocationID,
		ProfileID:             m.ProfileID,
		ADU:                   m.ADU,
		DecoupledLeadTimeDays: m.DecoupledLeadTimeDays,
		VariabilityFactor:     m.VariabilityFactor,
		Zones: domain.Zones{
			Red:    m.RedZone,
			Yellow: m.YellowZone,
			Green:  m.GreenZone,
		},
		DAF:                m.DAF,
		LTAF:               m.LTAF,
		MOQ:                m.MOQ,
		RoundingMultiple:   m.RoundingMultiple,
		LastRecalculatedAt: m.LastRecalculatedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func ToGORMRecalculation(r *domain.RecalculationHistoryRecord) *models.RecalculationHistoryModel {
	return &models.RecalculationHistoryModel{
		ID:            r.ID,
		BufferID:      r.BufferID,
		ProductID:     r.ProductID,
		LocationID:    r.LocationID,
		OldADU:        r.OldADU,
		NewADU:        r.NewADU,
		OldRedZone:    r.OldZones.Red,
		OldYellowZone: r.OldZones.Yellow,
		OldGreenZone:  r.OldZones.Green,
		NewRedZone:    r.NewZones.Red,
		NewYellowZone: r.NewZones.Yellow,
		NewGreenZone:  r.NewZones.Green,
		DAFApplied:    r.DAFApplied,
		LTAFApplied:   r.LTAFApplied,
		TrendFactor:   r.TrendFactor,
		ChangeReason:  r.ChangeReason,
		TriggeredBy:   string(r.TriggeredBy),
		RecalcTS:      r.RecalcTS,
	}
}

func ToDomainRecalculation(m *models.RecalculationHistoryModel) *domain.RecalculationHistoryRecord {
	return &domain.RecalculationHistoryRecord{
		ID:           m.ID,
		BufferID:     m.BufferID,
		ProductID:    m.ProductID,
		LocationID:   m.LocationID,
		OldADU:       m.OldADU,
		NewADU:       m.NewADU,
		OldZones:     domain.Zones{Red: m.OldRedZone, Yellow: m.OldYellowZone, Green: m.OldGreenZone},
		NewZones:     domain.Zones{Red: m.NewRedZone, Yellow: m.NewYellowZone, Green: m.NewGreenZone},
		DAFApplied:   m.DAFApplied,
		LTAFApplied:  m.LTAFApplied,
		TrendFactor:  m.TrendFactor,
		ChangeReason: m.ChangeReason,
		TriggeredBy:  domain.TriggeredBy(m.TriggeredBy),
		RecalcTS:     m.RecalcTS,
	}
}
