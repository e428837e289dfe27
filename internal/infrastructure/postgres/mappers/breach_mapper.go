package mappers

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
)

func ToGORMBreach(e *domain.BreachEvent) *models.BreachEventModel {
	return &models.BreachEventModel{
		ID:             e.ID,
		ProductID:      e.ProductID,
		LocationID:     e.LocationID,
		BreachType:     string(e.BreachType),
		CurrentOH:      e.CurrentOH,
		NetFlow:        e.NetFlow,
		Threshold:      e.Threshold,
		Severity:       string(e.Severity),
		DetectedAt:     e.DetectedAt,
		Acknowledged:   e.Acknowledged,
		AcknowledgedAt: e.AcknowledgedAt,
	}
}

func ToDomainBreach(m *models.BreachEventModel) *domain.BreachEvent {
	return &domain.BreachEvent{
		ID:             m.ID,
		ProductID:      m.ProductID,
		LocationID:     m.LocationID,
		BreachType:     domain.BreachType(m.BreachType),
		CurrentOH:      m.CurrentOH,
		NetFlow:        m.NetFlow,
		Threshold:      m.Threshold,
		Severity:       domain.BreachSeverity(m.Severity),
		DetectedAt:     m.DetectedAt,
		Acknowledged:   m.Acknowledged,
		AcknowledgedAt: m.AcknowledgedAt,
	}
}

func ToGORMReplenishment(o *domain.ReplenishmentOrder) *models.ReplenishmentOrderModel {
	return &models.ReplenishmentOrderModel{
		ID:            o.ID,
		Reference:     o.Reference,
		ProductID:     o.ProductID,
		LocationID:    o.LocationID,
		QtyRecommend:  o.QtyRecommend,
		NetFlow:       o.NetFlow,
		TopOfGreen:    o.TopOfGreen,
		TargetDueDate: o.TargetDueDate,
		Status:        string(o.Status),
		BreachID:      o.BreachID,
		ProposalTS:    o.ProposalTS,
	}
}

func ToDomainReplenishment(m *models.ReplenishmentOrderModel) *domain.ReplenishmentOrder {
	return &domain.ReplenishmentOrder{
		ID:            m.ID,
		Reference:     m.Reference,
		ProductID:     m.ProductID,
		LocationID:    m.LocationID,
		QtyRecommend:  m.QtyRecommend,
		NetFlow:       m.NetFlow,
		TopOfGreen:    m.TopOfGreen,
		TargetDueDate: m.TargetDueDate,
		Status:        domain.ReplenishmentStatus(m.Status),
		BreachID:      m.BreachID,
		ProposalTS:    m.ProposalTS,
	}
}
