package mappers

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
)

func ToGORMSalesOrder(o *domain.SalesOrder) *models.SalesOrderModel {
	return &models.SalesOrderModel{
		ID:               o.ID,
		ProductID:        o.ProductID,
		LocationID:       o.LocationID,
		Qty:              o.Qty,
		ConfirmedDueDate: o.ConfirmedDueDate,
		Status:           string(o.Status),
		BookedAt:         o.BookedAt,
	}
}

func ToDomainSalesOrder(m *models.SalesOrderModel) *domain.SalesOrder {
	return &domain.SalesOrder{
		ID:               m.ID,
		ProductID:        m.ProductID,
		LocationID:       m.LocationID,
		Qty:              m.Qty,
		ConfirmedDueDate: m.ConfirmedDueDate,
		Status:           domain.SalesOrderStatus(m.Status),
		BookedAt:         m.BookedAt,
	}
}

func ToGORMQualification(q *domain.OrderQualification) *models.OrderQualificationModel {
	return &models.OrderQualificationModel{
		ID:                  q.ID,
		OrderID:             q.OrderID,
		ProductID:           q.ProductID,
		LocationID:          q.LocationID,
		Revision:            q.Revision,
		OrderQty:            q.OrderQty,
		QualifiedQty:        q.QualifiedQty,
		UnqualifiedQty:      q.UnqualifiedQty,
		IsSpike:             q.IsSpike,
		SpikeThresholdQty:   q.SpikeThresholdQty,
		SpikeHorizonDays:    q.SpikeHorizonDays,
		ADUAtQualification:  q.ADUAtQualification,
		ConfirmedDueDate:    q.ConfirmedDueDate,
		QualificationReason: string(q.QualificationReason),
		QualifiedAt:         q.QualifiedAt,
	}
}

func ToDomainQualification(m *models.OrderQualificationModel) *domain.OrderQualification {
	return &domain.OrderQualification{
		ID:                  m.ID,
		OrderID:             m.OrderID,
		ProductID:           m.ProductID,
		LocationID:          m.LocationID,
		Revision:            m.Revision,
		OrderQty:            m.OrderQty,
		QualifiedQty:        m.QualifiedQty,
		UnqualifiedQty:      m.UnqualifiedQty,
		IsSpike:             m.IsSpike,
		SpikeThresholdQty:   m.SpikeThresholdQty,
		SpikeHorizonDays:    m.SpikeHorizonDays,
		ADUAtQualification:  m.ADUAtQualification,
		ConfirmedDueDate:    m.ConfirmedDueDate,
		QualificationReason: domain.QualificationReason(m.QualificationReason),
		QualifiedAt:         m.QualifiedAt,
	}
}
