package response

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

const dateLayout = "2006-01-02"

func FromBreach(e *domain.BreachEvent) BreachResponse {
	return BreachResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		LocationID:     e.LocationID,
		BreachType:     string(e.BreachType),
		Severity:       string(e.Severity),
		CurrentOH:      e.CurrentOH,
		NetFlow:        e.NetFlow,
		Threshold:      e.Threshold,
		DetectedAt:     e.DetectedAt,
		Acknowledged:   e.Acknowledged,
		AcknowledgedAt: e.AcknowledgedAt,
	}
}

func FromBreaches(events []*domain.BreachEvent) []BreachResponse {
	out := make([]BreachResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromBreach(e))
	}
	return out
}

func FromReplenishment(o *domain.ReplenishmentOrder) ReplenishmentResponse {
	return ReplenishmentResponse{
		ID:            o.ID,
		Reference:     o.Reference,
		ProductID:     o.ProductID,
		LocationID:    o.LocationID,
		QtyRecommend:  o.QtyRecommend,
		NetFlow:       o.NetFlow,
		TopOfGreen:    o.TopOfGreen,
		TargetDueDate: o.TargetDueDate.Format(dateLayout),
		Status:        string(o.Status),
		BreachID:      o.BreachID,
		ProposalTS:    o.ProposalTS,
	}
}

func FromReplenishments(orders []*domain.ReplenishmentOrder) []ReplenishmentResponse {
	out := make([]ReplenishmentResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromReplenishment(o))
	}
	return out
}

func FromRecalculationRecord(r *domain.RecalculationHistoryRecord) RecalculationRecordResponse {
	return RecalculationRecordResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		LocationID:   r.LocationID,
		OldADU:       r.OldADU,
		NewADU:       r.NewADU,
		OldZones:     r.OldZones,
		NewZones:     r.NewZones,
		DAFApplied:   r.DAFApplied,
		LTAFApplied:  r.LTAFApplied,
		TrendFactor:  r.TrendFactor,
		ChangeReason: r.ChangeReason,
		TriggeredBy:  string(r.TriggeredBy),
		RecalcTS:     r.RecalcTS,
	}
}

func FromRecalculationRecords(records []*domain.RecalculationHistoryRecord) []RecalculationRecordResponse {
	out := make([]RecalculationRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecalculationRecord(r))
	}
	return out
}

func FromQualification(q *domain.OrderQualification, created bool) QualificationResponse {
	return QualificationResponse{
		OrderID:             q.OrderID,
		Revision:            q.Revision,
		OrderQty:            q.OrderQty,
		QualifiedQty:        q.QualifiedQty,
		UnqualifiedQty:      q.UnqualifiedQty,
		IsSpike:             q.IsSpike,
		SpikeThresholdQty:   q.SpikeThresholdQty,
		SpikeHorizonDays:    q.SpikeHorizonDays,
		QualificationReason: string(q.QualificationReason),
		QualifiedAt:         q.QualifiedAt,
		Created:             created,
	}
}

// FromRecommendation отдает type=null, если точка развязки не рекомендована.
func FromRecommendation(r *domain.DecouplingRecommendation) DecouplingResponse {
	resp := DecouplingResponse{
		ID:            r.ID,
		LocationID:    r.LocationID,
		Score:         r.Score,
		Contributions: r.Contributions,
		Confidence:    r.Confidence,
		ScoredAt:      r.ScoredAt,
	}
	if r.Type != domain.DecouplingNone {
		t := string(r.Type)
		resp.Type = &t
	}
	return resp
}
