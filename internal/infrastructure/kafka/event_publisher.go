package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
)

const dateLayout = "2006-01-02"

type Topics struct {
	Breach        string
	Replenishment string
	Recalculation string
}

// EventPublisher переводит доменные события в JSON и пишет их в свои топики.
type EventPublisher struct {
	port   domain.PublisherPort
	topics Topics
}

func NewEventPublisher(port domain.PublisherPort, topics Topics) *EventPublisher {
	return &EventPublisher{port: port, topics: topics}
}

var _ domain.EventPublisher = (*EventPublisher)(nil)

func (p *EventPublisher) PublishBreach(ctx context.Context, e *domain.BreachEvent) error {
	return p.publish(ctx, p.topics.Breach, e.ProductID, e.LocationID, BreachEvent{
		BreachID:   e.ID,
		ProductID:  e.ProductID,
		LocationID: e.LocationID,
		BreachType: string(e.BreachType),
		Severity:   string(e.Severity),
		CurrentOH:  e.CurrentOH,
		NetFlow:    e.NetFlow,
		Threshold:  e.Threshold,
		DetectedAt: e.DetectedAt,
	})
}

func (p *EventPublisher) PublishReplenishment(ctx context.Context, o *domain.ReplenishmentOrder) error {
	return p.publish(ctx, p.topics.Replenishment, o.ProductID, o.LocationID, ReplenishmentEvent{
		OrderID:       o.ID,
		Reference:     o.Reference,
		ProductID:     o.ProductID,
		LocationID:    o.LocationID,
		QtyRecommend:  o.QtyRecommend,
		NetFlow:       o.NetFlow,
		TopOfGreen:    o.TopOfGreen,
		TargetDueDate: o.TargetDueDate.Format(dateLayout),
		BreachID:      o.BreachID,
		ProposalTS:    o.ProposalTS,
	})
}

func (p *EventPublisher) PublishRecalculation(ctx context.Context, r *domain.RecalculationHistoryRecord) error {
	return p.publish(ctx, p.topics.Recalculation, r.ProductID, r.LocationID, RecalculationEvent{
		RecordID:     r.ID,
		ProductID:    r.ProductID,
		LocationID:   r.LocationID,
		OldADU:       r.OldADU,
		NewADU:       r.NewADU,
		OldTOG:       r.OldZones.TOG(),
		NewTOG:       r.NewZones.TOG(),
		ChangeReason: r.ChangeReason,
		TriggeredBy:  string(r.TriggeredBy),
		RecalcTS:     r.RecalcTS,
	})
}

func (p *EventPublisher) publish(ctx context.Context, topic, productID, locationID string, event any) error {
	v, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	key := []byte(productID + ":" + locationID)
	if err := p.port.Publish(ctx, topic, domain.Message{Key: key, Value: v}); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// DecodeOrderBooked разбирает входящее сообщение о заказе.
func DecodeOrderBooked(msg domain.Message) (*domain.SalesOrder, error) {
	var event OrderBookedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to decode order booking: %w", err)
	}
	due, err := parseDate(event.ConfirmedDueDate)
	if err != nil {
		return nil, err
	}
	return &domain.SalesOrder{
		ID:               event.OrderID,
		ProductID:        event.ProductID,
		LocationID:       event.LocationID,
		Qty:              event.Qty,
		ConfirmedDueDate: due,
		Status:           domain.SalesOrderOpen,
		BookedAt:         event.BookedAt,
	}, nil
}
