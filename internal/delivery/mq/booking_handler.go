package mq

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/kafka"
)

type BookingQualifier interface {
	QualifyOrder(ctx context.Context, order *domain.SalesOrder) (*domain.OrderQualification, bool, error)
}

// BookingHandler квалифицирует каждый заказ из топика бронирований.
// Битые сообщения и ошибки квалификации логируются и пропускаются.
type BookingHandler struct {
	subscriber domain.SubscriberPort
	qualifier  BookingQualifier
	topic      string
	groupID    string
	logger     *slog.Logger
}

func NewBookingHandler(subscriber domain.SubscriberPort, qualifier BookingQualifier, topic, groupID string, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		subscriber: subscriber,
		qualifier:  qualifier,
		topic:      topic,
		groupID:    groupID,
		logger:     logger,
	}
}

// Run блокируется до отмены ctx или закрытия канала подписки.
func (h *BookingHandler) Run(ctx context.Context) error {
	messages, err := h.subscriber.Subscribe(ctx, h.topic, h.groupID)
	if err != nil {
		return err
	}
	h.logger.Info("Order booking consumer started", "topic", h.topic, "group_id", h.groupID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				h.logger.Warn("Order booking subscription closed", "topic", h.topic)
				return nil
			}
			h.Handle(ctx, msg)
		}
	}
}

func (h *BookingHandler) Handle(ctx context.Context, msg domain.Message) {
	order, err := kafka.DecodeOrderBooked(msg)
	if err != nil {
		h.logger.Error("Skipping malformed order booking", "key", string(msg.Key), "error", err)
		return
	}

	q, created, err := h.qualifier.QualifyOrder(ctx, order)
	if err != nil {
		h.logger.Error("Failed to qualify order",
			"order_id", order.ID,
			"product_id", order.ProductID,
			"location_id", order.LocationID,
			"error", err)
		return
	}
	if !created {
		h.logger.Debug("Order already qualified", "order_id", order.ID, "revision", q.Revision)
	}
}
