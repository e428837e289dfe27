package domain

import "context"

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, topic string, msgs ...Message) error
}

type SubscriberPort interface {
	Subscribe(ctx context.Context, topic, groupID string) (<-chan Message, error)
}

// EventPublisher публикует события движка буферов во внешний брокер.
// Ошибка публикации никогда не должна ломать пакетный прогон.
type EventPublisher interface {
	PublishBreach(ctx context.Context, event *BreachEvent) error
	PublishReplenishment(ctx context.Context, order *ReplenishmentOrder) error
	PublishRecalculation(ctx context.Context, record *RecalculationHistoryRecord) error
}
