package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	defaultRetryMin = 500 * time.Millisecond
	defaultRetryMax = 30 * time.Second
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type DefaultKafkaSubscriber struct {
	brokers  []string
	dialer   *kafka.Dialer
	logger   *slog.Logger
	retryMin time.Duration
	retryMax time.Duration
}

func NewDefaultKafkaSubscriber(cfg config.KafkaService, logger *slog.Logger) (*DefaultKafkaSubscriber, error) {
	dialer, err := NewDialer(cfg)
	if err != nil {
		return nil, err
	}
	return &DefaultKafkaSubscriber{
		brokers:  []string{cfg.Broker()},
		dialer:   dialer,
		logger:   logger,
		retryMin: defaultRetryMin,
		retryMax: defaultRetryMax,
	}, nil
}

// Subscribe читает topic до отмены ctx. Канал закрывается при выходе.
func (k *DefaultKafkaSubscriber) Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: groupID,
		Dialer:  k.dialer,
	})
	out := make(chan domain.Message)
	go k.consume(ctx, reader, topic, out)
	return out, nil
}

// consume повторяет чтение после ошибок с экспоненциальной паузой
// от retryMin до retryMax. Выход только по ctx.
func (k *DefaultKafkaSubscriber) consume(ctx context.Context, reader messageReader, topic string, out chan<- domain.Message) {
	defer close(out)
	defer reader.Close()

	delay := k.retryMin
	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			k.logger.Error("Error reading message", "topic", topic, "retry_in", delay, "error", err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			delay = min(delay*2, k.retryMax)
			continue
		}
		delay = k.retryMin

		select {
		case out <- domain.Message{Key: m.Key, Value: m.Value}:
		case <-ctx.Done():
			return
		}
	}
}
