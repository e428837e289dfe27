package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Mechanism возвращает nil, если имя пользователя не задано.
func Mechanism(cfg config.KafkaService) (sasl.Mechanism, error) {
	if cfg.Username == "" {
		return nil, nil
	}

	switch strings.ToUpper(cfg.Mechanism) {
	case "", "PLAIN":
		return plain.Mechanism{Username: cfg.Username, Password: cfg.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported sasl mechanism %q", cfg.Mechanism)
	}
}

func tlsConfig(cfg config.KafkaService) *tls.Config {
	if !cfg.TLSEnabled {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// NewTransport - транспорт для kafka.Writer.
func NewTransport(cfg config.KafkaService) (*kafka.Transport, error) {
	mechanism, err := Mechanism(cfg)
	if err != nil {
		return nil, err
	}
	return &kafka.Transport{
		SASL:        mechanism,
		TLS:         tlsConfig(cfg),
		DialTimeout: 10 * time.Second,
	}, nil
}

// NewDialer - dialer для kafka.Reader.
func NewDialer(cfg config.KafkaService) (*kafka.Dialer, error) {
	mechanism, err := Mechanism(cfg)
	if err != nil {
		return nil, err
	}
	return &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: mechanism,
		TLS:           tlsConfig(cfg),
	}, nil
}
