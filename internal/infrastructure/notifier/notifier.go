package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/sony/gobreaker"
)

const (
	breakerTimeout      = 30 * time.Second
	consecutiveFailures = 3
)

var severityRank = map[domain.BreachSeverity]int{
	domain.SeverityLow:    1,
	domain.SeverityMedium: 2,
	domain.SeverityHigh:   3,
}

// BreachWebhook отправляет алерт о нарушении на webhook и передает все
// события дальше в next (может быть nil).
type BreachWebhook struct {
	url     string
	minRank int
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	next    domain.EventPublisher
	logger  *slog.Logger
}

var _ domain.EventPublisher = (*BreachWebhook)(nil)

func NewBreachWebhook(cfg config.Notifier, next domain.EventPublisher, logger *slog.Logger) *BreachWebhook {
	minRank, ok := severityRank[domain.BreachSeverity(cfg.MinSeverity)]
	if !ok {
		minRank = severityRank[domain.SeverityHigh]
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "breach-webhook",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &BreachWebhook{
		url:     cfg.WebhookURL,
		minRank: minRank,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		next:    next,
		logger:  logger,
	}
}

func (w *BreachWebhook) PublishBreach(ctx context.Context, e *domain.BreachEvent) error {
	var errs []error
	if w.next != nil {
		errs = append(errs, w.next.PublishBreach(ctx, e))
	}
	if severityRank[e.Severity] >= w.minRank {
		errs = append(errs, w.send(ctx, BreachAlert{
			BreachID:   e.ID,
			ProductID:  e.ProductID,
			LocationID: e.LocationID,
			BreachType: string(e.BreachType),
			Severity:   string(e.Severity),
			CurrentOH:  e.CurrentOH,
			NetFlow:    e.NetFlow,
			Threshold:  e.Threshold,
			DetectedAt: e.DetectedAt,
		}))
	}
	return errors.Join(errs...)
}

func (w *BreachWebhook) PublishReplenishment(ctx context.Context, o *domain.ReplenishmentOrder) error {
	if w.next == nil {
		return nil
	}
	return w.next.PublishReplenishment(ctx, o)
}

func (w *BreachWebhook) PublishRecalculation(ctx context.Context, r *domain.RecalculationHistoryRecord) error {
	if w.next == nil {
		return nil
	}
	return w.next.PublishRecalculation(ctx, r)
}

func (w *BreachWebhook) send(ctx context.Context, alert BreachAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal breach alert: %w", err)
	}

	_, err = w.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("breach webhook: %w", err)
	}

	w.logger.Debug("Breach alert sent", "breach_id", alert.BreachID, "severity", alert.Severity)
	return nil
}
