package notifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookSink struct {
	mu     sync.Mutex
	alerts []BreachAlert
	status int
}

func (s *webhookSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var alert BreachAlert
	if err := json.NewDecoder(r.Body).Decode(&alert); err == nil {
		s.alerts = append(s.alerts, alert)
	}
	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *webhookSink) received() []BreachAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]BreachAlert(nil), s.alerts...)
}

type countingPublisher struct {
	breaches int
	orders   int
}

func (p *countingPublisher) PublishBreach(ctx context.Context, e *domain.BreachEvent) error {
	p.breaches++
	return nil
}

func (p *countingPublisher) PublishReplenishment(ctx context.Context, o *domain.ReplenishmentOrder) error {
	p.orders++
	return nil
}

func (p *countingPublisher) PublishRecalculation(ctx context.Context, r *domain.RecalculationHistoryRecord) error {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func breachEvent(severity domain.BreachSeverity) *domain.BreachEvent {
	return &domain.BreachEvent{
		ID:         "b-1",
		ProductID:  "SKU-1",
		LocationID: "DC-1",
		BreachType: domain.BreachBelowTOR,
		Severity:   severity,
		NetFlow:    decimal.NewFromInt(10),
		Threshold:  24,
		DetectedAt: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
	}
}

func TestBreachWebhook_SendsOnlyAboveMinSeverity(t *testing.T) {
	sink := &webhookSink{}
	srv := httptest.NewServer(sink)
	defer srv.Close()

	next := &countingPublisher{}
	hook := NewBreachWebhook(config.Notifier{WebhookURL: srv.URL, MinSeverity: "HIGH"}, next, discardLogger())
	ctx := context.Background()

	require.NoError(t, hook.PublishBreach(ctx, breachEvent(domain.SeverityHigh)))
	require.NoError(t, hook.PublishBreach(ctx, breachEvent(domain.SeverityLow)))
	require.NoError(t, hook.PublishReplenishment(ctx, &domain.ReplenishmentOrder{}))

	alerts := sink.received()
	require.Len(t, alerts, 1)
	assert.Equal(t, "HIGH", alerts[0].Severity)
	assert.Equal(t, int64(24), alerts[0].Threshold)
	assert.Equal(t, 2, next.breaches)
	assert.Equal(t, 1, next.orders)
}

func TestBreachWebhook_NilNext(t *testing.T) {
	sink := &webhookSink{}
	srv := httptest.NewServer(sink)
	defer srv.Close()

	hook := NewBreachWebhook(config.Notifier{WebhookURL: srv.URL, MinSeverity: "MEDIUM"}, nil, discardLogger())

	require.NoError(t, hook.PublishBreach(context.Background(), breachEvent(domain.SeverityMedium)))
	require.NoError(t, hook.PublishRecalculation(context.Background(), &domain.RecalculationHistoryRecord{}))
	assert.Len(t, sink.received(), 1)
}

func TestBreachWebhook_BreakerOpensAfterFailures(t *testing.T) {
	sink := &webhookSink{status: http.StatusInternalServerError}
	srv := httptest.NewServer(sink)
	defer srv.Close()

	hook := NewBreachWebhook(config.Notifier{WebhookURL: srv.URL}, nil, discardLogger())
	ctx := context.Background()

	for i := 0; i < consecutiveFailures; i++ {
		assert.Error(t, hook.PublishBreach(ctx, breachEvent(domain.SeverityHigh)))
	}
	assert.Equal(t, gobreaker.StateOpen, hook.breaker.State())

	err := hook.PublishBreach(ctx, breachEvent(domain.SeverityHigh))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, sink.received(), consecutiveFailures)
}
