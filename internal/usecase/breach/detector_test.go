package breach

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/netflow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu       sync.Mutex
	breaches []*domain.BreachEvent
	err      error
}

func (p *recordingPublisher) PublishBreach(ctx context.Context, e *domain.BreachEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.breaches = append(p.breaches, e)
	return p.err
}

func (p *recordingPublisher) PublishReplenishment(ctx context.Context, o *domain.ReplenishmentOrder) error {
	return nil
}

func (p *recordingPublisher) PublishRecalculation(ctx context.Context, r *domain.RecalculationHistoryRecord) error {
	return nil
}

// failingSnapshotter ломает чтение для одного товара.
type failingSnapshotter struct {
	next      Snapshotter
	productID string
}

func (f failingSnapshotter) Snapshot(ctx context.Context, b *domain.BufferState) (domain.NetFlowSnapshot, error) {
	if b.ProductID == f.productID {
		return domain.NetFlowSnapshot{}, errors.New("inventory unavailable")
	}
	return f.next.Snapshot(ctx, b)
}

func seedBuffer(store *memory.Store, productID string, onHand int64) {
	store.PutBuffer(&domain.BufferState{
		ID:                    productID + "-buf",
		ProductID:             productID,
		LocationID:            "DC-1",
		ADU:                   decimal.NewFromInt(20),
		DecoupledLeadTimeDays: 10,
		Zones:                 domain.Zones{Red: 24, Yellow: 200, Green: 140},
	})
	store.AddOnHand(domain.OnHandSnapshot{
		ProductID:  productID,
		LocationID: "DC-1",
		Qty:        decimal.NewFromInt(onHand),
		CapturedAt: now.Add(-time.Hour),
	})
}

func newTestDetector(store *memory.Store, snaps Snapshotter, pub domain.EventPublisher) (*Detector, *metrics.EngineMetrics) {
	m := metrics.NewEngineMetrics(prometheus.NewRegistry())
	d := NewDetector(store, snaps, store, pub, m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	d.WithClock(func() time.Time { return now })
	return d, m
}

func TestDetectBreaches_ClassifiesEveryStatus(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-RED", 10)
	seedBuffer(store, "SKU-YELLOW", 150)
	seedBuffer(store, "SKU-GREEN", 300)
	seedBuffer(store, "SKU-BLUE", 500)

	pub := &recordingPublisher{}
	d, m := newTestDetector(store, netflow.NewReader(store, store), pub)

	summary, err := d.DetectBreaches(context.Background(), domain.Scope{})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Evaluated)
	assert.Equal(t, 3, summary.BreachesDetected)
	assert.Equal(t, 1, summary.CriticalCount)
	assert.Equal(t, 1, summary.HighCount)
	assert.Equal(t, 1, summary.LowCount)
	assert.Empty(t, summary.Failures)
	assert.Len(t, pub.breaches, 3)

	byProduct := map[string]domain.BreachEvent{}
	for _, e := range store.AllBreaches() {
		byProduct[e.ProductID] = e
	}
	assert.Equal(t, domain.BreachBelowTOR, byProduct["SKU-RED"].BreachType)
	assert.Equal(t, int64(24), byProduct["SKU-RED"].Threshold)
	assert.Equal(t, domain.BreachBelowTOY, byProduct["SKU-YELLOW"].BreachType)
	assert.Equal(t, int64(224), byProduct["SKU-YELLOW"].Threshold)
	assert.Equal(t, domain.BreachAboveTOG, byProduct["SKU-BLUE"].BreachType)
	assert.Equal(t, domain.SeverityLow, byProduct["SKU-BLUE"].Severity)
	assert.NotContains(t, byProduct, "SKU-GREEN")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreachesDetectedTotal.WithLabelValues("BELOW_TOR", "HIGH")))
}

func TestDetectBreaches_SecondRunCreatesNothing(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-RED", 10)
	seedBuffer(store, "SKU-YELLOW", 150)
	d, _ := newTestDetector(store, netflow.NewReader(store, store), nil)
	ctx := context.Background()

	first, err := d.DetectBreaches(ctx, domain.Scope{})
	require.NoError(t, err)
	require.Equal(t, 2, first.BreachesDetected)

	second, err := d.DetectBreaches(ctx, domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.BreachesDetected)
	assert.Equal(t, 2, second.Suppressed)
	assert.Len(t, store.AllBreaches(), 2)
}

func TestDetectBreaches_EscalationCreatesNewEvent(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-1", 150)
	d, _ := newTestDetector(store, netflow.NewReader(store, store), nil)
	ctx := context.Background()

	_, err := d.DetectBreaches(ctx, domain.Scope{})
	require.NoError(t, err)

	store.AddOnHand(domain.OnHandSnapshot{
		ProductID:  "SKU-1",
		LocationID: "DC-1",
		Qty:        decimal.NewFromInt(5),
		CapturedAt: now,
	})
	summary, err := d.DetectBreaches(ctx, domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BreachesDetected)
	assert.Equal(t, 1, summary.CriticalCount)

	open, err := store.OpenBreaches(ctx, "SKU-1", "DC-1")
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestDetectBreaches_AcknowledgedBreachIsRaisedAgain(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-1", 10)
	d, _ := newTestDetector(store, netflow.NewReader(store, store), nil)
	ctx := context.Background()

	_, err := d.DetectBreaches(ctx, domain.Scope{})
	require.NoError(t, err)
	events := store.AllBreaches()
	require.Len(t, events, 1)
	require.NoError(t, store.AcknowledgeBreach(ctx, events[0].ID, now))

	summary, err := d.DetectBreaches(ctx, domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BreachesDetected)
}

func TestDetectBreaches_IsolatesItemFailures(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-BROKEN", 10)
	seedBuffer(store, "SKU-RED", 10)
	snaps := failingSnapshotter{next: netflow.NewReader(store, store), productID: "SKU-BROKEN"}
	d, m := newTestDetector(store, snaps, nil)

	summary, err := d.DetectBreaches(context.Background(), domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Evaluated)
	assert.Equal(t, 1, summary.BreachesDetected)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "SKU-BROKEN", summary.Failures[0].ProductID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemFailuresTotal.WithLabelValues(metrics.OpDetectBreaches)))
}

func TestDetectBreaches_PublishFailureDoesNotFailRun(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-RED", 10)
	d, _ := newTestDetector(store, netflow.NewReader(store, store), &recordingPublisher{err: errors.New("broker down")})

	summary, err := d.DetectBreaches(context.Background(), domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BreachesDetected)
	assert.Empty(t, summary.Failures)
}

func TestDetectBreaches_ScopeAndEmptyBuffers(t *testing.T) {
	store := memory.NewStore()
	seedBuffer(store, "SKU-RED", 10)
	store.PutBuffer(&domain.BufferState{ProductID: "SKU-NEW", LocationID: "DC-1"})
	d, _ := newTestDetector(store, netflow.NewReader(store, store), nil)
	ctx := context.Background()

	summary, err := d.DetectBreaches(ctx, domain.Scope{ProductID: "SKU-NEW"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Evaluated)
	assert.Equal(t, 0, summary.BreachesDetected)

	summary, err = d.DetectBreaches(ctx, domain.Scope{LocationID: "DC-2"})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Evaluated)
}
