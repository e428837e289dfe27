package qualifier

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now *time.Time) (*Service, *memory.Store, *metrics.EngineMetrics) {
	t.Helper()

	store := memory.NewStore()
	store.PutBuffer(&domain.BufferState{
		ID:                    "buf-1",
		ProductID:             "SKU-1",
		LocationID:            "DC-1",
		ADU:                   d("10"),
		DecoupledLeadTimeDays: 7,
		VariabilityFactor:     d("1"),
	})

	m := metrics.NewEngineMetrics(prometheus.NewRegistry())
	svc := NewService(store, store, store, Defaults{
		SpikeHorizonFactor:   d("1"),
		SpikeThresholdFactor: d("1.5"),
	}, m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.WithClock(func() time.Time { return *now })
	return svc, store, m
}

func TestService_QualifyBookingIsIdempotent(t *testing.T) {
	now := today
	svc, store, m := newTestService(t, &now)
	ctx := context.Background()

	order := &domain.SalesOrder{
		ID:               "SO-1",
		ProductID:        "SKU-1",
		LocationID:       "DC-1",
		Qty:              d("200"),
		ConfirmedDueDate: today.AddDate(0, 0, 2),
	}

	first, created, err := svc.QualifyBooking(ctx, order)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, first.Revision)
	assert.True(t, first.QualifiedQty.Equal(d("105")))

	second, created, err := svc.QualifyBooking(ctx, order)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, store.Qualifications("SO-1"), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QualificationsTotal.WithLabelValues("spike_capped", "true")))

	demand, err := store.QualifiedDemand(ctx, "SKU-1", "DC-1")
	require.NoError(t, err)
	assert.True(t, demand.Equal(d("105")))
}

func TestService_QualifyBookingRejectsInvalidOrder(t *testing.T) {
	now := today
	svc, _, _ := newTestService(t, &now)

	_, _, err := svc.QualifyBooking(context.Background(), &domain.SalesOrder{ID: "SO-1", ProductID: "SKU-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestService_QualifyBookingUnknownBuffer(t *testing.T) {
	now := today
	svc, _, _ := newTestService(t, &now)

	_, _, err := svc.QualifyBooking(context.Background(), &domain.SalesOrder{
		ID:               "SO-9",
		ProductID:        "SKU-404",
		LocationID:       "DC-1",
		Qty:              d("1"),
		ConfirmedDueDate: today,
	})
	assert.ErrorIs(t, err, domain.ErrBufferNotFound)
}

func TestService_RequalifyAppendsRevision(t *testing.T) {
	now := today
	svc, store, _ := newTestService(t, &now)
	ctx := context.Background()

	order := &domain.SalesOrder{
		ID:               "SO-2",
		ProductID:        "SKU-1",
		LocationID:       "DC-1",
		Qty:              d("60"),
		ConfirmedDueDate: today.AddDate(0, 0, 20),
	}
	q, _, err := svc.QualifyBooking(ctx, order)
	require.NoError(t, err)
	require.Equal(t, domain.ReasonOutsideHorizon, q.QualificationReason)

	summary, err := svc.Requalify(ctx, domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Evaluated)
	assert.Equal(t, 0, summary.Requalified)
	assert.Equal(t, 1, summary.StillOutside)

	now = today.AddDate(0, 0, 14)
	summary, err = svc.Requalify(ctx, domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Requalified)
	assert.Empty(t, summary.Failures)

	revisions := store.Qualifications("SO-2")
	require.Len(t, revisions, 2)
	assert.Equal(t, domain.ReasonOutsideHorizon, revisions[0].QualificationReason)
	assert.Equal(t, 2, revisions[1].Revision)
	assert.Equal(t, domain.ReasonWithinThreshold, revisions[1].QualificationReason)

	// Заказ больше не ждет переоценки.
	summary, err = svc.Requalify(ctx, domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Evaluated)
}

func TestService_ProfileOverridesDefaults(t *testing.T) {
	now := today
	svc, store, _ := newTestService(t, &now)
	ctx := context.Background()

	profileID := "P-TIGHT"
	store.PutProfile(&domain.BufferProfile{ID: profileID, SpikeHorizonFactor: d("2"), SpikeThresholdFactor: d("0.5")})
	b, err := store.GetBuffer(ctx, "SKU-1", "DC-1")
	require.NoError(t, err)
	b.ProfileID = &profileID
	store.PutBuffer(b)

	q, _, err := svc.QualifyBooking(ctx, &domain.SalesOrder{
		ID:               "SO-3",
		ProductID:        "SKU-1",
		LocationID:       "DC-1",
		Qty:              d("50"),
		ConfirmedDueDate: today.AddDate(0, 0, 10),
	})
	require.NoError(t, err)
	assert.True(t, q.SpikeHorizonDays.Equal(d("14")))
	assert.True(t, q.SpikeThresholdQty.Equal(d("35")))
	assert.True(t, q.QualifiedQty.Equal(d("35")))
	assert.True(t, q.IsSpike)
}
