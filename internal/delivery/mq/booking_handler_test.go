package mq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	ch  chan domain.Message
	err error
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error) {
	return f.ch, f.err
}

type fakeQualifier struct {
	mu     sync.Mutex
	orders []*domain.SalesOrder
	err    error
}

func (f *fakeQualifier) QualifyOrder(ctx context.Context, order *domain.SalesOrder) (*domain.OrderQualification, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	if f.err != nil {
		return nil, false, f.err
	}
	return &domain.OrderQualification{OrderID: order.ID, Revision: 1}, true, nil
}

func (f *fakeQualifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBookingHandler_RunQualifiesUntilChannelCloses(t *testing.T) {
	sub := &fakeSubscriber{ch: make(chan domain.Message, 3)}
	q := &fakeQualifier{}
	h := NewBookingHandler(sub, q, "orders.booked", "buffer-service", discard())

	sub.ch <- domain.Message{Value: []byte(`{"order_id":"SO-1","product_id":"SKU-1","location_id":"DC-1","qty":"5","confirmed_due_date":"2026-03-12"}`)}
	sub.ch <- domain.Message{Value: []byte(`garbage`)}
	sub.ch <- domain.Message{Value: []byte(`{"order_id":"SO-2","product_id":"SKU-1","location_id":"DC-1","qty":"7","confirmed_due_date":"2026-03-15T00:00:00Z"}`)}
	close(sub.ch)

	require.NoError(t, h.Run(context.Background()))
	require.Equal(t, 2, q.count())
	assert.Equal(t, "SO-1", q.orders[0].ID)
	assert.Equal(t, "SO-2", q.orders[1].ID)
}

func TestBookingHandler_RunStopsOnCancel(t *testing.T) {
	sub := &fakeSubscriber{ch: make(chan domain.Message)}
	h := NewBookingHandler(sub, &fakeQualifier{}, "orders.booked", "g", discard())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler did not stop after cancel")
	}
}

func TestBookingHandler_QualifierErrorIsSkipped(t *testing.T) {
	q := &fakeQualifier{err: errors.New("db down")}
	h := NewBookingHandler(&fakeSubscriber{}, q, "t", "g", discard())

	h.Handle(context.Background(), domain.Message{Value: []byte(`{"order_id":"SO-1","product_id":"SKU-1","location_id":"DC-1","qty":"5","confirmed_due_date":"2026-03-12"}`)})
	assert.Equal(t, 1, q.count())
}

func TestBookingHandler_SubscribeError(t *testing.T) {
	h := NewBookingHandler(&fakeSubscriber{err: errors.New("no broker")}, &fakeQualifier{}, "t", "g", discard())
	assert.Error(t, h.Run(context.Background()))
}
