package background

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/breach"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/qualifier"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/recalculation"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/replenishment"
	"github.com/stretchr/testify/assert"
)

// countingEngine переопределяет только плановые операции.
type countingEngine struct {
	usecase.EngineUsecase

	mu       sync.Mutex
	triggers []domain.TriggeredBy
	detects  int
	failAll  bool
}

func (e *countingEngine) RecalculateBuffers(ctx context.Context, scope domain.Scope, triggeredBy domain.TriggeredBy) (*recalculation.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.triggers = append(e.triggers, triggeredBy)
	if e.failAll {
		return nil, errors.New("storage down")
	}
	return &recalculation.Result{}, nil
}

func (e *countingEngine) DetectBreaches(ctx context.Context, scope domain.Scope) (*breach.Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detects++
	if e.failAll {
		return nil, errors.New("storage down")
	}
	return &breach.Summary{}, nil
}

func (e *countingEngine) GenerateReplenishment(ctx context.Context, scope domain.Scope) (*replenishment.Summary, error) {
	return &replenishment.Summary{}, nil
}

func (e *countingEngine) RequalifyOrders(ctx context.Context, scope domain.Scope) (*qualifier.RequalifySummary, error) {
	return &qualifier.RequalifySummary{}, nil
}

func (e *countingEngine) snapshot() ([]domain.TriggeredBy, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.TriggeredBy(nil), e.triggers...), e.detects
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartAll_RunsScheduledTrigger(t *testing.T) {
	engine := &countingEngine{}
	tasks := NewBackgroundTasks(engine, config.Scheduler{
		Enabled:                 true,
		RecalculationInterval:   10 * time.Millisecond,
		BreachInterval:          10 * time.Millisecond,
		ReplenishmentInterval:   10 * time.Millisecond,
		RequalificationInterval: 10 * time.Millisecond,
	}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	tasks.StartAll(ctx)

	assert.Eventually(t, func() bool {
		triggers, detects := engine.snapshot()
		return len(triggers) > 0 && detects > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	tasks.Wait()

	triggers, _ := engine.snapshot()
	for _, tr := range triggers {
		assert.Equal(t, domain.TriggerScheduled, tr)
	}
}

func TestStartAll_ErrorsDoNotStopLoop(t *testing.T) {
	engine := &countingEngine{failAll: true}
	tasks := NewBackgroundTasks(engine, config.Scheduler{
		Enabled:        true,
		BreachInterval: 5 * time.Millisecond,
	}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	tasks.StartAll(ctx)

	assert.Eventually(t, func() bool {
		_, detects := engine.snapshot()
		return detects >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	tasks.Wait()

	triggers, _ := engine.snapshot()
	assert.Empty(t, triggers)
}

func TestStartAll_Disabled(t *testing.T) {
	engine := &countingEngine{}
	tasks := NewBackgroundTasks(engine, config.Scheduler{
		Enabled:        false,
		BreachInterval: time.Millisecond,
	}, discardLogger())

	tasks.StartAll(context.Background())
	tasks.Wait()
	time.Sleep(10 * time.Millisecond)

	_, detects := engine.snapshot()
	assert.Zero(t, detects)
}
