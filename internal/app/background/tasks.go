package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase"
)

// BackgroundTasks запускает плановые прогоны движка по всем парам.
type BackgroundTasks struct {
	Engine    usecase.EngineUsecase
	Scheduler config.Scheduler
	Logger    *slog.Logger

	wg sync.WaitGroup
}

func NewBackgroundTasks(engine usecase.EngineUsecase, scheduler config.Scheduler, logger *slog.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		Engine:    engine,
		Scheduler: scheduler,
		Logger:    logger,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if !bt.Scheduler.Enabled {
		bt.Logger.Info("Scheduler disabled")
		return
	}

	bt.start(ctx, "recalculation", bt.Scheduler.RecalculationInterval, bt.runRecalculation)
	bt.start(ctx, "breach_detection", bt.Scheduler.BreachInterval, bt.runBreachDetection)
	bt.start(ctx, "replenishment", bt.Scheduler.ReplenishmentInterval, bt.runReplenishment)
	bt.start(ctx, "requalification", bt.Scheduler.RequalificationInterval, bt.runRequalification)
}

// Wait блокируется до остановки всех циклов.
func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) start(ctx context.Context, name string, interval time.Duration, run func(ctx context.Context)) {
	if interval <= 0 {
		bt.Logger.Info("Scheduled task disabled", "task", name)
		return
	}

	bt.wg.Add(1)
	go func() {
		defer bt.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		bt.Logger.Info("Scheduled task started", "task", name, "interval", interval.String())
		for {
			select {
			case <-ctx.Done():
				bt.Logger.Info("Scheduled task stopped", "task", name)
				return
			case <-ticker.C:
				run(ctx)
			}
		}
	}()
}

func (bt *BackgroundTasks) runRecalculation(ctx context.Context) {
	result, err := bt.Engine.RecalculateBuffers(ctx, domain.Scope{}, domain.TriggerScheduled)
	if err != nil {
		bt.Logger.Error("Scheduled recalculation failed", "error", err.Error())
		return
	}
	bt.Logger.Info("Scheduled recalculation finished",
		"evaluated", result.Evaluated,
		"recalculated", len(result.Records),
		"failed", len(result.Failures))
}

func (bt *BackgroundTasks) runBreachDetection(ctx context.Context) {
	summary, err := bt.Engine.DetectBreaches(ctx, domain.Scope{})
	if err != nil {
		bt.Logger.Error("Scheduled breach detection failed", "error", err.Error())
		return
	}
	bt.Logger.Info("Scheduled breach detection finished",
		"evaluated", summary.Evaluated,
		"detected", summary.BreachesDetected,
		"critical", summary.CriticalCount,
		"failed", len(summary.Failures))
}

func (bt *BackgroundTasks) runReplenishment(ctx context.Context) {
	summary, err := bt.Engine.GenerateReplenishment(ctx, domain.Scope{})
	if err != nil {
		bt.Logger.Error("Scheduled replenishment failed", "error", err.Error())
		return
	}
	bt.Logger.Info("Scheduled replenishment finished",
		"evaluated", summary.Evaluated,
		"created", summary.OrdersCreated,
		"failed", len(summary.Failures))
}

func (bt *BackgroundTasks) runRequalification(ctx context.Context) {
	summary, err := bt.Engine.RequalifyOrders(ctx, domain.Scope{})
	if err != nil {
		bt.Logger.Error("Scheduled requalification failed", "error", err.Error())
		return
	}
	bt.Logger.Info("Scheduled requalification finished",
		"evaluated", summary.Evaluated,
		"requalified", summary.Requalified,
		"failed", len(summary.Failures))
}
