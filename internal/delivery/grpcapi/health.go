package grpcapi

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// EngineServiceName - имя сервиса в протоколе grpc.health.v1.
const EngineServiceName = "buffer.v1.BufferEngine"

type PingFunc func(ctx context.Context) error

// HealthChecker переводит статус health-сервера вслед за доступностью хранилища.
type HealthChecker struct {
	server *health.Server
	ping   PingFunc
	logger *slog.Logger
}

func NewHealthChecker(ping PingFunc, logger *slog.Logger) *HealthChecker {
	return &HealthChecker{
		server: health.NewServer(),
		ping:   ping,
		logger: logger,
	}
}

func (h *HealthChecker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
}

func (h *HealthChecker) Server() healthpb.HealthServer {
	return h.server
}

// Probe выполняет одну проверку и обновляет статус.
func (h *HealthChecker) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			h.logger.Warn("Storage ping failed", "error", err.Error())
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(EngineServiceName, status)
	return status
}

// Run проверяет хранилище с интервалом до отмены ctx.
func (h *HealthChecker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval/2)
			h.Probe(probeCtx)
			cancel()
		}
	}
}

func (h *HealthChecker) Shutdown() {
	h.server.Shutdown()
}
