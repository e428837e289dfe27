package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/app/background"
	"github.com/LavaJover/shvark-buffer-service/internal/app/setup"
	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-buffer-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-buffer-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-buffer-service/internal/delivery/mq"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthProbeInterval = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	// Init logger
	appLogger, closer, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer closer.Close()
	slog.SetDefault(appLogger)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("service stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.BufferConfig, appLogger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("dependencies: %w", err)
	}
	defer deps.Close()

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		return fmt.Errorf("usecases: %w", err)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	// HTTP
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logging(appLogger), middleware.Metrics(deps.HTTPMetrics))
	handlers.RegisterRoutes(router, handlers.NewEngineHandler(useCases.Engine, appLogger), deps.Registry)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		appLogger.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// gRPC health
	grpcServer := grpc.NewServer()
	healthChecker := grpcapi.NewHealthChecker(deps.Ping, appLogger)
	healthChecker.Register(grpcServer)

	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		appLogger.Info("gRPC server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go healthChecker.Run(ctx, healthProbeInterval)

	// Order bookings
	if deps.Subscriber != nil {
		bookings := mq.NewBookingHandler(
			deps.Subscriber,
			useCases.Engine,
			cfg.KafkaService.OrderBookingTopic,
			cfg.KafkaService.GroupID,
			appLogger.With("component", "booking_consumer"),
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bookings.Run(ctx); err != nil {
				appLogger.Error("order booking consumer failed", "error", err.Error())
			}
		}()
	}

	// Scheduled runs
	tasks := background.NewBackgroundTasks(useCases.Engine, cfg.Scheduler, appLogger.With("component", "scheduler"))
	tasks.StartAll(ctx)

	var runErr error
	select {
	case <-ctx.Done():
		appLogger.Info("shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	healthChecker.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown failed", "error", err.Error())
	}
	grpcServer.GracefulStop()
	tasks.Wait()
	wg.Wait()

	appLogger.Info("service stopped")
	return runErr
}
