// Package server boots every subsystem and runs the HTTP and gRPC listeners
// until interrupted.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/tillpoint/app/jobs"
	"github.com/shashiranjanraj/tillpoint/app/listeners"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/config"
	"github.com/shashiranjanraj/tillpoint/internal/kernel"
	"github.com/shashiranjanraj/tillpoint/pkg/cache"
	"github.com/shashiranjanraj/tillpoint/pkg/database"
	grpcserver "github.com/shashiranjanraj/tillpoint/pkg/grpc"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shashiranjanraj/tillpoint/pkg/notification"
	"github.com/shashiranjanraj/tillpoint/pkg/queue"
	"github.com/shashiranjanraj/tillpoint/pkg/schedule"
	"github.com/shashiranjanraj/tillpoint/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start boots the application and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// Cache is optional; everything falls back to the database.
		logger.Warn("server: redis unavailable, running without cache", "error", err)
	}
	storage.Connect()

	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK_URL", ""))

	if uri := config.MongoLogURI(); uri != "" {
		if err := logger.EnableMongoSink(uri, config.MongoLogDatabase(), config.MongoLogCollection()); err != nil {
			logger.Warn("server: mongo log sink unavailable", "error", err)
		}
	}

	queue.SetDriver(queue.NewMemoryDriver())
	if cache.Client() != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.Client()))
	}
	queue.UseDB(database.DB)

	listeners.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 4)
	registerScheduledTasks()
	schedule.Start(ctx)

	grpcSrv, grpcLis, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return fmt.Errorf("server: grpc start: %w", err)
	}
	logger.Info("server: grpc health listening", "addr", grpcLis.Addr().String())

	httpKernel := kernel.NewHTTPKernel(database.DB)
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcserver.Stop(grpcSrv)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: http shutdown: %w", err)
	}
	return nil
}

// registerScheduledTasks sets up the recurring background work: a nightly
// ledger reconcile (report only, no repair) and an hourly low-stock sweep in
// case an alert was dropped while the queue was down.
func registerScheduledTasks() {
	stock := services.NewStockService(database.DB)
	items := repositories.NewItemRepository(database.DB)

	schedule.Daily().Name("ledger-reconcile").WithoutOverlapping().Run(func() {
		drifts, err := stock.Reconcile(context.Background(), false)
		if err != nil {
			logger.Error("schedule: ledger reconcile failed", "error", err)
			return
		}
		if len(drifts) > 0 {
			logger.Warn("schedule: ledger drift detected", "items", len(drifts))
		}
	})

	schedule.Hourly().Name("low-stock-sweep").WithoutOverlapping().Run(func() {
		low, err := items.LowStock(context.Background())
		if err != nil {
			logger.Error("schedule: low stock sweep failed", "error", err)
			return
		}
		for _, item := range low {
			job := &jobs.LowStockAlert{
				ItemID:   item.ID,
				SKU:      item.SKU,
				Name:     item.Name,
				Quantity: item.Quantity,
				MinStock: item.MinStockLevel,
			}
			if err := queue.Dispatch(job); err != nil {
				logger.Error("schedule: dispatch low stock alert", "sku", item.SKU, "error", err)
			}
		}
	})
}
