package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	_ "github.com/joho/godotenv/autoload"

	"ga4-report-service/internal/config"
	"ga4-report-service/internal/controller"
	"ga4-report-service/internal/db"
	"ga4-report-service/internal/ga4"
	httpserver "ga4-report-service/internal/http"
	"ga4-report-service/internal/repository"
	"ga4-report-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := newGA4Client(ctx, cfg)

	var (
		repo   repository.SnapshotRepository
		worker service.SnapshotWorker
	)
	if cfg.ArchiveEnabled() {
		conn, err := db.NewConnection(ctx, cfg)
		if err != nil {
			log.Fatalf("connect db: %v", err)
		}
		defer conn.Close()

		if err := db.RunMigrations(ctx, conn); err != nil {
			log.Fatalf("migrate: %v", err)
		}

		repo = repository.NewSnapshotRepository(conn)
		worker = service.NewSnapshotWorker(repo, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)
	}

	reportService := service.NewReportService(client, cfg.PropertyID, cfg.GA4RequestTimeout, repo, worker)
	reportController := controller.NewReportController(reportService)

	server := httpserver.NewServer(cfg, reportController)

	// Listen returns as soon as the listener closes; shutdownDone is closed
	// once in-flight requests have finished.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("🚀 GA4 backend running on port %s", cfg.HTTPPort)
	if err := server.Listen(cfg.HTTPPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	<-shutdownDone

	if worker != nil {
		worker.Shutdown()
	}
}

// newGA4Client returns nil when credentials are missing or invalid; the
// report routes then answer with "GA4 client not initialized".
func newGA4Client(ctx context.Context, cfg *config.Config) ga4.Client {
	client, err := ga4.Connect(ctx, cfg.ServiceAccountKey)
	if err != nil {
		log.Errorf("❌ Unable to parse GA4 key: %v", err)
		return nil
	}
	log.Info("✅ GA4 credentials loaded")
	return client
}
