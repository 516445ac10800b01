package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "hydration/internal/application/service"

	// Domain Layer
	"hydration/internal/domain/entity"
	"hydration/internal/domain/repository"

	// Infrastructure Layer
	"hydration/internal/infrastructure/database/sqlite"
	"hydration/internal/infrastructure/delivery"
	lineClient "hydration/internal/infrastructure/line"
	natsInfra "hydration/internal/infrastructure/nats"
	"hydration/internal/infrastructure/notification"
	"hydration/internal/infrastructure/scheduler"

	// Interfaces Layer
	"hydration/internal/interfaces/api/handler"
	"hydration/internal/interfaces/api/router"

	// Packages
	"hydration/internal/pkg/config"
	appLogger "hydration/internal/pkg/logger"
	"hydration/internal/pkg/metrics"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

const resyncSpec = "0 0 * * * *"

func gracefulShutdown(apiServer *http.Server, cronScheduler *scheduler.Scheduler, natsConn *natsInfra.Conn, log appLogger.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("Shutting down gracefully, press Ctrl+C again to force")

	// HTTP first, then the scheduler its handlers write to.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}

	log.Info("Stopping scheduler...")
	cronScheduler.Stop()
	log.Info("Scheduler stopped.")

	if natsConn != nil {
		if err := natsConn.Close(); err != nil {
			log.Error("Error closing NATS connection", err)
		}
	}

	log.Info("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Error("Error closing database", err)
	} else {
		log.Info("Database connection closed.")
	}

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	cfg, err := config.Load()
	if err != nil {
		appLog.Error("Invalid configuration", err)
		os.Exit(1)
	}
	ctx := context.Background()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	// --- Infrastructure ---
	// The scheduled-notification registry always lives in SQLite; settings may live in NATS KV instead.
	db := sqlite.NewDB(cfg.DBPath, appLog)
	scheduledRepo := sqlite.NewScheduledReminderRepository(db)

	var natsConn *natsInfra.Conn
	if cfg.NeedsNATS() {
		natsConn, err = natsInfra.Connect(cfg.NATSURL, appLog)
		if err != nil {
			appLog.Error("NATS is required by STORE_DRIVER or DELIVERY but is unreachable", err)
			os.Exit(1)
		}
	}

	store, err := newStore(ctx, cfg, db, natsConn)
	if err != nil {
		appLog.Error(fmt.Sprintf("Failed to initialize %s settings store", cfg.StoreDriver), err)
		os.Exit(1)
	}

	var line *lineClient.Client
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.ChannelSecret, cfg.ChannelAccessToken, cfg.LineTargetUserID, appLog)
		if err != nil {
			appLog.Error("Failed to initialize LINE client", err)
			os.Exit(1)
		}
	}

	deliverer, err := newDeliverer(cfg, line, natsConn, appLog)
	if err != nil {
		appLog.Error("Failed to initialize delivery", err)
		os.Exit(1)
	}
	appLog.Info(fmt.Sprintf("Settings store: %s, delivery: %s", cfg.StoreDriver, cfg.Delivery))

	cronScheduler := scheduler.NewScheduler(appLog)
	backend := notification.NewLocalBackend(scheduledRepo, cronScheduler, deliverer, recorder, appLog)
	if err := backend.Restore(ctx); err != nil {
		// Log the error but continue; Sync below reschedules from the preference.
		appLog.Error("Failed to restore scheduled notifications", err)
	}

	// --- Application Services ---
	pref, err := appService.LoadPreference(ctx, store, appLog)
	if err != nil {
		appLog.Error(fmt.Sprintf("Failed to load hydration preference, continuing with %s", entity.DefaultPreference()), err)
		pref = entity.DefaultPreference()
	}
	reminderSvc := appService.NewReminderService(store, backend, pref, recorder, appLog)
	if !reminderSvc.Sync(ctx) {
		appLog.Warn("Initial hydration schedule sync did not fully succeed")
	}
	// Hourly self-heal of the reminder schedule.
	if _, err := cronScheduler.AddJob(resyncSpec, func() { reminderSvc.Sync(context.Background()) }); err != nil {
		appLog.Error("Failed to register hourly schedule sync", err)
	}

	// --- API Handlers ---
	settingsHandler := handler.NewSettingsHandler(reminderSvc, appLog)
	var lineHandler *handler.LineHandler
	if line != nil {
		lineHandler = handler.NewLineHandler(line, reminderSvc, cfg.LineOwnerUserID, appLog)
	}
	appLog.Info("API handlers initialized.")

	// --- Router ---
	echoRouter := router.NewRouter(&router.Config{
		SettingsHandler: settingsHandler,
		LineHandler:     lineHandler,
		MetricsHandler:  recorder.Handler(),
		Logger:          appLog,
	})

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, cronScheduler, natsConn, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}

func newStore(ctx context.Context, cfg *config.Config, db *gorm.DB, natsConn *natsInfra.Conn) (repository.KeyValueStore, error) {
	if cfg.StoreDriver != config.StoreNATS {
		return sqlite.NewKeyValueStore(db), nil
	}
	kv, err := natsConn.KeyValue(ctx, cfg.NATSKVBucket)
	if err != nil {
		return nil, err
	}
	return natsInfra.NewKeyValueStore(kv), nil
}

func newDeliverer(cfg *config.Config, line *lineClient.Client, natsConn *natsInfra.Conn, log appLogger.Logger) (repository.Deliverer, error) {
	switch cfg.Delivery {
	case config.DeliveryLINE:
		if line == nil {
			return nil, fmt.Errorf("DELIVERY=line requires CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN")
		}
		return line, nil
	case config.DeliveryNATS:
		return natsInfra.NewPublisher(natsConn, cfg.NATSSubject), nil
	default:
		return delivery.NewLogDeliverer(log), nil
	}
}
