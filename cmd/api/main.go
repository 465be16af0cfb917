package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shift-coverage-service/internal/api/http"
	"github.com/spec-kit/shift-coverage-service/internal/api/http/handlers"
	"github.com/spec-kit/shift-coverage-service/internal/config"
	"github.com/spec-kit/shift-coverage-service/internal/events"
	"github.com/spec-kit/shift-coverage-service/internal/messaging"
	"github.com/spec-kit/shift-coverage-service/internal/observability"
	"github.com/spec-kit/shift-coverage-service/internal/persistence"
	"github.com/spec-kit/shift-coverage-service/internal/repository"
	"github.com/spec-kit/shift-coverage-service/internal/service"
	"github.com/spec-kit/shift-coverage-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	var requests repository.ShiftRequestRepository
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		requests = repository.NewRedisShiftRequestRepository(redis)
	default:
		requests = repository.NewMemoryShiftRequestRepository()
	}

	responders, err := cfg.Responder.Responders()
	if errors.Is(err, config.ErrNoResponders) {
		logger.Warn("no responders configured, sick reports will get a no-backup reply")
	} else if err != nil {
		logger.Fatal("failed to load responders", zap.Error(err))
	}

	var sender messaging.Sender
	if cfg.Twilio.Enabled() {
		twilioSender, err := messaging.NewTwilioSender(cfg.Twilio, logger)
		if err != nil {
			logger.Fatal("failed to init twilio sender", zap.Error(err))
		}
		sender = twilioSender
	} else {
		logger.Warn("twilio credentials missing, outbound messages are only logged")
		sender = messaging.NewLogSender(logger)
	}

	notifier := worker.NewNotificationWorker(sender, cfg.Coverage.NotifyDelay(), logger, metrics)
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, notifier, nil, logger, metrics, cfg.Coverage).RegisterHandlers()

	tracker := service.NewShiftRequestTracker(service.TrackerDependencies{
		Requests:   requests,
		Policy:     service.NewPoolPolicy(responders),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		WebhookPath: cfg.App.WebhookPath,
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, requests, metrics),
		Webhook:     handlers.NewWebhookHandler(tracker, notifier, metrics),
	})

	logger.Info("starting server",
		zap.String("addr", cfg.App.Addr()),
		zap.String("webhook_path", cfg.App.WebhookPath),
		zap.String("store", cfg.Store.Backend),
		zap.Int("responders", len(responders)))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := notifier.Stop(ctx); err != nil {
		logger.Warn("pending notifications not delivered", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
