package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github-slack-notifier/config"
	"github-slack-notifier/config/postgre"
	"github-slack-notifier/internal/httpserver"
	queuePostgre "github-slack-notifier/internal/queue/postgre"
	"github-slack-notifier/internal/webhook"
	"github-slack-notifier/pkg/log"
)

// main is the entry point for the webhook ingress service. It accepts
// GitHub webhook deliveries and enqueues them for the worker; it never
// processes them inline.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting webhook ingress service...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	pool, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(pool)

	jobQueue := queuePostgre.New(pool, queuePostgre.Config{
		MaxAttempts: cfg.Queue.MaxAttempts,
		BaseBackoff: cfg.Queue.BaseBackoff,
	}, logger)

	webhookHandler := webhook.NewHandler(jobQueue, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, logger)

	srv, err := httpserver.New(httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
