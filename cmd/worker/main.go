package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github-slack-notifier/config"
	"github-slack-notifier/config/postgre"
	"github-slack-notifier/internal/notifier"
	"github-slack-notifier/internal/queue"
	queuePostgre "github-slack-notifier/internal/queue/postgre"
	"github-slack-notifier/internal/reconciler"
	storePostgre "github-slack-notifier/internal/store/postgre"
	"github-slack-notifier/pkg/log"
	pkgSlack "github-slack-notifier/pkg/slack"
)

// main is the entry point for the background worker service. It consumes
// queued webhook deliveries, reconciles pull-request state and dispatches
// team notifications.
//
// Pattern:
//  1. Initialize infra (same as cmd/api/main.go)
//  2. Create UseCases
//  3. Create the queue consumer, wire handlers
//  4. Run & graceful shutdown
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

	logger.Info(ctx, "Starting worker service...")

	pool, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(pool)

	st := storePostgre.New(pool, logger)
	jobQueue := queuePostgre.New(pool, queuePostgre.Config{
		MaxAttempts: cfg.Queue.MaxAttempts,
		BaseBackoff: cfg.Queue.BaseBackoff,
	}, logger)

	slackClient := pkgSlack.NewClient(cfg.Slack.BotToken)

	reconcilerUC := reconciler.New(st, jobQueue, reconciler.DedupeConfig{
		CacheSize: cfg.Webhook.DedupeCacheSize,
		CacheTTL:  cfg.Webhook.DedupeCacheTTL,
	}, logger)
	notifierUC := notifier.New(st, slackClient, logger)

	consumer := queue.NewConsumer(jobQueue, queue.ConsumerConfig{
		Workers:      cfg.Queue.Workers,
		PollInterval: cfg.Queue.PollInterval,
	}, logger)
	consumer.Register(queue.KindProcessWebhook, reconciler.JobHandler(reconcilerUC))
	consumer.Register(queue.KindNotifyTeams, notifier.JobHandler(notifierUC))

	logger.Info(ctx, "Worker service running. Waiting for shutdown signal...")
	consumer.Run(ctx)
	logger.Info(ctx, "Worker service stopped gracefully")
}
