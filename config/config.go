package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Postgres PostgresConfig
	Queue    QueueConfig
	Webhook  WebhookConfig
	Slack    SlackConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type PostgresConfig struct {
	DSN      string
	MinConns int32
	MaxConns int32
}

// QueueConfig tunes the durable job queue consumer.
type QueueConfig struct {
	Workers      int
	PollInterval time.Duration
	MaxAttempts  int
	BaseBackoff  time.Duration
}

// WebhookConfig holds webhook ingress security settings.
type WebhookConfig struct {
	// Secret enables HMAC signature verification when non-empty.
	// Left empty, webhooks are accepted unsigned.
	Secret          string
	RateLimitPerMin int
	// DedupeCacheSize bounds the delivery-id idempotency cache.
	DedupeCacheSize int
	DedupeCacheTTL  time.Duration
}

type SlackConfig struct {
	BotToken string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	cfg.Postgres.MinConns = viper.GetInt32("postgres.min_conns")
	cfg.Postgres.MaxConns = viper.GetInt32("postgres.max_conns")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	cfg.Queue.Workers = viper.GetInt("queue.workers")
	cfg.Queue.PollInterval = viper.GetDuration("queue.poll_interval")
	cfg.Queue.MaxAttempts = viper.GetInt("queue.max_attempts")
	cfg.Queue.BaseBackoff = viper.GetDuration("queue.base_backoff")

	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("github_webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.DedupeCacheSize = viper.GetInt("webhook.dedupe_cache_size")
	cfg.Webhook.DedupeCacheTTL = viper.GetDuration("webhook.dedupe_cache_ttl")

	cfg.Slack.BotToken = viper.GetString("slack.bot_token")
	if slackToken := viper.GetString("slack_bot_token"); slackToken != "" {
		cfg.Slack.BotToken = slackToken
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("postgres.min_conns", 2)
	viper.SetDefault("postgres.max_conns", 10)

	viper.SetDefault("queue.workers", 4)
	viper.SetDefault("queue.poll_interval", "1s")
	viper.SetDefault("queue.max_attempts", 10)
	viper.SetDefault("queue.base_backoff", "5s")

	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.dedupe_cache_size", 4096)
	viper.SetDefault("webhook.dedupe_cache_ttl", "30m")
}
