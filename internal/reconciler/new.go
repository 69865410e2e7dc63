package reconciler

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github-slack-notifier/internal/queue"
	"github-slack-notifier/internal/store"
	"github-slack-notifier/pkg/log"
)

// DedupeConfig bounds the delivery-id idempotency cache.
type DedupeConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// implUseCase is the private implementation of reconciler.UseCase.
type implUseCase struct {
	st       store.Store
	producer queue.Producer
	// seen is a best-effort guard against redelivered events. The upsert
	// itself is idempotent; this only suppresses duplicate notifications.
	seen *expirable.LRU[string, struct{}]
	l    log.Logger
}

// New creates a new reconciler UseCase implementation.
func New(st store.Store, producer queue.Producer, dedupe DedupeConfig, l log.Logger) *implUseCase {
	if dedupe.CacheSize <= 0 {
		dedupe.CacheSize = 4096
	}
	if dedupe.CacheTTL <= 0 {
		dedupe.CacheTTL = 30 * time.Minute
	}
	return &implUseCase{
		st:       st,
		producer: producer,
		seen:     expirable.NewLRU[string, struct{}](dedupe.CacheSize, nil, dedupe.CacheTTL),
		l:        l,
	}
}
