package postgre

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github-slack-notifier/internal/queue"
	"github-slack-notifier/pkg/log"
)

// visibilityTimeout is how long a claimed job stays invisible before it is
// considered abandoned and becomes claimable again.
const visibilityTimeout = 5 * time.Minute

// Config tunes the retry policy applied by Fail.
type Config struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

type implQueue struct {
	pool *pgxpool.Pool
	cfg  Config
	l    log.Logger
}

// New creates a PostgreSQL-backed durable job queue.
func New(pool *pgxpool.Pool, cfg Config, l log.Logger) queue.Queue {
	if pool == nil {
		panic("queue/postgre: pool is required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 5 * time.Second
	}
	return &implQueue{pool: pool, cfg: cfg, l: l}
}

func (q *implQueue) dsn(method string) string {
	return fmt.Sprintf("queue/postgre.%s", method)
}
