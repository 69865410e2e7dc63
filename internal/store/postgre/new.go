package postgre

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github-slack-notifier/internal/store"
	"github-slack-notifier/pkg/log"
)

type implStore struct {
	pool *pgxpool.Pool
	l    log.Logger
}

// New creates a new PostgreSQL-backed Store.
func New(pool *pgxpool.Pool, l log.Logger) store.Store {
	if pool == nil {
		panic("store/postgre: pool is required")
	}
	return &implStore{pool: pool, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (s *implStore) dsn(method string) string {
	return fmt.Sprintf("store/postgre.%s", method)
}
