package store

import (
	"context"

	"github-slack-notifier/internal/model"
)

// Store is the composed interface for the service's relational state.
type Store interface {
	RepositoryStore
	PullRequestStore
}

// RepositoryStore is the read-only directory of tracked repositories.
type RepositoryStore interface {
	// GetRepository resolves a repository by internal id, stable GitHub id,
	// or full name, in that priority order. Returns the zero value
	// (ID == 0) when no repository matches — not-found is not an error.
	GetRepository(ctx context.Context, opt GetRepositoryOptions) (model.Repository, error)
}

// PullRequestStore persists the last-known state of tracked pull requests.
type PullRequestStore interface {
	// UpsertPullRequest atomically creates or updates the row keyed by
	// (RepositoryID, Number). Concurrent upserts for the same key serialize
	// on the unique constraint; different keys proceed in parallel.
	UpsertPullRequest(ctx context.Context, opt UpsertPullRequestOptions) (model.PullRequest, error)

	// GetPullRequest fetches a single pull request by the provided filters.
	// Returns the zero value (ID == 0) when not found.
	GetPullRequest(ctx context.Context, opt GetPullRequestOptions) (model.PullRequest, error)
}
