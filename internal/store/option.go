package store

import (
	"time"

	"github-slack-notifier/internal/model"
)

// GetRepositoryOptions holds lookup parameters for the repository directory.
// ID is the internal primary key. For external identities, GithubRepoID is
// the canonical key; FullName is the lower-confidence fallback used only
// when GithubRepoID is zero.
type GetRepositoryOptions struct {
	ID           int64
	GithubRepoID int64
	FullName     string
}

// UpsertPullRequestOptions carries the full attribute set for one
// reconciliation. Every field is overwritten on update; timestamps come
// from the webhook payload.
type UpsertPullRequestOptions struct {
	RepositoryID int64
	Number       int

	GithubPRID string
	Title      string
	Body       string
	Author     string
	State      model.PullRequestState
	BaseBranch string
	HeadBranch string
	MergedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GetPullRequestOptions holds filter parameters for fetching a single
// pull request. All non-zero fields are applied as AND conditions.
type GetPullRequestOptions struct {
	ID           int64
	RepositoryID int64
	Number       int
}
