package model

import "time"

// PullRequestState is the lifecycle state reported by GitHub.
type PullRequestState string

const (
	PullRequestStateOpen   PullRequestState = "open"
	PullRequestStateClosed PullRequestState = "closed"
)

// PullRequest is the last-known state of a tracked pull request.
// The pair (RepositoryID, Number) is unique and is the upsert key.
// GithubPRID is informational only and overwritten on every reconciliation.
// All timestamps are taken verbatim from the webhook payload, never from
// the local clock.
type PullRequest struct {
	ID           int64
	RepositoryID int64
	Number       int
	GithubPRID   string
	Title        string
	Body         string
	Author       string
	State        PullRequestState
	BaseBranch   string
	HeadBranch   string
	MergedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
