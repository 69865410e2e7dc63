package model

import "time"

// Repository is a tracked GitHub repository and its notification binding.
// GithubRepoID is the canonical join key; FullName is display-only and may
// change when a repository is renamed or transferred.
type Repository struct {
	ID             int64
	GithubRepoID   int64
	FullName       string
	SlackChannelID string
	InstallationID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
