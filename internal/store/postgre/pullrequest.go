package postgre

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github-slack-notifier/internal/model"
	"github-slack-notifier/internal/store"
)

const pullRequestColumns = `id, repository_id, number, github_pr_id, title, body, author, state, base_branch, head_branch, merged_at, created_at, updated_at`

// UpsertPullRequest inserts or overwrites the row keyed by
// (repository_id, number). ON CONFLICT makes the race between two concurrent
// creates for the same key resolve to exactly one row.
func (s *implStore) UpsertPullRequest(ctx context.Context, opt store.UpsertPullRequestOptions) (model.PullRequest, error) {
	const query = `
		INSERT INTO pull_requests
			(repository_id, number, github_pr_id, title, body, author, state, base_branch, head_branch, merged_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (repository_id, number) DO UPDATE SET
			github_pr_id = EXCLUDED.github_pr_id,
			title        = EXCLUDED.title,
			body         = EXCLUDED.body,
			author       = EXCLUDED.author,
			state        = EXCLUDED.state,
			base_branch  = EXCLUDED.base_branch,
			head_branch  = EXCLUDED.head_branch,
			merged_at    = EXCLUDED.merged_at,
			created_at   = EXCLUDED.created_at,
			updated_at   = EXCLUDED.updated_at
		RETURNING ` + pullRequestColumns

	var pr model.PullRequest
	err := s.pool.QueryRow(ctx, query,
		opt.RepositoryID, opt.Number, opt.GithubPRID, opt.Title, opt.Body,
		opt.Author, string(opt.State), opt.BaseBranch, opt.HeadBranch,
		opt.MergedAt, opt.CreatedAt, opt.UpdatedAt,
	).Scan(
		&pr.ID, &pr.RepositoryID, &pr.Number, &pr.GithubPRID, &pr.Title,
		&pr.Body, &pr.Author, &pr.State, &pr.BaseBranch, &pr.HeadBranch,
		&pr.MergedAt, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("UpsertPullRequest"), err)
		return model.PullRequest{}, store.ErrFailedToUpsert
	}
	return pr, nil
}

// GetPullRequest retrieves a single pull request by the provided filters
// (AND condition). Returns zero-value PullRequest (ID == 0) when not found.
func (s *implStore) GetPullRequest(ctx context.Context, opt store.GetPullRequestOptions) (model.PullRequest, error) {
	mods, args := buildGetPullRequestQuery(opt)
	query := fmt.Sprintf("SELECT %s FROM pull_requests WHERE %s LIMIT 1", pullRequestColumns, mods)

	var pr model.PullRequest
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&pr.ID, &pr.RepositoryID, &pr.Number, &pr.GithubPRID, &pr.Title,
		&pr.Body, &pr.Author, &pr.State, &pr.BaseBranch, &pr.HeadBranch,
		&pr.MergedAt, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PullRequest{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetPullRequest"), err)
		return model.PullRequest{}, store.ErrFailedToGet
	}
	return pr, nil
}

// buildGetPullRequestQuery builds WHERE clause + args for GetPullRequest.
// All non-zero fields are applied as AND conditions.
func buildGetPullRequestQuery(opt store.GetPullRequestOptions) (string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.ID != 0 {
		conditions = append(conditions, fmt.Sprintf("id = $%d", idx))
		args = append(args, opt.ID)
		idx++
	}
	if opt.RepositoryID != 0 {
		conditions = append(conditions, fmt.Sprintf("repository_id = $%d", idx))
		args = append(args, opt.RepositoryID)
		idx++
	}
	if opt.Number != 0 {
		conditions = append(conditions, fmt.Sprintf("number = $%d", idx))
		args = append(args, opt.Number)
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}
