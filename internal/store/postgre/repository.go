package postgre

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github-slack-notifier/internal/model"
	"github-slack-notifier/internal/store"
)

const repositoryColumns = `id, github_repo_id, full_name, slack_channel_id, installation_id, created_at, updated_at`

// GetRepository resolves a repository by internal id, GitHub id, or full
// name, in that priority order. Returns zero-value Repository (ID == 0)
// when not found — do NOT return error for not-found.
func (s *implStore) GetRepository(ctx context.Context, opt store.GetRepositoryOptions) (model.Repository, error) {
	var (
		query string
		arg   any
	)
	switch {
	case opt.ID != 0:
		query = `SELECT ` + repositoryColumns + ` FROM repositories WHERE id = $1`
		arg = opt.ID
	case opt.GithubRepoID != 0:
		query = `SELECT ` + repositoryColumns + ` FROM repositories WHERE github_repo_id = $1`
		arg = opt.GithubRepoID
	case opt.FullName != "":
		query = `SELECT ` + repositoryColumns + ` FROM repositories WHERE full_name = $1`
		arg = opt.FullName
	default:
		return model.Repository{}, nil
	}

	var repo model.Repository
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&repo.ID, &repo.GithubRepoID, &repo.FullName, &repo.SlackChannelID,
		&repo.InstallationID, &repo.CreatedAt, &repo.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Repository{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetRepository"), err)
		return model.Repository{}, store.ErrFailedToGet
	}
	return repo, nil
}
