package notifier

import (
	"context"

	"github-slack-notifier/internal/queue"
	"github-slack-notifier/internal/store"
)

// Notify loads the pull request and its owning repository, then posts the
// merge notification to the repository's bound channel.
func (uc *implUseCase) Notify(ctx context.Context, args queue.NotifyTeamsArgs) error {
	pr, err := uc.st.GetPullRequest(ctx, store.GetPullRequestOptions{ID: args.PullRequestID})
	if err != nil {
		uc.l.Errorf(ctx, "notifier: GetPullRequest: %v", err)
		return err
	}
	if pr.ID == 0 {
		// Row gone between enqueue and execution. Nothing left to notify.
		uc.l.Warnf(ctx, "notifier: pull request %d not found, dropping", args.PullRequestID)
		return nil
	}

	repo, err := uc.st.GetRepository(ctx, store.GetRepositoryOptions{ID: pr.RepositoryID})
	if err != nil {
		uc.l.Errorf(ctx, "notifier: GetRepository: %v", err)
		return err
	}
	if repo.ID == 0 {
		uc.l.Warnf(ctx, "notifier: repository %d not found for pull request %d, dropping",
			pr.RepositoryID, pr.ID)
		return nil
	}
	if repo.SlackChannelID == "" {
		uc.l.Infof(ctx, "notifier: repository %s has no channel binding, skipping", repo.FullName)
		return nil
	}

	text := formatMergeMessage(repo, pr)
	if err := uc.slack.PostMessage(ctx, repo.SlackChannelID, text); err != nil {
		uc.l.Errorf(ctx, "notifier: post to %s: %v", repo.SlackChannelID, err)
		return err
	}

	uc.l.Infof(ctx, "notifier: notified %s about %s#%d", repo.SlackChannelID, repo.FullName, pr.Number)
	return nil
}
