package reconciler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github-slack-notifier/internal/model"
	"github-slack-notifier/internal/queue"
	"github-slack-notifier/internal/store"
)

// Process reconciles one webhook event against the pull-request store.
//
// Filtering happens here, not at the receiver, so new event kinds can be
// added without touching ingress. Everything that is not a pull_request
// merge event for a tracked repository is a deliberate silent no-op.
func (uc *implUseCase) Process(ctx context.Context, event model.WebhookEvent) error {
	if event.EventType != "pull_request" {
		uc.l.Debugf(ctx, "reconciler: ignoring event type %q (delivery=%s)", event.EventType, event.DeliveryID)
		return nil
	}

	if event.DeliveryID != "" {
		if _, dup := uc.seen.Get(event.DeliveryID); dup {
			uc.l.Infof(ctx, "reconciler: delivery %s already processed, skipping", event.DeliveryID)
			return nil
		}
	}

	var payload pullRequestEvent
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// Only merges produce durable effects. This covers merged:false, the
	// flag being absent, and closed-but-unmerged actions alike.
	if !payload.PullRequest.Merged {
		uc.l.Debugf(ctx, "reconciler: pull_request %s not merged, skipping (delivery=%s)",
			payload.Action, event.DeliveryID)
		return nil
	}

	repo, err := uc.st.GetRepository(ctx, store.GetRepositoryOptions{
		GithubRepoID: payload.Repository.ID,
		FullName:     payload.Repository.FullName,
	})
	if err != nil {
		uc.l.Errorf(ctx, "reconciler: GetRepository: %v", err)
		return err
	}
	if repo.ID == 0 {
		// Event for a repository this system does not track. Not an error.
		uc.l.Infof(ctx, "reconciler: unknown repository %d (%s), dropping delivery %s",
			payload.Repository.ID, payload.Repository.FullName, event.DeliveryID)
		return nil
	}

	if err := payload.validate(); err != nil {
		return err
	}

	pr, err := uc.st.UpsertPullRequest(ctx, store.UpsertPullRequestOptions{
		RepositoryID: repo.ID,
		Number:       payload.PullRequest.Number,
		GithubPRID:   strconv.FormatInt(payload.PullRequest.ID, 10),
		Title:        payload.PullRequest.Title,
		Body:         payload.PullRequest.Body,
		Author:       payload.PullRequest.User.Login,
		State:        model.PullRequestState(payload.PullRequest.State),
		BaseBranch:   payload.PullRequest.Base.Ref,
		HeadBranch:   payload.PullRequest.Head.Ref,
		MergedAt:     payload.PullRequest.MergedAt,
		CreatedAt:    payload.PullRequest.CreatedAt,
		UpdatedAt:    payload.PullRequest.UpdatedAt,
	})
	if err != nil {
		uc.l.Errorf(ctx, "reconciler: UpsertPullRequest: %v", err)
		return err
	}

	if err := uc.producer.Enqueue(ctx, queue.KindNotifyTeams, queue.NotifyTeamsArgs{
		PullRequestID: pr.ID,
	}); err != nil {
		uc.l.Errorf(ctx, "reconciler: enqueue notify: %v", err)
		return err
	}

	if event.DeliveryID != "" {
		uc.seen.Add(event.DeliveryID, struct{}{})
	}

	uc.l.Infof(ctx, "reconciler: pull request %s#%d reconciled (pr_id=%d delivery=%s)",
		repo.FullName, pr.Number, pr.ID, event.DeliveryID)
	return nil
}
