package reconciler

import (
	"context"

	"github-slack-notifier/internal/model"
)

// UseCase applies one webhook event to local pull-request state: at most
// one upsert plus at most one downstream notification dispatch, or nothing.
type UseCase interface {
	Process(ctx context.Context, event model.WebhookEvent) error
}
