package notifier

import (
	"context"

	"github-slack-notifier/internal/queue"
)

// UseCase maps a merged pull request to the Slack channel responsible for
// its repository and sends the notification.
type UseCase interface {
	Notify(ctx context.Context, args queue.NotifyTeamsArgs) error
}
