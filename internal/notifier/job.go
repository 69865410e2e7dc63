package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github-slack-notifier/internal/queue"
)

// JobHandler adapts the UseCase to the queue's handler contract for
// pullrequest.notify_teams jobs.
func JobHandler(uc UseCase) queue.Handler {
	return func(ctx context.Context, job queue.Job) error {
		var args queue.NotifyTeamsArgs
		if err := json.Unmarshal(job.Payload, &args); err != nil {
			return fmt.Errorf("decode notify job payload: %w", err)
		}
		return uc.Notify(ctx, args)
	}
}
