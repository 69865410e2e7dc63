package reconciler

import (
	"context"
	"encoding/json"
	"fmt"

	"github-slack-notifier/internal/model"
	"github-slack-notifier/internal/queue"
)

// JobHandler adapts the UseCase to the queue's handler contract for
// webhook.process jobs.
func JobHandler(uc UseCase) queue.Handler {
	return func(ctx context.Context, job queue.Job) error {
		var event model.WebhookEvent
		if err := json.Unmarshal(job.Payload, &event); err != nil {
			return fmt.Errorf("decode webhook job payload: %w", err)
		}
		return uc.Process(ctx, event)
	}
}
