package queue

import "context"

// Producer enqueues durable units of work.
type Producer interface {
	// Enqueue persists a job of the given kind. The payload is marshaled to
	// JSON. The job becomes visible to consumers once the insert commits.
	Enqueue(ctx context.Context, kind string, payload any) error
}

// Queue is the full job store contract used by the consumer. Execution is
// at-least-once: a claimed job that is neither completed nor failed (crash,
// kill) becomes claimable again after the visibility timeout.
type Queue interface {
	Producer

	// Claim atomically takes up to limit due jobs for exclusive processing.
	Claim(ctx context.Context, limit int) ([]Job, error)

	// Complete removes a finished job.
	Complete(ctx context.Context, id string) error

	// Fail reschedules the job after a backoff, or marks it dead once
	// attempts reach maxAttempts.
	Fail(ctx context.Context, job Job, jobErr error) error
}

// Handler processes a single claimed job. A returned error triggers the
// queue's retry policy.
type Handler func(ctx context.Context, job Job) error
