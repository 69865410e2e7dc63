package postgre

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github-slack-notifier/internal/queue"
)

const jobColumns = `id, kind, payload, status, attempts, max_attempts, run_at, last_error, created_at, updated_at`

// Enqueue persists one job. The job is visible to consumers as soon as the
// insert commits.
func (q *implQueue) Enqueue(ctx context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		q.l.Errorf(ctx, "%s: marshal: %v", q.dsn("Enqueue"), err)
		return queue.ErrFailedToEnqueue
	}

	const query = `
		INSERT INTO jobs (id, kind, payload, status, attempts, max_attempts, run_at, created_at, updated_at)
		VALUES ($1, $2, $3, 'pending', 0, $4, NOW(), NOW(), NOW())`

	if _, err := q.pool.Exec(ctx, query, uuid.NewString(), kind, body, q.cfg.MaxAttempts); err != nil {
		q.l.Errorf(ctx, "%s: %v", q.dsn("Enqueue"), err)
		return queue.ErrFailedToEnqueue
	}
	return nil
}

// Claim takes up to limit due jobs. FOR UPDATE SKIP LOCKED lets concurrent
// workers claim disjoint sets without blocking each other. Jobs stuck in
// running past the visibility timeout are reclaimed.
func (q *implQueue) Claim(ctx context.Context, limit int) ([]queue.Job, error) {
	query := fmt.Sprintf(`
		UPDATE jobs SET status = 'running', updated_at = NOW()
		WHERE id IN (
			SELECT id FROM jobs
			WHERE (status = 'pending' AND run_at <= NOW())
			   OR (status = 'running' AND updated_at <= NOW() - INTERVAL '%d seconds')
			ORDER BY run_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s`, int(visibilityTimeout.Seconds()), jobColumns)

	rows, err := q.pool.Query(ctx, query, limit)
	if err != nil {
		q.l.Errorf(ctx, "%s: %v", q.dsn("Claim"), err)
		return nil, queue.ErrFailedToClaim
	}
	defer rows.Close()

	var jobs []queue.Job
	for rows.Next() {
		var job queue.Job
		if err := rows.Scan(
			&job.ID, &job.Kind, &job.Payload, &job.Status, &job.Attempts,
			&job.MaxAttempts, &job.RunAt, &job.LastError, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			q.l.Errorf(ctx, "%s: scan: %v", q.dsn("Claim"), err)
			return nil, queue.ErrFailedToClaim
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Complete removes a finished job.
func (q *implQueue) Complete(ctx context.Context, id string) error {
	if _, err := q.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		q.l.Errorf(ctx, "%s: %v", q.dsn("Complete"), err)
		return queue.ErrFailedToUpdate
	}
	return nil
}

// Fail reschedules the job with exponential backoff, or parks it as dead
// once attempts are exhausted.
func (q *implQueue) Fail(ctx context.Context, job queue.Job, jobErr error) error {
	attempts := job.Attempts + 1

	if attempts >= job.MaxAttempts {
		const query = `
			UPDATE jobs SET status = 'dead', attempts = $2, last_error = $3, updated_at = NOW()
			WHERE id = $1`
		if _, err := q.pool.Exec(ctx, query, job.ID, attempts, jobErr.Error()); err != nil {
			q.l.Errorf(ctx, "%s: %v", q.dsn("Fail"), err)
			return queue.ErrFailedToUpdate
		}
		return nil
	}

	backoff := queue.NextBackoff(attempts, q.cfg.BaseBackoff)
	const query = `
		UPDATE jobs SET status = 'pending', attempts = $2, last_error = $3,
			run_at = NOW() + $4::interval, updated_at = NOW()
		WHERE id = $1`
	interval := fmt.Sprintf("%d seconds", int(backoff.Seconds()))
	if _, err := q.pool.Exec(ctx, query, job.ID, attempts, jobErr.Error(), interval); err != nil {
		q.l.Errorf(ctx, "%s: %v", q.dsn("Fail"), err)
		return queue.ErrFailedToUpdate
	}
	return nil
}
