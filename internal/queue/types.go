package queue

import (
	"encoding/json"
	"time"
)

// Job kinds routed by the consumer.
const (
	KindProcessWebhook = "webhook.process"
	KindNotifyTeams    = "pullrequest.notify_teams"
)

// JobStatus is the queue-side lifecycle state of a job.
type JobStatus string

const (
	StatusPending JobStatus = "pending"
	StatusRunning JobStatus = "running"
	StatusDead    JobStatus = "dead"
)

// Job is one durable unit of work.
type Job struct {
	ID          string
	Kind        string
	Payload     json.RawMessage
	Status      JobStatus
	Attempts    int
	MaxAttempts int
	RunAt       time.Time
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NotifyTeamsArgs is the payload of a KindNotifyTeams job: the identity of
// the pull request whose responsible teams should be notified.
type NotifyTeamsArgs struct {
	PullRequestID int64 `json:"pull_request_id"`
}
