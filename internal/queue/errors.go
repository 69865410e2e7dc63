package queue

import "errors"

var (
	ErrFailedToEnqueue = errors.New("failed to enqueue job")
	ErrFailedToClaim   = errors.New("failed to claim jobs")
	ErrFailedToUpdate  = errors.New("failed to update job")
	ErrNoHandler       = errors.New("no handler registered for job kind")
)
