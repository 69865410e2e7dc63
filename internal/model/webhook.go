package model

import "encoding/json"

// WebhookEvent is the unit of work enqueued by the webhook receiver and
// consumed once by the reconciler. It is never persisted beyond the queue.
type WebhookEvent struct {
	// EventType is the X-GitHub-Event header value. May be empty; the
	// reconciler, not the receiver, rejects unusable events.
	EventType string `json:"event_type"`
	// DeliveryID is the opaque X-GitHub-Delivery token. Stable across
	// GitHub's own retries of the same logical event.
	DeliveryID string `json:"delivery_id"`
	// Payload is the raw event document, shape varies by event type.
	Payload json.RawMessage `json:"payload"`
}
