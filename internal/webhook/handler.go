package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github-slack-notifier/internal/model"
	"github-slack-notifier/internal/queue"
	pkgResponse "github-slack-notifier/pkg/response"
)

// HandleGitHubWebhook accepts a GitHub webhook delivery and enqueues it for
// asynchronous reconciliation. The response is sent as soon as the job is
// durable; the sender never waits on processing.
//
// Absent event-type or delivery-id headers are passed through as empty;
// rejecting unusable events is the reconciler's job, not the receiver's.
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "webhook: failed to read body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if err := h.security.ValidateGitHubSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "webhook: signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "webhook: rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	eventType := c.GetHeader("X-GitHub-Event")
	deliveryID := c.GetHeader("X-GitHub-Delivery")

	payload, err := extractPayload(c.ContentType(), body)
	if err != nil {
		h.l.Errorf(ctx, "webhook: unparseable body (event=%s delivery=%s): %v; raw=%q",
			eventType, deliveryID, err, string(body))
		pkgResponse.Error(c, err, nil)
		return
	}

	h.l.Infof(ctx, "webhook: received event=%s delivery=%s", eventType, deliveryID)

	event := model.WebhookEvent{
		EventType:  eventType,
		DeliveryID: deliveryID,
		Payload:    payload,
	}
	if err := h.producer.Enqueue(ctx, queue.KindProcessWebhook, event); err != nil {
		h.l.Errorf(ctx, "webhook: enqueue failed (delivery=%s): %v", deliveryID, err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, gin.H{"status": "queued"})
}

// extractPayload decodes the delivery body. GitHub sends either a raw JSON
// document or, in urlencoded mode, form parameters with the document under
// the "payload" key. Form parameters win when present and non-empty.
func extractPayload(contentType string, body []byte) (json.RawMessage, error) {
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, err
		}
		if p := values.Get("payload"); p != "" {
			body = []byte(p)
		}
	}

	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
