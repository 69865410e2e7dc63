package webhook

import (
	"github-slack-notifier/internal/queue"
	pkgLog "github-slack-notifier/pkg/log"
)

// Handler is the GitHub webhook ingress. It authenticates transport
// framing, extracts event metadata and enqueues a durable unit of work; it
// never reconciles inline.
type Handler struct {
	producer queue.Producer
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewHandler(producer queue.Producer, securityConfig SecurityConfig, l pkgLog.Logger) *Handler {
	return &Handler{
		producer: producer,
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}
