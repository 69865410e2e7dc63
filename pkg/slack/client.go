package slack

import (
	"context"
	"fmt"
	"time"

	goslack "github.com/slack-go/slack"
)

const (
	maxRetries = 3
	baseDelay  = time.Second
)

// Client wraps the slack-go client with retry on transient failures.
type Client struct {
	api *goslack.Client
}

// NewClient creates a Slack client from a bot token.
func NewClient(botToken string) *Client {
	return &Client{api: goslack.New(botToken)}
}

// PostMessage sends a plain-text message to the given channel.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	return c.doWithRetry(ctx, func() error {
		_, _, err := c.api.PostMessageContext(ctx, channelID,
			goslack.MsgOptionText(text, false),
			goslack.MsgOptionDisableLinkUnfurl(),
		)
		return err
	})
}

// doWithRetry retries the provided function with exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay * (1 << i)):
		}
	}
	return fmt.Errorf("after %d retries, last error: %w", maxRetries, err)
}
