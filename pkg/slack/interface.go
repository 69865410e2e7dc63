package slack

import "context"

// IClient posts messages to Slack channels. Extracted so consumers can be
// tested without the Slack API.
type IClient interface {
	PostMessage(ctx context.Context, channelID, text string) error
}
