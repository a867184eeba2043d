package slack

import (
	"context"
	"net/http"

	"github.com/porticolabs/connectors"
)

// Message addresses one chat.postMessage call.
type Message struct {
	Channel ChannelID `json:"channel"`
	Text    string    `json:"text"`

	// ThreadTS, when set, posts the message as a thread reply.
	ThreadTS string `json:"thread_ts,omitempty"`
}

// MessageRef locates a posted message.
type MessageRef struct {
	Channel   ChannelID `json:"channel"`
	Timestamp string    `json:"ts"`
}

// PostMessage posts a message to a channel.
// POST https://slack.com/api/chat.postMessage
//
// Posting is not safe to repeat (a retry would duplicate the message), so
// transient failures are not retried.
func (c *Client) PostMessage(ctx context.Context, msg Message) (*MessageRef, error) {
	noRetry := connectors.NoRetry()

	var ref MessageRef
	err := c.call(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   "/chat.postMessage",
		Body:   msg,
		Retry:  &noRetry,
	}, &ref)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
