package main

import (
	"log"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// notifyHTTPClient bounds every Slack call; the default client would hang
// a watch sweep indefinitely on a stalled connection.
var notifyHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Notifier posts run summaries to a Slack channel. A Notifier built
// without a token or channel swallows posts silently, so call sites never
// need to check whether notifications are configured.
type Notifier struct {
	api       *slack.Client
	channelID string
}

func NewNotifier(cfg Config) *Notifier {
	if cfg.SlackBotToken == "" || cfg.SlackChannelID == "" {
		log.Println("Slack notifications disabled (slack_bot_token / slack_channel_id not set)")
		return &Notifier{}
	}
	return &Notifier{
		api:       slack.New(cfg.SlackBotToken, slack.OptionHTTPClient(notifyHTTPClient)),
		channelID: cfg.SlackChannelID,
	}
}

// Post sends one message. Failures are logged, never returned: a missed
// notification must not interfere with classification.
func (n *Notifier) Post(text string) {
	if n.api == nil {
		return
	}
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Slack post error: %v", err)
	}
}
