package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/bassamadnan/triage/config"
	"github.com/go-resty/resty/v2"
)

const slackAPI = "https://slack.com/api"

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Slack posts notifications with chat.postMessage. One attempt per message.
type Slack struct {
	cfg    config.Chat
	client *resty.Client
}

func NewSlack(cfg config.Chat) *Slack {
	return newSlack(cfg, slackAPI)
}

func newSlack(cfg config.Chat, baseURL string) *Slack {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json; charset=utf-8").
		SetAuthToken(cfg.Token)
	return &Slack{cfg: cfg, client: client}
}

func (s *Slack) Name() string { return "slack" }

func (s *Slack) Send(ctx context.Context, msg Message) error {
	if !s.cfg.Enabled() {
		return fmt.Errorf("%w: SLACK_BOT_TOKEN/SLACK_CHANNEL_ID not set", ErrSkipped)
	}
	var out postMessageResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"channel": s.cfg.ChannelID, "text": msg.Text}).
		SetResult(&out).
		Post("/chat.postMessage")
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("slack returned HTTP %d", resp.StatusCode())
	}
	if !out.OK {
		return fmt.Errorf("slack rejected message: %s", out.Error)
	}
	return nil
}
