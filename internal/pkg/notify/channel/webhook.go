package channel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-arcade/edo/internal/pkg/notify/auth"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-resty/resty/v2"
)

// WebhookChannel posts every message as JSON to one endpoint, e.g. a mail relay.
type WebhookChannel struct {
	webhookURL   string
	method       string
	authProvider auth.IAuthProvider
	client       *resty.Client
}

type webhookPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewWebhookChannel(webhookURL, method string) *WebhookChannel {
	if method == "" {
		method = http.MethodPost
	}
	return &WebhookChannel{
		webhookURL: webhookURL,
		method:     method,
		client:     resty.New(),
	}
}

func (c *WebhookChannel) SetAuth(provider auth.IAuthProvider) error {
	if provider == nil {
		return nil
	}
	c.authProvider = provider
	return provider.Validate()
}

func (c *WebhookChannel) Send(ctx context.Context, recipient, subject, body string) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(webhookPayload{To: recipient, Subject: subject, Body: body})

	if c.authProvider != nil {
		if key, value := c.authProvider.GetAuthHeader(); key != "" && value != "" {
			req.SetHeader(key, value)
		}
	}

	resp, err := req.Execute(c.method, c.webhookURL)
	if err != nil {
		log.Errorw("webhook send request failed", "error", err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Errorw("webhook request failed", "statusCode", resp.StatusCode(), "response", resp.String())
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode())
	}
	return nil
}

func (c *WebhookChannel) Validate() error {
	if c.webhookURL == "" {
		return fmt.Errorf("webhook URL is required")
	}
	if c.authProvider != nil {
		return c.authProvider.Validate()
	}
	return nil
}
