package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arcade/edo/internal/pkg/notify/auth"
	"github.com/go-arcade/edo/internal/pkg/notify/channel"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/12 22:40
 * @file: notify.go
 * @description: outbound notifications
 */

const (
	ChannelNone    = "none"
	ChannelEmail   = "email"
	ChannelWebhook = "webhook"
)

// ErrNoSender is reported when a caller was built without a Sender.
var ErrNoSender = errors.New("notification sender is not configured")

// Sender delivers one message to one recipient. Callers treat failures as soft.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type SMTP struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type Webhook struct {
	URL    string `mapstructure:"url"`
	Method string `mapstructure:"method"`
	Token  string `mapstructure:"token"`
}

type Conf struct {
	Channel     string  `mapstructure:"channel"`
	FrontendURL string  `mapstructure:"frontendUrl"`
	SMTP        SMTP    `mapstructure:"smtp"`
	Webhook     Webhook `mapstructure:"webhook"`
}

func (c *Conf) SetDefaults() {
	if c.Channel == "" {
		c.Channel = ChannelNone
	}
	if c.FrontendURL == "" {
		c.FrontendURL = "http://localhost:3000"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}

// NewSender builds the configured channel.
func NewSender(conf Conf) (Sender, error) {
	switch conf.Channel {
	case ChannelEmail:
		ch := channel.NewEmailChannel(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.From)
		if conf.SMTP.Username != "" {
			if err := ch.SetAuth(auth.NewBasicAuth(conf.SMTP.Username, conf.SMTP.Password)); err != nil {
				return nil, err
			}
		}
		return ch, ch.Validate()
	case ChannelWebhook:
		ch := channel.NewWebhookChannel(conf.Webhook.URL, conf.Webhook.Method)
		if conf.Webhook.Token != "" {
			if err := ch.SetAuth(auth.NewBearerAuth(conf.Webhook.Token)); err != nil {
				return nil, err
			}
		}
		return ch, ch.Validate()
	case ChannelNone, "":
		return channel.NewNoopChannel(), nil
	default:
		return nil, fmt.Errorf("unsupported notify channel: %s", conf.Channel)
	}
}
