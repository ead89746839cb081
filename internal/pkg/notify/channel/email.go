package channel

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/go-arcade/edo/internal/pkg/notify/auth"
)

// EmailChannel sends plain text mail through an SMTP relay.
type EmailChannel struct {
	smtpHost     string
	smtpPort     int
	fromEmail    string
	authProvider auth.IAuthProvider
	send         func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailChannel(smtpHost string, smtpPort int, fromEmail string) *EmailChannel {
	return &EmailChannel{
		smtpHost:  smtpHost,
		smtpPort:  smtpPort,
		fromEmail: fromEmail,
		send:      smtp.SendMail,
	}
}

// SetAuth sets authentication provider (email uses SMTP auth, typically Basic Auth)
func (c *EmailChannel) SetAuth(provider auth.IAuthProvider) error {
	if provider == nil {
		return nil
	}
	if provider.GetAuthType() != auth.AuthTypeBasic {
		return fmt.Errorf("email channel only supports basic auth")
	}
	c.authProvider = provider
	return provider.Validate()
}

func (c *EmailChannel) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}

	var smtpAuth smtp.Auth
	if basic, ok := c.authProvider.(*auth.BasicAuth); ok {
		smtpAuth = smtp.PlainAuth("", basic.Username, basic.Password, c.smtpHost)
	}

	addr := fmt.Sprintf("%s:%d", c.smtpHost, c.smtpPort)
	if err := c.send(addr, smtpAuth, c.fromEmail, []string{recipient}, c.buildMessage(recipient, subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (c *EmailChannel) buildMessage(recipient, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + c.fromEmail + "\r\n")
	b.WriteString("To: " + recipient + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

func (c *EmailChannel) Validate() error {
	if c.smtpHost == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.smtpPort <= 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.fromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	if c.authProvider != nil {
		return c.authProvider.Validate()
	}
	return nil
}
