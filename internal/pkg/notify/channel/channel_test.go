package channel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/edo/internal/pkg/notify/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookChannel_Send(t *testing.T) {
	var got webhookPayload
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ch := NewWebhookChannel(srv.URL, "")
	require.NoError(t, ch.SetAuth(auth.NewBearerAuth("s3cret")))
	require.NoError(t, ch.Validate())
	require.NoError(t, ch.Send(context.Background(), "t@x.com", "Invitation", "hello"))

	assert.Equal(t, "Bearer s3cret", authHeader)
	assert.Equal(t, webhookPayload{To: "t@x.com", Subject: "Invitation", Body: "hello"}, got)
}

func TestWebhookChannel_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookChannel(srv.URL, http.MethodPut).Send(context.Background(), "t@x.com", "s", "b")
	assert.Error(t, err)
}

func TestEmailChannel_Send(t *testing.T) {
	ch := NewEmailChannel("smtp.local", 587, "noreply@edo.local")
	require.NoError(t, ch.SetAuth(auth.NewBasicAuth("user", "pass")))
	assert.Error(t, ch.SetAuth(auth.NewBearerAuth("x")))

	var gotAddr string
	var gotTo []string
	var gotMsg string
	ch.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, ch.Send(context.Background(), "t@x.com", "You're invited", "line1\nline2"))
	assert.Equal(t, "smtp.local:587", gotAddr)
	assert.Equal(t, []string{"t@x.com"}, gotTo)
	assert.Contains(t, gotMsg, "To: t@x.com\r\n")
	assert.Contains(t, gotMsg, "line1\r\nline2")

	ch.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }
	err := ch.Send(context.Background(), "t@x.com", "s", "b")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "relay down"))
}

func TestEmailChannel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ch      *EmailChannel
		wantErr bool
	}{
		{name: "ok", ch: NewEmailChannel("h", 25, "a@b.c")},
		{name: "no host", ch: NewEmailChannel("", 25, "a@b.c"), wantErr: true},
		{name: "no port", ch: NewEmailChannel("h", 0, "a@b.c"), wantErr: true},
		{name: "no from", ch: NewEmailChannel("h", 25, ""), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.ch.Validate() != nil)
		})
	}
}

func TestNoopChannel_ReportsNotSent(t *testing.T) {
	err := NewNoopChannel().Send(context.Background(), "a@b.com", "s", "b")
	assert.ErrorIs(t, err, ErrNoChannel)
}
