package channel

import (
	"context"
	"errors"

	"github.com/go-arcade/edo/pkg/log"
)

// ErrNoChannel is returned by NoopChannel so callers can report that nothing was sent.
var ErrNoChannel = errors.New("no notification channel configured")

// NoopChannel drops messages; used when no channel is configured.
type NoopChannel struct{}

func NewNoopChannel() *NoopChannel {
	return &NoopChannel{}
}

func (NoopChannel) Send(_ context.Context, recipient, subject, _ string) error {
	log.Infow("notification dropped, no channel configured", "to", recipient, "subject", subject)
	return ErrNoChannel
}
