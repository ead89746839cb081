package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	var retried []int
	err := Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	},
		WithMaxAttempts(5),
		WithBackoff(Fixed(0)),
		OnRetry(func(attempt int, _ error) { retried = append(retried, attempt) }),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return errBoom
	}, WithMaxAttempts(4), WithBackoff(Fixed(0)))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 4, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return errBoom
	},
		WithMaxAttempts(5),
		WithBackoff(Fixed(0)),
		WithRetryIf(func(err error) bool { return !errors.Is(err, errBoom) }),
	)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Do(ctx, func(context.Context) error { return errBoom },
		WithMaxAttempts(10), WithBackoff(Fixed(time.Second)))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExponential(t *testing.T) {
	b := Exponential(100*time.Millisecond, time.Second)
	assert.Equal(t, 100*time.Millisecond, b(0))
	assert.Equal(t, 200*time.Millisecond, b(1))
	assert.Equal(t, 800*time.Millisecond, b(3))
	assert.Equal(t, time.Second, b(4))
	assert.Equal(t, time.Second, b(70))
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil))
	assert.False(t, IsRetryableError(context.Canceled))
	assert.True(t, IsRetryableError(errBoom))
}
