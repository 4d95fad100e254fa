package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary error")

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_RetrySuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errTemporary
		}
		return nil
	}, WithMaxAttempts(3), WithBackoff(Fixed(0)))
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_MaxAttempts(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTemporary
	}, WithMaxAttempts(4), WithBackoff(Fixed(time.Millisecond)))
	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 4, attempts)
}

func TestDo_IgnoresInvalidOptions(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTemporary
	}, WithMaxAttempts(0), WithMaxAttempts(-1), WithBackoff(nil), WithJitter(nil), WithRetryIf(nil),
		WithBackoff(Fixed(0)))
	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 3, attempts, "default attempts apply")
}

func TestDo_CustomRetryIf(t *testing.T) {
	permanent := errors.New("permanent")
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return errTemporary
		}
		return fmt.Errorf("wrapped: %w", permanent)
	}, WithMaxAttempts(5), WithBackoff(Fixed(0)), WithRetryIf(func(err error) bool {
		return !errors.Is(err, permanent)
	}))
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 2, attempts)
}

func TestDo_OnRetry(t *testing.T) {
	var seen []int
	_ = Do(context.Background(), func(ctx context.Context) error {
		return errTemporary
	}, WithMaxAttempts(3), WithBackoff(Fixed(0)), WithOnRetry(func(attempt int, err error, wait time.Duration) {
		assert.ErrorIs(t, err, errTemporary)
		seen = append(seen, attempt)
	}))
	assert.Equal(t, []int{1, 2}, seen, "no hook after the final attempt")
}

func TestDo_NoRetryOnContextError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDo_PreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
}

func TestDo_CancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return errTemporary
	}, WithMaxAttempts(5), WithBackoff(Fixed(time.Minute)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"wrapped cancel", fmt.Errorf("get: %w", context.Canceled), false},
		{"generic error", errTemporary, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

func TestBackoff_Exponential(t *testing.T) {
	b := Exponential(50*time.Millisecond, 200*time.Millisecond)
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 50 * time.Millisecond},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 200 * time.Millisecond},
		{70, 200 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Next(tt.attempt), "attempt %d", tt.attempt)
	}
	assert.Equal(t, 400*time.Millisecond, Exponential(50*time.Millisecond, 0).Next(3))
}

func TestJitter(t *testing.T) {
	d := 100 * time.Millisecond
	assert.Equal(t, d, NoJitter(d))
	for i := 0; i < 10; i++ {
		got := FullJitter(d)
		assert.GreaterOrEqual(t, got, time.Duration(0))
		assert.Less(t, got, d)
	}
	assert.Equal(t, time.Duration(0), FullJitter(0))
	assert.Equal(t, time.Duration(0), FullJitter(-1))
}
