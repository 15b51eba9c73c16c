package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps test runtime negligible.
var fastConfig = Config{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2.0,
	JitterFactor: 0,
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, fastConfig)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("still broken")
	err := Do(context.Background(), func() error {
		calls++
		return boom
	}, fastConfig)

	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 3, calls)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "schedule", nil
	}, fastConfig)

	require.NoError(t, err)
	assert.Equal(t, "schedule", result)
	assert.Equal(t, 2, calls)
}

func TestDoWithResult_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := DoWithResult(ctx, func() (int, error) {
		calls++
		return 0, errors.New("transient")
	}, fastConfig)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, calls)
}

func TestDoWithResult_RetryIfStopsEarly(t *testing.T) {
	calls := 0
	cfg := fastConfig.WithRetryIf(SkipPermanent)

	_, err := DoWithResult(context.Background(), func() (int, error) {
		calls++
		return 0, NewPermanent(errors.New("bad request"))
	}, cfg)

	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, NewPermanent(nil))
	})

	t.Run("wraps and unwraps", func(t *testing.T) {
		underlying := errors.New("bad request")
		err := NewPermanent(underlying)

		assert.True(t, IsPermanent(err))
		assert.True(t, errors.Is(err, underlying))
		assert.Equal(t, "bad request", err.Error())
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		err := NewPermanent(errors.New("bad request"))
		wrapped := errors.Join(errors.New("attempt 1"), err)
		assert.True(t, IsPermanent(wrapped))
	})

	t.Run("plain errors are not permanent", func(t *testing.T) {
		assert.False(t, IsPermanent(errors.New("transient")))
		assert.False(t, IsPermanent(nil))
	})
}

func TestSkipPermanent(t *testing.T) {
	assert.True(t, SkipPermanent(errors.New("transient")))
	assert.False(t, SkipPermanent(NewPermanent(errors.New("fatal"))))
}

func TestConfigBuilders(t *testing.T) {
	cfg := SourceConfig.
		WithMaxAttempts(5).
		WithInitialDelay(time.Millisecond).
		WithRetryIf(SkipPermanent)

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, time.Millisecond, cfg.InitialDelay)
	assert.NotNil(t, cfg.RetryIf)

	// The package-level config is untouched.
	assert.Equal(t, 3, SourceConfig.MaxAttempts)
	assert.Nil(t, SourceConfig.RetryIf)
}

func TestDo_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 0}
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("fail")
	}, cfg)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
