package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheService() *CacheService {
	return &CacheService{logger: gecho.NewDefaultLogger()}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	cs := newTestCacheService()

	calls := 0
	failure := errors.New("connection reset")
	err := cs.withRetry(context.Background(), "get", func() error {
		calls++
		return failure
	})

	require.ErrorIs(t, err, failure)
	assert.Equal(t, cacheRetryAttempts, calls)
}

func TestWithRetryStopsOnSuccess(t *testing.T) {
	cs := newTestCacheService()

	calls := 0
	err := cs.withRetry(context.Background(), "set", func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryTreatsMissAsFinal(t *testing.T) {
	cs := newTestCacheService()

	calls := 0
	err := cs.withRetry(context.Background(), "get", func() error {
		calls++
		return redis.Nil
	})

	require.ErrorIs(t, err, redis.Nil)
	assert.Equal(t, 1, calls)
}

func TestWithRetryHonorsCancelledContext(t *testing.T) {
	cs := newTestCacheService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cs.withRetry(ctx, "del", func() error {
		return errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
}
