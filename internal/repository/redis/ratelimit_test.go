package redis

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/scribe-mock/internal/config"
)

func TestWindowKey(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "scribe:ratelimit:10.0.0.1:"+strconv.FormatInt(start.Unix(), 10), windowKey("10.0.0.1", start))
	assert.NotEqual(t, windowKey("a", start), windowKey("a", start.Add(time.Minute)))
}

// newTestClient connects to the Redis named by REDIS_TEST_ADDR
func newTestClient(t *testing.T) *Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set - run as integration test")
	}

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err, "REDIS_TEST_ADDR must be host:port")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := NewClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRateLimiter_Allow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	limiter := NewRateLimiter(client, 2, 1)
	fixed := time.Now().Truncate(time.Minute).Add(10 * time.Second)
	limiter.now = func() time.Time { return fixed }

	key := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = limiter.Reset(ctx, key) })

	for want := 2; want >= 0; want-- {
		allowed, remaining, reset, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, want, remaining)
		assert.Equal(t, fixed.Truncate(time.Minute).Add(time.Minute), reset)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	require.NoError(t, limiter.Reset(ctx, key))
	allowed, _, _, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, allowed)
}
