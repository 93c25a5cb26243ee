package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter("", 2, time.Hour)
	ctx := context.Background()

	r1, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, r1.Allowed)
	require.EqualValues(t, 1, r1.Remaining)

	r2, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, r2.Allowed)
	require.EqualValues(t, 0, r2.Remaining)

	r3, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, r3.Allowed)
	require.EqualValues(t, 3, r3.CurrentHits)
	require.Positive(t, r3.RetryAfter)

	// otra key, otro contador
	r4, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, r4.Allowed)
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	srv := miniredis.RunT(t)
	client := rdb.NewClient(&rdb.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, "test:", 1, time.Hour)
	ctx := context.Background()

	r1, err := l.Allow(ctx, "client a")
	require.NoError(t, err)
	require.True(t, r1.Allowed)
	require.Positive(t, r1.WindowTTL)

	r2, err := l.Allow(ctx, "client a")
	require.NoError(t, err)
	require.False(t, r2.Allowed)
	require.Positive(t, r2.RetryAfter)

	keys := srv.Keys()
	require.Len(t, keys, 1)
	require.Contains(t, keys[0], "test:client_a:")
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	srv := miniredis.RunT(t)
	client := rdb.NewClient(&rdb.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	srv.Close()

	_, err := NewRedisLimiter(client, "", 1, time.Minute).Allow(context.Background(), "k")
	require.Error(t, err)
}
