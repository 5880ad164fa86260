package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/cache/port"
)

// memCache is an in-memory port.Cache; TTLs are recorded, not enforced.
type memCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", port.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		if _, ok := c.values[key]; ok {
			delete(c.values, key)
			delete(c.ttls, key)
			n++
		}
	}
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close() error               { return nil }

func TestTracker_TouchThenAlive(t *testing.T) {
	cache := newMemCache()
	tracker := NewTracker(cache, 90*time.Second)
	ctx := context.Background()

	alive, err := tracker.Alive(ctx, "u1")
	require.NoError(t, err)
	require.False(t, alive)

	require.NoError(t, tracker.Touch(ctx, "u1"))
	alive, err = tracker.Alive(ctx, "u1")
	require.NoError(t, err)
	require.True(t, alive)
	require.Equal(t, 90*time.Second, cache.ttls["presence:user:u1"])
}

func TestTracker_ForgetDropsHeartbeat(t *testing.T) {
	tracker := NewTracker(newMemCache(), time.Minute)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "u1"))
	require.NoError(t, tracker.Forget(ctx, "u1"))

	alive, err := tracker.Alive(ctx, "u1")
	require.NoError(t, err)
	require.False(t, alive)
}

func TestTracker_NilIsNoOp(t *testing.T) {
	var tracker *Tracker
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "u1"))
	require.NoError(t, tracker.Forget(ctx, "u1"))

	// Without a backend every user counts as alive so the sweeper never
	// flips anyone offline.
	alive, err := tracker.Alive(ctx, "u1")
	require.NoError(t, err)
	require.True(t, alive)
}
