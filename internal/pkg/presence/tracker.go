package presence

import (
	"context"
	"errors"
	"time"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/cache/port"
)

const keyPrefix = "presence:user:"

// Tracker records liveness heartbeats in the cache. A key that expires means
// the user's socket went away without a clean disconnect (process crash,
// network partition); the sweeper reconciles the persisted online flag
// against these keys.
//
// A nil Tracker is a no-op, so the server runs without Redis.
type Tracker struct {
	cache port.Cache
	ttl   time.Duration
}

func NewTracker(cache port.Cache, ttl time.Duration) *Tracker {
	return &Tracker{cache: cache, ttl: ttl}
}

// Touch refreshes the user's heartbeat. Called on socket attach and on every
// pong.
func (t *Tracker) Touch(ctx context.Context, userID string) error {
	if t == nil || t.cache == nil {
		return nil
	}
	return t.cache.Set(ctx, keyPrefix+userID, "1", t.ttl)
}

// Forget drops the heartbeat immediately, on clean disconnect.
func (t *Tracker) Forget(ctx context.Context, userID string) error {
	if t == nil || t.cache == nil {
		return nil
	}
	_, err := t.cache.Del(ctx, keyPrefix+userID)
	return err
}

// Alive reports whether the user has a live heartbeat. Without a cache
// backend every user counts as alive so the sweeper never flips anyone
// offline spuriously.
func (t *Tracker) Alive(ctx context.Context, userID string) (bool, error) {
	if t == nil || t.cache == nil {
		return true, nil
	}
	_, err := t.cache.Get(ctx, keyPrefix+userID)
	if errors.Is(err, port.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
