// Package throttle implements short-lived Redis guards: per-key cooldowns
// (one action per window) and single-holder locks for periodic jobs.
package throttle

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned by Release when the lock expired or was taken over.
var ErrLockNotHeld = errors.New("throttle: lock not held")

// Throttle guards keys for a window.
type Throttle interface {
	// Acquire claims key for window. When the key is already claimed it
	// returns false and the time left on the existing claim.
	Acquire(ctx context.Context, key string, window time.Duration) (ok bool, retryAfter time.Duration, err error)
	// Forget drops a claim made by Acquire before its window ends.
	Forget(ctx context.Context, key string) error
	// Lock claims key for ttl with an owner token; Release frees it only if
	// the token still matches.
	Lock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, token string) error
}

// Redis implements Throttle on top of go-redis.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis returns a Redis throttle namespacing every key under prefix.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	if window <= 0 {
		return true, 0, nil
	}

	fk := r.prefix + key
	ok, err := r.client.SetNX(ctx, fk, "1", window).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}

	left, err := r.client.PTTL(ctx, fk).Result()
	if err != nil {
		return false, 0, err
	}
	if left < 0 {
		// key vanished between SETNX and PTTL, or has no expiry
		left = window
	}

	return false, left, nil
}

func (r *Redis) Forget(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *Redis) Lock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.prefix+key, token, ttl).Result()
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (r *Redis) Release(ctx context.Context, key, token string) error {
	n, err := releaseScript.Run(ctx, r.client, []string{r.prefix + key}, token).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Noop never throttles and always grants locks. Used when Redis is not configured.
type Noop struct{}

func (Noop) Acquire(context.Context, string, time.Duration) (bool, time.Duration, error) {
	return true, 0, nil
}

func (Noop) Forget(context.Context, string) error { return nil }

func (Noop) Lock(context.Context, string, string, time.Duration) (bool, error) { return true, nil }

func (Noop) Release(context.Context, string, string) error { return nil }
