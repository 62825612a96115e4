package throttle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis container in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis_Acquire(t *testing.T) {
	// Arrange
	th := NewRedis(newRedis(t), "test:")
	ctx := context.Background()

	// Act
	first, _, err := th.Acquire(ctx, "cooldown:student:ana@school.ph", 2*time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	second, retryAfter, err := th.Acquire(ctx, "cooldown:student:ana@school.ph", 2*time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	other, _, _ := th.Acquire(ctx, "cooldown:teacher:ana@school.ph", 2*time.Second)

	// Assert
	if !first || second {
		t.Fatalf("expected first=true second=false, got %v %v", first, second)
	}
	if retryAfter <= 0 || retryAfter > 2*time.Second {
		t.Fatalf("retryAfter = %v", retryAfter)
	}
	if !other {
		t.Fatalf("different key must not be throttled")
	}
}

func TestRedis_Forget(t *testing.T) {
	// Arrange
	th := NewRedis(newRedis(t), "test:")
	ctx := context.Background()
	if ok, _, err := th.Acquire(ctx, "cooldown:student:ana@school.ph", time.Minute); err != nil || !ok {
		t.Fatalf("Acquire() = %v %v", ok, err)
	}

	// Act
	err := th.Forget(ctx, "cooldown:student:ana@school.ph")

	// Assert
	if err != nil {
		t.Fatalf("Forget() error = %v", err)
	}
	if ok, _, _ := th.Acquire(ctx, "cooldown:student:ana@school.ph", time.Minute); !ok {
		t.Fatalf("key must be claimable again after Forget")
	}
	if err := th.Forget(ctx, "cooldown:student:nobody@school.ph"); err != nil {
		t.Fatalf("Forget() on a missing key = %v", err)
	}
}

func TestRedis_AcquireZeroWindow(t *testing.T) {
	th := NewRedis(nil, "")
	ok, _, err := th.Acquire(context.Background(), "k", 0)
	if !ok || err != nil {
		t.Fatalf("zero window must always pass, got %v %v", ok, err)
	}
}

func TestRedis_LockRelease(t *testing.T) {
	th := NewRedis(newRedis(t), "test:")
	ctx := context.Background()

	ok, err := th.Lock(ctx, "purge", "replica-a", time.Minute)
	if err != nil || !ok {
		t.Fatalf("Lock() = %v %v", ok, err)
	}
	if ok, _ := th.Lock(ctx, "purge", "replica-b", time.Minute); ok {
		t.Fatalf("second holder must not get the lock")
	}
	if err := th.Release(ctx, "purge", "replica-b"); !errors.Is(err, ErrLockNotHeld) {
		t.Fatalf("foreign release = %v", err)
	}
	if err := th.Release(ctx, "purge", "replica-a"); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if ok, _ := th.Lock(ctx, "purge", "replica-b", time.Minute); !ok {
		t.Fatalf("lock should be free after release")
	}
}
