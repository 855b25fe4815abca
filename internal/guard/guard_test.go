package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result := rl.Check(ctx, "acct-1")
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	ctx := context.Background()

	rl.Check(ctx, "acct-1")
	rl.Check(ctx, "acct-1")
	result := rl.Check(ctx, "acct-1")

	assert.False(t, result.Allowed)
	assert.Equal(t, "rate_limiter", result.Guard)
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx := context.Background()

	r1 := rl.Check(ctx, "acct-a")
	r2 := rl.Check(ctx, "acct-b")

	assert.True(t, r1.Allowed)
	assert.True(t, r2.Allowed)
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 5*time.Millisecond)
	ctx := context.Background()

	assert.True(t, rl.Check(ctx, "acct-1").Allowed)
	assert.False(t, rl.Check(ctx, "acct-1").Allowed)

	time.Sleep(10 * time.Millisecond)
	assert.True(t, rl.Check(ctx, "acct-1").Allowed)
}

func TestIdempotencyGuard_AllowsFirstUse(t *testing.T) {
	ig := NewIdempotencyGuard()
	result := ig.Check(context.Background(), "tx-1")
	assert.True(t, result.Allowed)
}

func TestIdempotencyGuard_BlocksDuplicate(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	ig.Check(ctx, "tx-1")
	result := ig.Check(ctx, "tx-1")

	assert.False(t, result.Allowed)
	assert.Equal(t, "idempotency", result.Guard)
}

func TestIdempotencyGuard_EmptyKeyAlwaysAllowed(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	assert.True(t, ig.Check(ctx, "").Allowed)
	assert.True(t, ig.Check(ctx, "").Allowed)
}

func TestIdempotencyGuard_RemoveAllowsRetry(t *testing.T) {
	ig := NewIdempotencyGuard()
	ctx := context.Background()

	ig.Check(ctx, "tx-1")
	ig.Remove("tx-1")

	assert.True(t, ig.Check(ctx, "tx-1").Allowed)
}
