package quota

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindowLimiter_EleventhCallRejected(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewFixedWindowLimiter(store, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		d, err := limiter.Check(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, 10-(i+1), d.Remaining)
	}

	d, err := limiter.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Positive(t, d.RetryAfter(time.Now()))
}

func TestFixedWindowLimiter_WindowResets(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	limiter := NewFixedWindowLimiter(store, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		_, err := limiter.Check(ctx, "client")
		require.NoError(t, err)
	}

	// 窗口过期后第一次调用被允许，计数从 1 重新开始
	current = current.Add(61 * time.Second)
	d, err := limiter.Check(ctx, "client")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 9, d.Remaining)
	assert.Equal(t, current.Add(time.Minute), d.ResetAt)
}

func TestFixedWindowLimiter_KeysIndependent(t *testing.T) {
	limiter := NewFixedWindowLimiter(NewMemoryStore(), 1, time.Minute)
	ctx := context.Background()

	d, err := limiter.Check(ctx, "a")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = limiter.Check(ctx, "a")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = limiter.Check(ctx, "b")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestFixedWindowLimiter_ConcurrentNeverOveradmits(t *testing.T) {
	const limit = 10
	limiter := NewFixedWindowLimiter(NewMemoryStore(), limit, time.Minute)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := limiter.Check(ctx, "shared")
			if err != nil {
				return
			}
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
}
