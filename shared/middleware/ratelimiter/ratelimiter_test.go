package ratelimiter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(rate, capacity float64, idle time.Duration) (*ClientRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(rate, capacity, idle)
	l.now = clock.Now
	return l, clock
}

func TestClientRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to capacity then denies", func(t *testing.T) {
		l, _ := newTestLimiter(1, 2, time.Minute)

		assert.True(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.1"))
		assert.False(t, l.Allow("10.0.0.1"))
	})

	t.Run("clients have separate buckets", func(t *testing.T) {
		l, _ := newTestLimiter(1, 1, time.Minute)

		assert.True(t, l.Allow("10.0.0.1"))
		assert.False(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.2"))
	})

	t.Run("refills over time", func(t *testing.T) {
		l, clock := newTestLimiter(1, 2, time.Minute)

		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))

		clock.Advance(1500 * time.Millisecond)
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("does not exceed capacity", func(t *testing.T) {
		l, clock := newTestLimiter(10, 2, time.Minute)

		assert.True(t, l.Allow("a"))
		clock.Advance(time.Hour)
		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("concurrent requests", func(t *testing.T) {
		l, _ := newTestLimiter(1, 10, time.Minute)

		var allowed atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if l.Allow("a") {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(10), allowed.Load())
		assert.Equal(t, 1, l.Len())
	})
}

func TestClientRateLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter(1, 1, time.Minute)

	l.Allow("old")
	clock.Advance(45 * time.Second)
	l.Allow("fresh")
	clock.Advance(30 * time.Second)

	require.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())

	// fresh client keeps its bucket state
	assert.True(t, l.Allow("fresh"))
}
