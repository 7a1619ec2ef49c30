package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevelopit/website/pkg/ratelimiter"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var testConfig = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Minute,
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))

	tests := []struct {
		name   string
		store  ratelimiter.Store
		config ratelimiter.Config
	}{
		{"nil store", nil, testConfig},
		{"zero capacity", store, ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", store, ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{"zero interval", store, ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(tt.store, tt.config)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	t.Run("invalid token count", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(store, testConfig)
		require.NoError(t, err)
		_, err = b.AllowN(context.Background(), "k", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})
}

// storeFactories builds each store implementation against a shared manual clock.
func storeFactories() map[string]func(t *testing.T, clock *manualClock) ratelimiter.Store {
	return map[string]func(t *testing.T, clock *manualClock) ratelimiter.Store{
		"memory": func(t *testing.T, clock *manualClock) ratelimiter.Store {
			s := ratelimiter.NewMemoryStore(
				ratelimiter.WithCleanupInterval(0),
				ratelimiter.WithClock(clock.Now),
			)
			t.Cleanup(s.Close)
			return s
		},
		"redis": func(t *testing.T, clock *manualClock) ratelimiter.Store {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return ratelimiter.NewRedisStore(client, ratelimiter.WithRedisClock(clock.Now))
		},
	}
}

func TestBucket_Stores(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("allows up to capacity then denies", func(t *testing.T) {
				clock := newManualClock()
				b, err := ratelimiter.NewBucket(newStore(t, clock), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				for i := range testConfig.Capacity {
					res, err := b.Allow(ctx, "1.2.3.4")
					require.NoError(t, err)
					assert.True(t, res.Allowed())
					assert.Equal(t, testConfig.Capacity-i-1, res.Remaining)
					assert.Equal(t, testConfig.Capacity, res.Limit)
				}

				res, err := b.Allow(ctx, "1.2.3.4")
				require.NoError(t, err)
				assert.False(t, res.Allowed())
			})

			t.Run("denied requests do not drain the bucket", func(t *testing.T) {
				clock := newManualClock()
				b, err := ratelimiter.NewBucket(newStore(t, clock), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				res, err := b.AllowN(ctx, "k", 2)
				require.NoError(t, err)
				require.True(t, res.Allowed())

				res, err = b.AllowN(ctx, "k", 2)
				require.NoError(t, err)
				assert.False(t, res.Allowed())

				res, err = b.Allow(ctx, "k")
				require.NoError(t, err)
				assert.True(t, res.Allowed(), "the remaining token must still be available")
				assert.Equal(t, 0, res.Remaining)
			})

			t.Run("refills over time up to capacity", func(t *testing.T) {
				clock := newManualClock()
				b, err := ratelimiter.NewBucket(newStore(t, clock), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				_, err = b.AllowN(ctx, "k", testConfig.Capacity)
				require.NoError(t, err)

				clock.Advance(testConfig.RefillInterval)
				res, err := b.Allow(ctx, "k")
				require.NoError(t, err)
				assert.True(t, res.Allowed())
				assert.Equal(t, 0, res.Remaining)

				clock.Advance(24 * time.Hour)
				res, err = b.Allow(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, testConfig.Capacity-1, res.Remaining)
			})

			t.Run("keys are independent", func(t *testing.T) {
				clock := newManualClock()
				b, err := ratelimiter.NewBucket(newStore(t, clock), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				_, err = b.AllowN(ctx, "a", testConfig.Capacity)
				require.NoError(t, err)

				res, err := b.Allow(ctx, "b")
				require.NoError(t, err)
				assert.True(t, res.Allowed())
			})

			t.Run("reset restores full capacity", func(t *testing.T) {
				clock := newManualClock()
				b, err := ratelimiter.NewBucket(newStore(t, clock), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				_, err = b.AllowN(ctx, "k", testConfig.Capacity)
				require.NoError(t, err)
				require.NoError(t, b.Reset(ctx, "k"))

				res, err := b.Allow(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, testConfig.Capacity-1, res.Remaining)
			})
		})
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), testConfig)
	require.NoError(t, err)

	_, err = b.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       50,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
