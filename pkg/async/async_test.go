package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevelopit/website/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
			return fmt.Sprintf("Number: %d", n), nil
		})

		res, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)
		assert.True(t, future.IsComplete())
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		future := async.Async(context.Background(), "x", func(context.Context, string) (int, error) {
			return 0, boom
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context skips function", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		future := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called.Store(true)
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called.Load())
	})

	t.Run("is complete while running", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		future := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 1, nil
		})

		assert.False(t, future.IsComplete())
		close(release)
		<-future.Done()
		assert.True(t, future.IsComplete())
	})
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	future := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := future.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, future.IsComplete())
}

func TestThen(t *testing.T) {
	t.Parallel()

	t.Run("callback receives result", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 2, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

		var got atomic.Int64
		_, err := async.Then(future, func(n int, err error) {
			if err == nil {
				got.Store(int64(n))
			}
		}).Await()

		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Load())
	})

	t.Run("nil future", func(t *testing.T) {
		t.Parallel()

		_, err := async.Then[int](nil, func(int, error) {}).Await()
		assert.ErrorIs(t, err, async.ErrNilFuture)
	})
}
