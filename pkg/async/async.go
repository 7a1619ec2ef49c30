package async

import (
	"context"
	"errors"
)

// ErrNilFuture is returned by helpers given a nil Future.
var ErrNilFuture = errors.New("async: nil future")

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to end, whichever comes first.
// The computation keeps running when ctx ends first.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in its own goroutine and returns a Future for its result.
// A context that is already done completes the Future with ctx.Err() without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Then runs callback with the result once f completes. The callback runs on
// its own goroutine and the returned Future completes after it returns.
func Then[U any](f *Future[U], callback func(U, error)) *Future[struct{}] {
	next := &Future[struct{}]{done: make(chan struct{})}
	if f == nil {
		next.err = ErrNilFuture
		close(next.done)
		return next
	}

	go func() {
		defer close(next.done)
		callback(f.Await())
	}()

	return next
}
