// Package async provides generic helpers for running a computation on its own
// goroutine and waiting for the result.
//
// Async starts the function and returns a *Future immediately. Callers wait
// with Await or AwaitContext, poll with IsComplete, select on Done, or chain a
// callback with Then:
//
//	future := async.Async(ctx, sub, client.Send)
//	async.Then(future, func(res contact.Result, err error) {
//		// update UI state
//	})
//
// If ctx is already cancelled when Async is called, the Future completes with
// ctx.Err() and the function is never invoked. Cancellation afterwards is up to
// the function itself.
package async
