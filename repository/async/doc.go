/*
Package async provides the asynchronous repository façade.

Repository[T] mirrors the synchronous repository's write surface but settles
every operation on a channel instead of a return value:

	repo, err := async.New[Player](bucket, converter, notifier)
	done, err := repo.Save(ctx, &player)
	res := <-done // exactly one Result, then the channel closes

Argument validation and capability checks happen synchronously: a nil entity,
a nil query, or a driver without the required capability fails on the calling
goroutine, before anything is dispatched. Once dispatched, a failure is
wrapped in an asynchronous-execution error, delivered on the operation's
channel, and mirrored to the repository's side error channel (Errors). An
asynchronous failure never panics into caller code.

SaveAll fans a collection out into independent per-entity saves. There is no
batch atomicity and no ordering guarantee between entities; the channel
receives one Result per entity and is buffered for the whole batch, so
callers that do not consume results leak nothing.

Work runs on the driver's executor (driver.AsyncExecutor). Constructing a
Repository over a manager without that capability fails with an
unsupported-operation error.
*/
package async
