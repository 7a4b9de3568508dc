/*
Package mock provides an in-memory implementation of the driver contract for
testing.

The Bucket implements BucketManager plus every optional capability
(TTLPutter, Updater, QueryRunner, AsyncExecutor). Builder-style With* methods
inject failures, and per-method call counters let tests assert that argument
validation happened before any driver interaction:

	b := mock.New().WithPutErrorForKey("PLAYER#2", errBoom)
	...
	if b.TotalCalls() != 0 {
	    t.Error("driver should not have been touched")
	}

WithSyncExec makes the AsyncExecutor run work inline, keeping asynchronous
façade tests deterministic.
*/
package mock
