/*
Package driver defines the storage contract the mapstore mapping core
consumes: the required BucketManager interface plus optional capabilities
discovered by type assertion.

Capabilities:

  - TTLPutter — store with a time-to-live
  - Updater — replace-existing intent for updates
  - QueryRunner — execute opaque query/delete criteria
  - AsyncExecutor — hand work off to a driver-chosen executor

Repositories assert for a capability at the point of use and fail with an
unsupported-operation error when it is missing; they never emulate a missing
capability themselves.

Implementations:
  - ddb: DynamoDB implementation of all capabilities
  - mock: in-memory implementation for testing
*/
package driver
