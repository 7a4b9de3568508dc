/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package driver

import (
	"context"
	"time"

	"github.com/suparena/mapstore/storagemodels"
)

// BucketManager is the storage contract the mapping core requires from a
// driver. Implementations are external to the core; the core never mutates
// the manager, only invokes its operations. Thread-safety of concurrent
// invocation is the driver's responsibility.
type BucketManager interface {
	// Put stores a native value, inserting or replacing.
	Put(ctx context.Context, entity *storagemodels.NativeEntity) error

	// Get fetches a native value by key. Absent keys yield (nil, nil).
	Get(ctx context.Context, key string) (*storagemodels.NativeEntity, error)

	// GetAll fetches native values for multiple keys. Absent keys are
	// omitted; the returned order is the driver's iteration order.
	GetAll(ctx context.Context, keys []string) ([]*storagemodels.NativeEntity, error)

	// Remove deletes the value stored under key.
	Remove(ctx context.Context, key string) error

	// RemoveAll deletes the values stored under keys.
	RemoveAll(ctx context.Context, keys []string) error
}

// TTLPutter is implemented by drivers that support storing values with a
// time-to-live. A repository asked for a TTL put on a manager without this
// capability fails with an unsupported-operation error.
type TTLPutter interface {
	PutWithTTL(ctx context.Context, entity *storagemodels.NativeEntity, ttl time.Duration) error
}

// Updater is implemented by drivers that distinguish replace-existing intent
// from insert-or-replace. Without it, update operations fall back to Put.
type Updater interface {
	Update(ctx context.Context, entity *storagemodels.NativeEntity) error
}

// QueryRunner is implemented by drivers that can execute opaque query and
// delete criteria. The mapping core passes the criteria through unchanged.
type QueryRunner interface {
	ExecuteQuery(ctx context.Context, params *storagemodels.QueryParams) ([]*storagemodels.NativeEntity, error)
	ExecuteDelete(ctx context.Context, params *storagemodels.DeleteParams) error
}

// AsyncExecutor is implemented by drivers with asynchronous capability. Go
// schedules fn on the driver-chosen executor and returns immediately; the
// asynchronous repository façade refuses managers without this capability.
type AsyncExecutor interface {
	Go(fn func())
}
