/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"context"
	"time"

	"github.com/suparena/mapstore/convert"
	"github.com/suparena/mapstore/driver"
	"github.com/suparena/mapstore/errors"
	"github.com/suparena/mapstore/events"
	"github.com/suparena/mapstore/storagemodels"
)

// KeyValue is the synchronous repository façade for entities of type T. It
// runs put operations through the persistence workflow and delegates reads
// and removals to the bucket manager, converting on the way back. It holds no
// mutable state of its own; concurrent calls interleave freely.
type KeyValue[T any] struct {
	manager   driver.BucketManager
	converter convert.Converter[T]
	flow      *Workflow[T]
}

// New constructs a KeyValue repository over the given manager and converter.
// Listeners on the notifier observe every put through the four lifecycle
// notifications; a nil notifier means no listeners.
func New[T any](manager driver.BucketManager, converter convert.Converter[T], notifier *events.Notifier) (*KeyValue[T], error) {
	if manager == nil {
		return nil, errors.NewNilArgumentError("manager")
	}
	flow, err := NewWorkflow[T](converter, notifier)
	if err != nil {
		return nil, err
	}
	return &KeyValue[T]{manager: manager, converter: converter, flow: flow}, nil
}

// Workflow exposes the underlying workflow, mainly so the asynchronous façade
// can share it.
func (r *KeyValue[T]) Workflow() *Workflow[T] {
	return r.flow
}

// Put stores an entity and returns the round-tripped result.
func (r *KeyValue[T]) Put(ctx context.Context, entity *T) (*T, error) {
	return r.flow.Run(ctx, entity, func(ctx context.Context, native *storagemodels.NativeEntity) (*storagemodels.NativeEntity, error) {
		if err := r.manager.Put(ctx, native); err != nil {
			return nil, err
		}
		return native, nil
	})
}

// PutWithTTL stores an entity with a time-to-live. It fails with an
// unsupported-operation error when the manager has no TTL capability, before
// any workflow step runs.
func (r *KeyValue[T]) PutWithTTL(ctx context.Context, entity *T, ttl time.Duration) (*T, error) {
	ttlPutter, ok := r.manager.(driver.TTLPutter)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("TTL", driverName(r.manager))
	}
	if ttl <= 0 {
		return nil, errors.NewNilArgumentError("ttl")
	}
	return r.flow.Run(ctx, entity, func(ctx context.Context, native *storagemodels.NativeEntity) (*storagemodels.NativeEntity, error) {
		if err := ttlPutter.PutWithTTL(ctx, native, ttl); err != nil {
			return nil, err
		}
		return native, nil
	})
}

// Get fetches an entity by key. Both an absent key and a present value that
// does not convert to a T yield (nil, nil).
func (r *KeyValue[T]) Get(ctx context.Context, key string) (*T, error) {
	if key == "" {
		return nil, errors.NewNilArgumentError("key")
	}
	native, err := r.manager.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if native == nil {
		return nil, nil
	}
	return r.converter.FromNative(native)
}

// GetAll fetches entities for multiple keys. Values that do not convert to a
// T are silently dropped; the returned order follows the driver's iteration
// order, with no reordering or dedup.
func (r *KeyValue[T]) GetAll(ctx context.Context, keys []string) ([]*T, error) {
	if keys == nil {
		return nil, errors.NewNilArgumentError("keys")
	}
	natives, err := r.manager.GetAll(ctx, keys)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(natives))
	for _, native := range natives {
		entity, err := r.converter.FromNative(native)
		if err != nil {
			return nil, err
		}
		if entity == nil {
			continue
		}
		out = append(out, entity)
	}
	return out, nil
}

// Remove deletes the value stored under key. No conversion or notification is
// involved; removal carries no entity payload.
func (r *KeyValue[T]) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewNilArgumentError("key")
	}
	return r.manager.Remove(ctx, key)
}

// RemoveAll deletes the values stored under keys.
func (r *KeyValue[T]) RemoveAll(ctx context.Context, keys []string) error {
	if keys == nil {
		return errors.NewNilArgumentError("keys")
	}
	return r.manager.RemoveAll(ctx, keys)
}

// driverName names a manager for error messages.
func driverName(m driver.BucketManager) string {
	type named interface{ Name() string }
	if n, ok := m.(named); ok {
		return n.Name()
	}
	return ""
}
