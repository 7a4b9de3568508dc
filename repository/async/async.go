/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package async

import (
	"context"
	"fmt"
	"time"

	"github.com/suparena/mapstore/convert"
	"github.com/suparena/mapstore/driver"
	"github.com/suparena/mapstore/errors"
	"github.com/suparena/mapstore/events"
	"github.com/suparena/mapstore/repository"
	"github.com/suparena/mapstore/storagemodels"
)

// Result carries the outcome of one asynchronous operation: the round-tripped
// entity on success, or the failure wrapped as an asynchronous-execution
// error. Every operation delivers exactly one Result per entity and then
// closes its channel.
type Result[T any] struct {
	Entity *T
	Err    error
}

// FindResult carries the outcome of an asynchronous find: the ordered list of
// matching entities, or the failure.
type FindResult[T any] struct {
	Entities []*T
	Err      error
}

// Repository is the asynchronous repository façade for entities of type T.
// Argument validation and capability checks happen synchronously, before any
// work is dispatched; everything after dispatch is reported through the
// returned channel and mirrored on the side error channel, never by panicking
// back to the caller.
//
// Work is handed to the driver's executor (driver.AsyncExecutor); the core
// does not manage that executor and dispatched operations are not
// cancellable through this interface.
type Repository[T any] struct {
	manager driver.BucketManager
	exec    driver.AsyncExecutor
	conv    convert.Converter[T]
	flow    *repository.Workflow[T]
	errs    chan error
}

// New constructs an asynchronous repository. It fails with an
// unsupported-operation error when the manager has no asynchronous
// capability.
func New[T any](manager driver.BucketManager, converter convert.Converter[T], notifier *events.Notifier, opts ...Option) (*Repository[T], error) {
	if manager == nil {
		return nil, errors.NewNilArgumentError("manager")
	}
	exec, ok := manager.(driver.AsyncExecutor)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("asynchronous execution", managerName(manager))
	}
	flow, err := repository.NewWorkflow[T](converter, notifier)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Repository[T]{
		manager: manager,
		exec:    exec,
		conv:    converter,
		flow:    flow,
		errs:    make(chan error, options.ErrorBuffer),
	}, nil
}

// Errors returns the side error channel. Every asynchronous failure is
// offered to it with a non-blocking send; when nobody drains the channel,
// overflowing errors are dropped rather than blocking drivers.
func (r *Repository[T]) Errors() <-chan error {
	return r.errs
}

// Save stores an entity asynchronously. The returned channel receives the
// saved entity exactly once, after the driver operation settles.
func (r *Repository[T]) Save(ctx context.Context, entity *T) (<-chan Result[T], error) {
	if entity == nil {
		return nil, errors.NewNilArgumentError("entity")
	}
	return r.dispatch(ctx, "save", entity, r.putAction()), nil
}

// SaveWithTTL stores an entity asynchronously with a time-to-live.
func (r *Repository[T]) SaveWithTTL(ctx context.Context, entity *T, ttl time.Duration) (<-chan Result[T], error) {
	if entity == nil {
		return nil, errors.NewNilArgumentError("entity")
	}
	action, err := r.ttlAction(ttl)
	if err != nil {
		return nil, err
	}
	return r.dispatch(ctx, "save", entity, action), nil
}

// SaveAll stores a collection asynchronously, one independent save per
// entity: no atomicity, no cross-entity ordering, and a failure on one item
// never prevents attempts on the rest. A nil element fails only that element.
// The channel receives one Result per entity and is then closed. Drivers with
// a true bulk primitive express it below this façade, in their multi-key
// operations.
func (r *Repository[T]) SaveAll(ctx context.Context, entities []*T) (<-chan Result[T], error) {
	if entities == nil {
		return nil, errors.NewNilArgumentError("entities")
	}
	return r.dispatchAll(ctx, "save", entities, r.putAction()), nil
}

// SaveAllWithTTL stores a collection asynchronously with a time-to-live.
func (r *Repository[T]) SaveAllWithTTL(ctx context.Context, entities []*T, ttl time.Duration) (<-chan Result[T], error) {
	if entities == nil {
		return nil, errors.NewNilArgumentError("entities")
	}
	action, err := r.ttlAction(ttl)
	if err != nil {
		return nil, err
	}
	return r.dispatchAll(ctx, "save", entities, action), nil
}

// Update updates an entity asynchronously. The shape is identical to Save;
// the distinction is driver-side intent, expressed through the optional
// Updater capability and falling back to Put without it.
func (r *Repository[T]) Update(ctx context.Context, entity *T) (<-chan Result[T], error) {
	if entity == nil {
		return nil, errors.NewNilArgumentError("entity")
	}
	return r.dispatch(ctx, "update", entity, r.updateAction()), nil
}

// Delete executes a delete query asynchronously. The returned channel
// receives exactly one value: nil on success, the failure otherwise. Deletes
// carry no entity payload, so no conversion or notification is involved.
func (r *Repository[T]) Delete(ctx context.Context, query *storagemodels.DeleteParams) (<-chan error, error) {
	if query == nil {
		return nil, errors.NewNilArgumentError("query")
	}
	runner, ok := r.manager.(driver.QueryRunner)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("delete queries", managerName(r.manager))
	}

	done := make(chan error, 1)
	r.exec.Go(func() {
		defer close(done)
		err := guard(func() error { return runner.ExecuteDelete(ctx, query) })
		if err != nil {
			err = r.report("delete", err)
		}
		done <- err
	})
	return done, nil
}

// Find executes a query asynchronously. The returned channel receives
// exactly one FindResult holding the matching entities in driver order;
// values that do not convert to a T are dropped.
func (r *Repository[T]) Find(ctx context.Context, query *storagemodels.QueryParams) (<-chan FindResult[T], error) {
	if query == nil {
		return nil, errors.NewNilArgumentError("query")
	}
	runner, ok := r.manager.(driver.QueryRunner)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("queries", managerName(r.manager))
	}

	out := make(chan FindResult[T], 1)
	r.exec.Go(func() {
		defer close(out)

		var natives []*storagemodels.NativeEntity
		err := guard(func() error {
			var qErr error
			natives, qErr = runner.ExecuteQuery(ctx, query)
			return qErr
		})
		if err != nil {
			out <- FindResult[T]{Err: r.report("find", err)}
			return
		}

		entities := make([]*T, 0, len(natives))
		for _, native := range natives {
			entity, convErr := r.conv.FromNative(native)
			if convErr != nil {
				out <- FindResult[T]{Err: r.report("find", convErr)}
				return
			}
			if entity == nil {
				continue
			}
			entities = append(entities, entity)
		}
		out <- FindResult[T]{Entities: entities}
	})
	return out, nil
}

// putAction wraps the manager's Put as a workflow driver action.
func (r *Repository[T]) putAction() repository.DriverAction {
	return func(ctx context.Context, native *storagemodels.NativeEntity) (*storagemodels.NativeEntity, error) {
		if err := r.manager.Put(ctx, native); err != nil {
			return nil, err
		}
		return native, nil
	}
}

// ttlAction wraps the manager's TTL put, validating capability and ttl
// synchronously.
func (r *Repository[T]) ttlAction(ttl time.Duration) (repository.DriverAction, error) {
	ttlPutter, ok := r.manager.(driver.TTLPutter)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("TTL", managerName(r.manager))
	}
	if ttl <= 0 {
		return nil, errors.NewNilArgumentError("ttl")
	}
	return func(ctx context.Context, native *storagemodels.NativeEntity) (*storagemodels.NativeEntity, error) {
		if err := ttlPutter.PutWithTTL(ctx, native, ttl); err != nil {
			return nil, err
		}
		return native, nil
	}, nil
}

// updateAction prefers the Updater capability, falling back to Put.
func (r *Repository[T]) updateAction() repository.DriverAction {
	if updater, ok := r.manager.(driver.Updater); ok {
		return func(ctx context.Context, native *storagemodels.NativeEntity) (*storagemodels.NativeEntity, error) {
			if err := updater.Update(ctx, native); err != nil {
				return nil, err
			}
			return native, nil
		}
	}
	return r.putAction()
}

// dispatch runs one workflow pass on the driver's executor and delivers its
// single Result.
func (r *Repository[T]) dispatch(ctx context.Context, op string, entity *T, action repository.DriverAction) <-chan Result[T] {
	out := make(chan Result[T], 1)
	r.exec.Go(func() {
		defer close(out)
		out <- r.runOne(ctx, op, entity, action)
	})
	return out
}

// dispatchAll fans a collection out into independent per-item workflow runs.
// The channel is buffered for the whole batch so fire-and-forget callers
// leak nothing.
func (r *Repository[T]) dispatchAll(ctx context.Context, op string, entities []*T, action repository.DriverAction) <-chan Result[T] {
	size := len(entities)
	if size == 0 {
		size = 1
	}
	out := make(chan Result[T], size)
	r.exec.Go(func() {
		defer close(out)
		for _, entity := range entities {
			out <- r.runOne(ctx, op, entity, action)
		}
	})
	return out
}

// runOne executes one guarded workflow pass and classifies the failure.
func (r *Repository[T]) runOne(ctx context.Context, op string, entity *T, action repository.DriverAction) Result[T] {
	var saved *T
	err := guard(func() error {
		var runErr error
		saved, runErr = r.flow.Run(ctx, entity, action)
		return runErr
	})
	if err != nil {
		return Result[T]{Err: r.report(op, err)}
	}
	return Result[T]{Entity: saved}
}

// report wraps an in-flight failure as an asynchronous-execution error and
// offers it to the side error channel. Per-item contract errors (nil batch
// elements) pass through unwrapped.
func (r *Repository[T]) report(op string, err error) error {
	if !errors.IsNilArgument(err) {
		err = errors.NewAsyncExecutionError(op, err)
	}
	select {
	case r.errs <- err:
	default:
	}
	return err
}

// guard runs fn, converting a panic into an error so that a failing driver
// or listener can never unwind into the executor.
func guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during asynchronous call: %v", p)
		}
	}()
	return fn()
}

func managerName(m driver.BucketManager) string {
	type named interface{ Name() string }
	if n, ok := m.(named); ok {
		return n.Name()
	}
	return ""
}
