/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"sync"
	"time"

	"github.com/suparena/mapstore/storagemodels"
)

type entry struct {
	native  *storagemodels.NativeEntity
	expires *time.Time
}

// Bucket is an in-memory implementation of driver.BucketManager and all the
// optional driver capabilities. It records per-method call counts and allows
// error injection, which makes it suitable for exercising façade error paths.
type Bucket struct {
	mu    sync.RWMutex
	data  map[string]entry
	order []string
	calls map[string]int

	putErr         error
	putErrByKey    map[string]error
	getErr         error
	removeErr      error
	updateErr      error
	queryErr       error
	queryResults   []*storagemodels.NativeEntity
	deleteQueryErr error

	syncExec bool
}

// New creates a new mock Bucket.
func New() *Bucket {
	return &Bucket{
		data:        make(map[string]entry),
		calls:       make(map[string]int),
		putErrByKey: make(map[string]error),
	}
}

// WithPutError makes Put operations return an error
func (b *Bucket) WithPutError(err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.putErr = err
	return b
}

// WithPutErrorForKey makes Put fail only for the given storage key
func (b *Bucket) WithPutErrorForKey(key string, err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.putErrByKey[key] = err
	return b
}

// WithGetError makes Get and GetAll operations return an error
func (b *Bucket) WithGetError(err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getErr = err
	return b
}

// WithRemoveError makes Remove and RemoveAll operations return an error
func (b *Bucket) WithRemoveError(err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeErr = err
	return b
}

// WithUpdateError makes Update operations return an error
func (b *Bucket) WithUpdateError(err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateErr = err
	return b
}

// WithQueryError makes ExecuteQuery operations return an error
func (b *Bucket) WithQueryError(err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queryErr = err
	return b
}

// WithQueryResults fixes the result set returned by ExecuteQuery
func (b *Bucket) WithQueryResults(results []*storagemodels.NativeEntity) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queryResults = results
	return b
}

// WithDeleteQueryError makes ExecuteDelete operations return an error
func (b *Bucket) WithDeleteQueryError(err error) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteQueryErr = err
	return b
}

// WithSyncExec makes Go run work inline on the calling goroutine, which keeps
// asynchronous tests deterministic.
func (b *Bucket) WithSyncExec() *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncExec = true
	return b
}

// Put stores a native value, inserting or replacing.
func (b *Bucket) Put(ctx context.Context, native *storagemodels.NativeEntity) error {
	b.record("Put")
	if err := b.putFailure(native.Key); err != nil {
		return err
	}
	b.store(native, nil)
	return nil
}

// PutWithTTL stores a native value that expires after ttl.
func (b *Bucket) PutWithTTL(ctx context.Context, native *storagemodels.NativeEntity, ttl time.Duration) error {
	b.record("PutWithTTL")
	if err := b.putFailure(native.Key); err != nil {
		return err
	}
	expires := time.Now().Add(ttl)
	b.store(native, &expires)
	return nil
}

// Update replaces an existing value. Updating an absent key behaves like Put;
// the distinction is intent, which the mock only records.
func (b *Bucket) Update(ctx context.Context, native *storagemodels.NativeEntity) error {
	b.record("Update")
	if err := b.updateFailure(native.Key); err != nil {
		return err
	}
	b.store(native, nil)
	return nil
}

// Get fetches a native value by key; absent or expired keys yield (nil, nil).
func (b *Bucket) Get(ctx context.Context, key string) (*storagemodels.NativeEntity, error) {
	b.record("Get")
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.getErr != nil {
		return nil, b.getErr
	}
	e, ok := b.data[key]
	if !ok || expired(e) {
		return nil, nil
	}
	return e.native, nil
}

// GetAll fetches native values for multiple keys in request order, omitting
// absent entries.
func (b *Bucket) GetAll(ctx context.Context, keys []string) ([]*storagemodels.NativeEntity, error) {
	b.record("GetAll")
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.getErr != nil {
		return nil, b.getErr
	}
	var out []*storagemodels.NativeEntity
	for _, key := range keys {
		if e, ok := b.data[key]; ok && !expired(e) {
			out = append(out, e.native)
		}
	}
	return out, nil
}

// Remove deletes the value stored under key.
func (b *Bucket) Remove(ctx context.Context, key string) error {
	b.record("Remove")
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.removeErr != nil {
		return b.removeErr
	}
	b.drop(key)
	return nil
}

// RemoveAll deletes the values stored under keys.
func (b *Bucket) RemoveAll(ctx context.Context, keys []string) error {
	b.record("RemoveAll")
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.removeErr != nil {
		return b.removeErr
	}
	for _, key := range keys {
		b.drop(key)
	}
	return nil
}

// ExecuteQuery returns the injected result set when configured, otherwise all
// stored values in insertion order.
func (b *Bucket) ExecuteQuery(ctx context.Context, params *storagemodels.QueryParams) ([]*storagemodels.NativeEntity, error) {
	b.record("ExecuteQuery")
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.queryErr != nil {
		return nil, b.queryErr
	}
	if b.queryResults != nil {
		return b.queryResults, nil
	}
	var out []*storagemodels.NativeEntity
	for _, key := range b.order {
		if e, ok := b.data[key]; ok && !expired(e) {
			out = append(out, e.native)
		}
	}
	return out, nil
}

// ExecuteDelete removes every stored value. The criteria are opaque to the
// core, so the mock treats any delete query as match-all.
func (b *Bucket) ExecuteDelete(ctx context.Context, params *storagemodels.DeleteParams) error {
	b.record("ExecuteDelete")
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteQueryErr != nil {
		return b.deleteQueryErr
	}
	b.data = make(map[string]entry)
	b.order = nil
	return nil
}

// Go runs fn on a new goroutine, or inline when WithSyncExec was set. The
// flag is read outside fn so inline work may reenter the bucket.
func (b *Bucket) Go(fn func()) {
	b.mu.RLock()
	inline := b.syncExec
	b.mu.RUnlock()
	if inline {
		fn()
		return
	}
	go fn()
}

// Helper methods for testing

// Calls returns how many times the named method was invoked.
func (b *Bucket) Calls(method string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[method]
}

// TotalCalls returns the total number of driver invocations.
func (b *Bucket) TotalCalls() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// Count returns the number of stored values.
func (b *Bucket) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Keys returns the stored keys in insertion order.
func (b *Bucket) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Clear removes all data and resets call counters.
func (b *Bucket) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make(map[string]entry)
	b.order = nil
	b.calls = make(map[string]int)
}

func (b *Bucket) store(native *storagemodels.NativeEntity, expires *time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.data[native.Key]; !exists {
		b.order = append(b.order, native.Key)
	}
	b.data[native.Key] = entry{native: native, expires: expires}
}

// drop removes a key; callers hold the write lock.
func (b *Bucket) drop(key string) {
	if _, ok := b.data[key]; !ok {
		return
	}
	delete(b.data, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// putFailure reports the injected failure for a write, if any.
func (b *Bucket) putFailure(key string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.putErr != nil {
		return b.putErr
	}
	return b.putErrByKey[key]
}

// updateFailure reports the injected failure for an update, if any. Per-key
// put errors apply to updates as well.
func (b *Bucket) updateFailure(key string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.updateErr != nil {
		return b.updateErr
	}
	return b.putErrByKey[key]
}

func (b *Bucket) record(method string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[method]++
}

func expired(e entry) bool {
	return e.expires != nil && !e.expires.After(time.Now())
}
