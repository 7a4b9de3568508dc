/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapstore

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/mapstore/convert"
	"github.com/suparena/mapstore/driver"
	"github.com/suparena/mapstore/events"
	"github.com/suparena/mapstore/repository"
	"github.com/suparena/mapstore/repository/async"
)

// NewRepository wires the default pieces into a synchronous repository for T:
// the index-map converter registered for T and the given bucket manager.
// Listeners on the notifier observe every put; a nil notifier means none.
func NewRepository[T any](manager driver.BucketManager, notifier *events.Notifier) (*repository.KeyValue[T], error) {
	return repository.New[T](manager, convert.NewIndexMapConverter[T](), notifier)
}

// NewAsyncRepository wires the default pieces into an asynchronous repository
// for T. The manager must carry the asynchronous capability.
func NewAsyncRepository[T any](manager driver.BucketManager, notifier *events.Notifier, opts ...async.Option) (*async.Repository[T], error) {
	return async.New[T](manager, convert.NewIndexMapConverter[T](), notifier, opts...)
}

// TypedRepositories holds named synchronous repositories for a single type T,
// so an application can address several buckets of the same entity kind
// ("primary", "archive") by name.
type TypedRepositories[T any] struct {
	mu    sync.RWMutex
	repos map[string]*repository.KeyValue[T]
}

// NewTypedRepositories creates an empty registry for type T.
func NewTypedRepositories[T any]() *TypedRepositories[T] {
	return &TypedRepositories[T]{
		repos: make(map[string]*repository.KeyValue[T]),
	}
}

// Register adds a repository under the given key.
func (tr *TypedRepositories[T]) Register(key string, repo *repository.KeyValue[T]) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.repos[key]; exists {
		return fmt.Errorf("repository with key %q already registered", key)
	}
	tr.repos[key] = repo
	return nil
}

// Get retrieves a repository by key.
func (tr *TypedRepositories[T]) Get(key string) (*repository.KeyValue[T], error) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	repo, exists := tr.repos[key]
	if !exists {
		return nil, fmt.Errorf("repository with key %q not found", key)
	}
	return repo, nil
}

// Remove deletes a repository by key.
func (tr *TypedRepositories[T]) Remove(key string) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.repos[key]; !exists {
		return fmt.Errorf("repository with key %q not found", key)
	}
	delete(tr.repos, key)
	return nil
}

// List returns all registered repository keys.
func (tr *TypedRepositories[T]) List() []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	keys := make([]string, 0, len(tr.repos))
	for k := range tr.repos {
		keys = append(keys, k)
	}
	return keys
}

// MultiTypeRepositories manages TypedRepositories instances across entity
// types. The same key may map to repositories of different types without
// collision.
type MultiTypeRepositories struct {
	mu       sync.RWMutex
	registry map[reflect.Type]interface{}
}

// NewMultiTypeRepositories creates a new MultiTypeRepositories.
func NewMultiTypeRepositories() *MultiTypeRepositories {
	return &MultiTypeRepositories{
		registry: make(map[reflect.Type]interface{}),
	}
}

// GetTypedRepositories returns the TypedRepositories for T, creating it if
// necessary.
func GetTypedRepositories[T any](mtr *MultiTypeRepositories) *TypedRepositories[T] {
	mtr.mu.Lock()
	defer mtr.mu.Unlock()

	var zero T
	typ := reflect.TypeOf(zero)

	if existing, ok := mtr.registry[typ]; ok {
		return existing.(*TypedRepositories[T])
	}

	created := NewTypedRepositories[T]()
	mtr.registry[typ] = created
	return created
}

// RegisterRepository registers a repository for type T under key.
func RegisterRepository[T any](mtr *MultiTypeRepositories, key string, repo *repository.KeyValue[T]) error {
	return GetTypedRepositories[T](mtr).Register(key, repo)
}

// GetRepository retrieves the repository for type T under key.
func GetRepository[T any](mtr *MultiTypeRepositories, key string) (*repository.KeyValue[T], error) {
	return GetTypedRepositories[T](mtr).Get(key)
}

// RemoveRepository removes the repository for type T under key.
func RemoveRepository[T any](mtr *MultiTypeRepositories, key string) error {
	return GetTypedRepositories[T](mtr).Remove(key)
}

// ListRepositories lists the repository keys registered for type T.
func ListRepositories[T any](mtr *MultiTypeRepositories) []string {
	return GetTypedRepositories[T](mtr).List()
}
