/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package events

import (
	"sync"

	"github.com/suparena/mapstore/storagemodels"
)

// Listener receives the four lifecycle notifications fired around a
// persistence operation. The hook set is closed on purpose: the fixed order
// is the contract, and an open-ended event bus would obscure it.
type Listener interface {
	// PreEntity fires when the originating method is first invoked, before
	// any conversion.
	PreEntity(entity any)

	// PreNative fires after the entity has been converted to native form,
	// before the driver call.
	PreNative(native *storagemodels.NativeEntity)

	// PostNative fires after the driver call returns a native value, before
	// reverse conversion.
	PostNative(native *storagemodels.NativeEntity)

	// PostEntity fires after the native result has been converted back to an
	// entity, as the last step before returning to the caller.
	PostEntity(entity any)
}

// ListenerFuncs adapts four optional callback slots into a Listener. Nil
// slots are skipped.
type ListenerFuncs struct {
	OnPreEntity  func(entity any)
	OnPreNative  func(native *storagemodels.NativeEntity)
	OnPostNative func(native *storagemodels.NativeEntity)
	OnPostEntity func(entity any)
}

func (l *ListenerFuncs) PreEntity(entity any) {
	if l.OnPreEntity != nil {
		l.OnPreEntity(entity)
	}
}

func (l *ListenerFuncs) PreNative(native *storagemodels.NativeEntity) {
	if l.OnPreNative != nil {
		l.OnPreNative(native)
	}
}

func (l *ListenerFuncs) PostNative(native *storagemodels.NativeEntity) {
	if l.OnPostNative != nil {
		l.OnPostNative(native)
	}
}

func (l *ListenerFuncs) PostEntity(entity any) {
	if l.OnPostEntity != nil {
		l.OnPostEntity(entity)
	}
}

// Notifier delivers lifecycle notifications to registered listeners.
// Notifications are fire-and-forget: a panicking listener is recovered and
// never reaches the calling operation. Notifier is safe for concurrent use;
// it holds no state beyond the listener list.
type Notifier struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewNotifier creates a Notifier with an optional initial set of listeners.
func NewNotifier(listeners ...Listener) *Notifier {
	return &Notifier{listeners: listeners}
}

// Register adds a listener. Listeners are notified in registration order.
func (n *Notifier) Register(l Listener) {
	if l == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// FirePreEntity delivers the pre-entity notification.
func (n *Notifier) FirePreEntity(entity any) {
	for _, l := range n.snapshot() {
		deliver(func() { l.PreEntity(entity) })
	}
}

// FirePreNative delivers the pre-native notification.
func (n *Notifier) FirePreNative(native *storagemodels.NativeEntity) {
	for _, l := range n.snapshot() {
		deliver(func() { l.PreNative(native) })
	}
}

// FirePostNative delivers the post-native notification.
func (n *Notifier) FirePostNative(native *storagemodels.NativeEntity) {
	for _, l := range n.snapshot() {
		deliver(func() { l.PostNative(native) })
	}
}

// FirePostEntity delivers the post-entity notification.
func (n *Notifier) FirePostEntity(entity any) {
	for _, l := range n.snapshot() {
		deliver(func() { l.PostEntity(entity) })
	}
}

func (n *Notifier) snapshot() []Listener {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Listener, len(n.listeners))
	copy(out, n.listeners)
	return out
}

// deliver runs one notification, swallowing panics. A listener failure is the
// listener's own responsibility, not the persistence operation's.
func deliver(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
