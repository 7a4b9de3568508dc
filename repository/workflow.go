/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"context"
	"fmt"

	"github.com/suparena/mapstore/convert"
	"github.com/suparena/mapstore/errors"
	"github.com/suparena/mapstore/events"
	"github.com/suparena/mapstore/storagemodels"
)

// DriverAction is the actual driver call wrapped by the workflow: it takes
// the native value to persist and returns the native value the driver
// produced (for a put, the stored value itself).
type DriverAction func(ctx context.Context, native *storagemodels.NativeEntity) (*storagemodels.NativeEntity, error)

// Workflow sequences conversion, notification, and driver invocation for a
// single save/update-style operation. The ordering is the contract:
//
//	PreEntity → ToNative → PreNative → action → PostNative → FromNative → PostEntity
//
// On a driver failure the error propagates unchanged and no further workflow
// steps execute.
type Workflow[T any] struct {
	converter convert.Converter[T]
	notifier  *events.Notifier
}

// NewWorkflow creates a Workflow. A nil notifier is replaced with an empty
// one so that callers without listeners need no special casing.
func NewWorkflow[T any](converter convert.Converter[T], notifier *events.Notifier) (*Workflow[T], error) {
	if converter == nil {
		return nil, errors.NewNilArgumentError("converter")
	}
	if notifier == nil {
		notifier = events.NewNotifier()
	}
	return &Workflow[T]{converter: converter, notifier: notifier}, nil
}

// Notifier returns the notifier this workflow fires events on.
func (w *Workflow[T]) Notifier() *events.Notifier {
	return w.notifier
}

// Run executes the workflow for one entity and returns the round-tripped
// result. The returned entity is always the driver's result converted back,
// never the input reference.
func (w *Workflow[T]) Run(ctx context.Context, entity *T, action DriverAction) (*T, error) {
	if entity == nil {
		return nil, errors.NewNilArgumentError("entity")
	}
	if action == nil {
		return nil, errors.NewNilArgumentError("action")
	}

	w.notifier.FirePreEntity(entity)

	native, err := w.converter.ToNative(entity)
	if err != nil {
		return nil, err
	}

	w.notifier.FirePreNative(native)

	result, err := action(ctx, native)
	if err != nil {
		// Driver errors propagate unchanged; post notifications are skipped.
		return nil, err
	}

	w.notifier.FirePostNative(result)

	out, err := w.converter.FromNative(result)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NewConversionError(fmt.Sprintf("%T", entity), fmt.Errorf("driver result did not convert back to an entity"))
	}

	w.notifier.FirePostEntity(out)

	return out, nil
}
