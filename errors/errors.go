/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNilArgument is returned when a required argument is nil or empty
	ErrNilArgument = errors.New("nil argument")

	// ErrUnsupported is returned when the underlying driver lacks a requested capability
	ErrUnsupported = errors.New("operation not supported by driver")

	// ErrAsyncExecution wraps failures that occur during an in-flight asynchronous call
	ErrAsyncExecution = errors.New("asynchronous execution failed")

	// ErrNotConvertible is returned when a native value cannot be converted back to an entity
	ErrNotConvertible = errors.New("value not convertible to entity")
)

// NilArgumentError reports a required argument that was nil (or an empty key)
type NilArgumentError struct {
	Name string
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("%s is required", e.Name)
}

func (e *NilArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}

// UnsupportedOperationError reports a capability the driver does not provide
type UnsupportedOperationError struct {
	Operation string
	Driver    string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Driver != "" {
		return fmt.Sprintf("driver %s does not support %s", e.Driver, e.Operation)
	}
	return fmt.Sprintf("driver does not support %s", e.Operation)
}

func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupported
}

// AsyncExecutionError wraps a failure raised while an asynchronous operation
// was in flight. It is delivered through the result channel, never by
// panicking back to the original caller.
type AsyncExecutionError struct {
	Operation string
	Cause     error
}

func (e *AsyncExecutionError) Error() string {
	return fmt.Sprintf("async %s failed: %v", e.Operation, e.Cause)
}

func (e *AsyncExecutionError) Unwrap() error {
	return e.Cause
}

func (e *AsyncExecutionError) Is(target error) bool {
	return target == ErrAsyncExecution
}

// ConversionError reports a failed entity/native conversion
type ConversionError struct {
	Type  string
	Cause error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion failed for type %s: %v", e.Type, e.Cause)
	}
	return fmt.Sprintf("conversion failed for type %s", e.Type)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrNotConvertible
}

// Helper functions for creating errors

// NewNilArgumentError creates a new NilArgumentError
func NewNilArgumentError(name string) error {
	return &NilArgumentError{Name: name}
}

// NewUnsupportedOperationError creates a new UnsupportedOperationError
func NewUnsupportedOperationError(operation, driver string) error {
	return &UnsupportedOperationError{Operation: operation, Driver: driver}
}

// NewAsyncExecutionError creates a new AsyncExecutionError
func NewAsyncExecutionError(operation string, cause error) error {
	return &AsyncExecutionError{Operation: operation, Cause: cause}
}

// NewConversionError creates a new ConversionError
func NewConversionError(typeName string, cause error) error {
	return &ConversionError{Type: typeName, Cause: cause}
}

// IsNilArgument checks if an error is a nil-argument error
func IsNilArgument(err error) bool {
	return errors.Is(err, ErrNilArgument)
}

// IsUnsupported checks if an error is an unsupported-operation error
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsAsyncExecution checks if an error is an asynchronous-execution error
func IsAsyncExecution(err error) bool {
	return errors.Is(err, ErrAsyncExecution)
}

// IsNotConvertible checks if an error is a conversion error
func IsNotConvertible(err error) bool {
	return errors.Is(err, ErrNotConvertible)
}
