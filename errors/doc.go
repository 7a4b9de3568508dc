/*
Package errors provides semantic error types for the mapstore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper
functions.

Common Errors:

	var (
	    ErrNilArgument    = errors.New("nil argument")
	    ErrUnsupported    = errors.New("operation not supported by driver")
	    ErrAsyncExecution = errors.New("asynchronous execution failed")
	    ErrNotConvertible = errors.New("value not convertible to entity")
	)

Usage:

	// Check error type
	saved, err := repo.Put(ctx, user)
	if err != nil {
	    if errors.IsNilArgument(err) {
	        // Fix the call site; the driver was never invoked
	        return fmt.Errorf("bad put call: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNilArgumentError("entity")
	err := errors.NewUnsupportedOperationError("TTL", "ddb")
	err := errors.NewAsyncExecutionError("save", cause)

Nil-argument and unsupported-operation errors are always raised synchronously,
before any driver interaction. Asynchronous-execution errors are only ever
delivered through a result channel. Any other driver failure propagates
unchanged; this package never wraps it.
*/
package errors
