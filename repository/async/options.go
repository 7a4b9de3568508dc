/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package async

// options holds tunables for the asynchronous repository.
type options struct {
	// ErrorBuffer is the capacity of the side error channel.
	ErrorBuffer int
}

func defaultOptions() options {
	return options{
		ErrorBuffer: 16,
	}
}

// Option configures an asynchronous repository.
type Option func(*options)

// WithErrorBuffer sets the capacity of the side error channel. Values below
// one are ignored.
func WithErrorBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.ErrorBuffer = size
		}
	}
}
