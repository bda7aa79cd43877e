// SPDX-License-Identifier: Apache-2.0

// Package errorchain implements a minimal wrapped error with an optional,
// strongly typed error context value attached to it.
package errorchain

import (
	"errors"
	"fmt"
)

// Chain links a root cause error with a wrapping message and an optional
// error context value.
type Chain struct { // nolint: errname
	err     error
	msg     string
	context any
}

// NewWithMessage wraps err with a message, e.g. "unknown predicate key: foo".
func NewWithMessage(err error, message string) *Chain {
	return &Chain{err: err, msg: message}
}

func (ec *Chain) Error() string {
	if len(ec.msg) == 0 {
		return ec.err.Error()
	}

	return fmt.Sprintf("%s: %s", ec.err.Error(), ec.msg)
}

// WithErrorContext attaches an arbitrary context value (e.g. the
// offending predicate source), retrievable later via ErrorContext.
func (ec *Chain) WithErrorContext(context any) *Chain {
	ec.context = context

	return ec
}

// Is lets errors.Is(err, ErrValidation) match regardless of message or
// context, since every ValidationError/InjectionError wraps one of the
// package's sentinel errors.
func (ec *Chain) Is(target error) bool {
	return errors.Is(ec.err, target)
}

// ErrorContext returns the value attached via WithErrorContext, or nil.
func (ec *Chain) ErrorContext() any {
	return ec.context
}
