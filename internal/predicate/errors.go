// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"errors"

	"github.com/mountebank-go/predicate/internal/value"
	"github.com/mountebank-go/predicate/internal/x/errorchain"
)

// Sentinel errors every ValidationError / InjectionError wraps, so
// callers can use errors.Is regardless of the offending predicate.
var (
	ErrValidation = errors.New("validation error")
	ErrInjection  = errors.New("injection error")
)

// ValidationContext carries the offending predicate alongside a
// ValidationError, per spec.md §6 ("{ source }").
type ValidationContext struct {
	Source value.Value
}

// InjectionContext carries the inject source and the scope/state it ran
// against, per spec.md §6 ("{ source, data }").
type InjectionContext struct {
	Source        string
	Data          any
	ImposterState any
}

// NewValidationError builds a ValidationError: unknown predicate key,
// XPath/JSONPath/matches used in base64 mode, or more than one
// recognized operator key on a single predicate.
func NewValidationError(message string, source value.Value) error {
	return errorchain.NewWithMessage(ErrValidation, message).
		WithErrorContext(ValidationContext{Source: source})
}

// NewInjectionError builds an InjectionError: a failure while running
// user-supplied inject source.
func NewInjectionError(message, source string, data, imposterState any) error {
	return errorchain.NewWithMessage(ErrInjection, message).
		WithErrorContext(InjectionContext{Source: source, Data: data, ImposterState: imposterState})
}
