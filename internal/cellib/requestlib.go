// SPDX-License-Identifier: Apache-2.0

// Package cellib provides the CEL environment exposed to `inject`
// predicates: a `scope` variable holding the request, a `logger` variable
// bound to the evaluator's logger, and an `imposterState` variable bound
// to the opaque mutable record passed through to user code.
package cellib

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// Requests returns the cel.EnvOption exposing the scope/logger/state
// variables that `inject` predicates operate on.
func Requests() cel.EnvOption {
	return cel.Lib(requestsLib{})
}

type requestsLib struct{}

func (requestsLib) LibraryName() string {
	return "mountebank-go.predicate.requests"
}

func (requestsLib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func (requestsLib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Strings(),
		ext.Encoders(),
		cel.Variable("scope", cel.DynType),
		cel.Variable("logger", cel.DynType),
		cel.Variable("imposterState", cel.DynType),
	}
}
