// SPDX-License-Identifier: Apache-2.0

// Package predicate implements a request-predicate evaluation engine: it
// walks a predicate record against a request record and returns whether
// the request satisfies it.
package predicate

import (
	"github.com/mountebank-go/predicate/internal/value"
)

// Logger is the minimal logging surface `inject` can call into
// (spec.md §6).
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// noopLogger discards everything; used when Evaluate is called with a
// nil Logger so inject's CEL bindings never dereference nil.
type noopLogger struct{}

func (noopLogger) Debug(string) {}
func (noopLogger) Info(string)  {}
func (noopLogger) Warn(string)  {}
func (noopLogger) Error(string) {}

const (
	keyNot    = "not"
	keyOr     = "or"
	keyAnd    = "and"
	keyInject = "inject"
)

var combinatorAndInjectKeys = map[string]struct{}{
	keyNot:    {},
	keyOr:     {},
	keyAnd:    {},
	keyInject: {},
}

// Evaluate implements evaluate(predicate, request, encoding, logger,
// imposterState) (spec.md §4.7): find the single recognized operator key
// on predicate and dispatch to it.
func Evaluate(predicate, request value.Value, encoding string, logger Logger, imposterState any) (bool, error) {
	if logger == nil {
		logger = noopLogger{}
	}

	if predicate.Kind() != value.RecordKind {
		return false, NewValidationError("missing predicate", predicate)
	}

	key, cfg, err := selectOperatorKey(predicate)
	if err != nil {
		return false, err
	}

	recurse := func(p value.Value) (bool, error) {
		return Evaluate(p, request, encoding, logger, imposterState)
	}

	switch key {
	case keyNot:
		nested, _ := predicate.Record().Get(keyNot)

		return runNot(nested, recurse)
	case keyOr:
		nested, _ := predicate.Record().Get(keyOr)

		return runOr(nested.Items(), recurse)
	case keyAnd:
		nested, _ := predicate.Record().Get(keyAnd)

		return runAnd(nested.Items(), recurse)
	case keyInject:
		source, _ := predicate.Record().Get(keyInject)

		return runInject(source.StringVal(), request, logger, imposterState)
	default:
		op, ok := operators[key]
		if !ok {
			return false, NewValidationError("unknown predicate key: "+key, predicate)
		}

		expected, _ := predicate.Record().Get(key)

		return op(expected, request, cfg, encoding)
	}
}

// selectOperatorKey implements the "exactly one recognized operator key"
// rule (spec.md §4.7, §6): more than one is a validation error, same as
// none.
func selectOperatorKey(predicate value.Value) (string, Config, error) {
	rec := predicate.Record()

	var found []string

	for _, k := range rec.Keys() {
		if _, isOperator := operators[k]; isOperator {
			found = append(found, k)

			continue
		}

		if _, isCombinator := combinatorAndInjectKeys[k]; isCombinator {
			found = append(found, k)
		}
	}

	switch len(found) {
	case 0:
		return "", Config{}, NewValidationError("missing predicate", predicate)
	case 1:
		cfg, err := DecodeConfig(rec)
		if err != nil {
			return "", Config{}, err
		}

		return found[0], cfg, nil
	default:
		return "", Config{}, NewValidationError("ambiguous predicate: multiple operator keys "+joinKeys(found), predicate)
	}
}

func joinKeys(keys []string) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}

		out += k
	}

	return out
}
