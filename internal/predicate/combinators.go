// SPDX-License-Identifier: Apache-2.0

package predicate

import "github.com/mountebank-go/predicate/internal/value"

// recurseFunc re-enters the top-level evaluate dispatch (spec.md §4.6);
// combinators take it as a parameter rather than calling Evaluate
// directly to keep this file free of the request/logger/state plumbing.
type recurseFunc func(p value.Value) (bool, error)

// runNot implements `not(p) := !evaluate(p.not)`.
func runNot(p value.Value, recurse recurseFunc) (bool, error) {
	ok, err := recurse(p)
	if err != nil {
		return false, err
	}

	return !ok, nil
}

// runOr implements `or(p) := ∃ q ∈ p.or : evaluate(q)`, short-circuiting
// on the first true.
func runOr(predicates []value.Value, recurse recurseFunc) (bool, error) {
	for _, p := range predicates {
		ok, err := recurse(p)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// runAnd implements `and(p) := ∀ q ∈ p.and : evaluate(q)`, short-circuiting
// on the first false.
func runAnd(predicates []value.Value, recurse recurseFunc) (bool, error) {
	for _, p := range predicates {
		ok, err := recurse(p)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}
