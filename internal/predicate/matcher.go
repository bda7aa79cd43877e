// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"strconv"

	"github.com/mountebank-go/predicate/internal/value"
	"github.com/mountebank-go/predicate/internal/x/slicex"
)

// scalarCompare is the operator-specific leaf test (spec.md §4.4): given
// the already-normalized expected and actual scalar strings, decide
// whether this leaf matches.
type scalarCompare func(expected, actual string) (bool, error)

// matcher implements predicate_satisfied / test_predicate (spec.md §4.4):
// it walks expected against actual, applying leaf for scalar leaves and
// handling the array/object/back-compat cases in between.
type matcher struct {
	cfg Config
	leaf scalarCompare

	// isExistsOperator enables the `exists` array short-circuit: when set
	// and the expected leaf is truthy, an actual sequence field matches
	// without inspecting its elements (spec.md §4.4 table row 2).
	isExistsOperator bool

	// postReparse, when set, post-processes a value freshly parsed out of
	// a JSON-in-string actual field before matching continues. deepEquals
	// uses this to force_strings the reparsed tree (spec.md §4.5).
	postReparse func(value.Value) value.Value
}

// satisfied is the entry point: test_predicate(expected, actual).
func (m matcher) satisfied(expected, actual value.Value) (bool, error) {
	actual = m.reparseIfJSONString(actual)

	if expected.IsScalar() {
		ok, err := m.leaf(scalarString(expected), scalarString(actual))

		return ok, err
	}

	if expected.Kind() == value.RecordKind {
		return m.recordSatisfied(expected, actual)
	}

	// A bare Sequence expected value with no wrapping field: apply the
	// same per-field rules directly against actual.
	return m.fieldSatisfied(expected, actual, true)
}

func (m matcher) reparseIfJSONString(actual value.Value) value.Value {
	if actual.Kind() != value.String {
		return actual
	}

	parsed, ok := tryJSON(actual.StringVal(), m.cfg)
	if !ok {
		return actual
	}

	if m.postReparse != nil {
		parsed = m.postReparse(parsed)
	}

	return parsed
}

// recordSatisfied implements the "expected is a Record" branch of
// spec.md §4.4: for each field in expected, apply the per-case table,
// including the row-4 back-compat shim when actual itself is a sequence
// of records rather than a single record.
func (m matcher) recordSatisfied(expected, actual value.Value) (bool, error) {
	for _, field := range expected.Record().Keys() {
		expVal, _ := expected.Record().Get(field)

		if actual.Kind() == value.Sequence && expVal.Kind() != value.Sequence {
			matched, err := m.matchAgainstOuterSequence(field, expVal, actual)
			if err != nil {
				return false, err
			}

			if !matched {
				return false, nil
			}

			continue
		}

		var (
			actVal value.Value
			found  bool
		)

		if actual.Kind() == value.RecordKind {
			actVal, found = actual.Record().Get(field)
		}

		ok, err := m.fieldSatisfied(expVal, actVal, found)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// matchAgainstOuterSequence is the backwards-compatibility shim of
// spec.md §4.4 table row 4, for predicates written before array syntax
// existed: expected[field] is matched against at least one element of
// the outer sequence.
func (m matcher) matchAgainstOuterSequence(field string, expVal, outerActual value.Value) (bool, error) {
	for _, elem := range outerActual.Items() {
		var (
			actVal value.Value
			found  bool
		)

		if elem.Kind() == value.RecordKind {
			actVal, found = elem.Record().Get(field)
		}

		ok, err := m.fieldSatisfied(expVal, actVal, found)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// fieldSatisfied implements the per-field case table of spec.md §4.4
// (rows 1-3 and 5-default; row 4 is handled by the caller before this is
// reached, since it needs the outer sequence rather than a single field).
func (m matcher) fieldSatisfied(expVal, actVal value.Value, actualFound bool) (bool, error) {
	expIsSeq := expVal.Kind() == value.Sequence
	actIsSeq := actualFound && actVal.Kind() == value.Sequence

	switch {
	case expIsSeq && actIsSeq:
		var firstErr error

		allMatched := slicex.All(expVal.Items(), func(e value.Value) bool {
			return slicex.Any(actVal.Items(), func(a value.Value) bool {
				ok, err := m.satisfied(e, a)
				if err != nil && firstErr == nil {
					firstErr = err
				}

				return ok
			})
		})
		if firstErr != nil {
			return false, firstErr
		}

		return allMatched, nil
	case !expIsSeq && actIsSeq:
		if m.isExistsOperator && truthy(expVal) {
			return true, nil
		}

		for _, a := range actVal.Items() {
			ok, err := m.satisfied(expVal, a)
			if err != nil {
				return false, err
			}

			if ok {
				return true, nil
			}
		}

		return false, nil
	case expIsSeq && !actIsSeq:
		// expected demands a sequence but actual isn't one: no defined
		// semantics in spec.md §4.4, treat as a structural mismatch.
		return false, nil
	default:
		if !actualFound {
			actVal = value.StringValue("")
		}

		return m.satisfied(expVal, actVal)
	}
}

// scalarString renders a Value for leaf comparison. Normalize only
// stringifies String leaves (spec.md §4.3); Number/Bool/Null leaves that
// reach the matcher without deepEquals's force_strings are rendered here.
func scalarString(v value.Value) string {
	switch v.Kind() {
	case value.Null:
		return ""
	case value.Bool:
		if v.Bool() {
			return "true"
		}

		return "false"
	case value.Number:
		return v.NumberLiteral()
	case value.String:
		return v.StringVal()
	default:
		return value.CanonicalJSON(v)
	}
}

func truthy(v value.Value) bool {
	switch v.Kind() {
	case value.Null:
		return false
	case value.Bool:
		return v.Bool()
	case value.String:
		return v.StringVal() != ""
	case value.Number:
		n, err := strconv.ParseFloat(v.NumberLiteral(), 64)

		return err != nil || n != 0
	default:
		return true
	}
}
