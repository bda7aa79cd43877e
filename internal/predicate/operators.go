// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/mountebank-go/predicate/internal/value"
	"github.com/mountebank-go/predicate/internal/x"
)

// operatorFunc is a leaf predicate (spec.md §4.5): it normalizes both
// sides of the comparison and runs the structural matcher with its own
// scalar comparator.
type operatorFunc func(expected, actual value.Value, cfg Config, encoding string) (bool, error)

var operators = map[string]operatorFunc{
	"equals":     runEquals,
	"contains":   runContains,
	"startsWith": runStartsWith,
	"endsWith":   runEndsWith,
	"exists":     runExists,
	"matches":    runMatches,
	"deepEquals": runDeepEquals,
}

func normalizeBothSides(
	expected, actual value.Value, cfg Config, encoding string, shouldForceStrings bool,
) (value.Value, value.Value, error) {
	normExpected, err := Normalize(expected, cfg, Options{Encoding: encoding, ShouldForceStrings: shouldForceStrings})
	if err != nil {
		return value.Value{}, value.Value{}, err
	}

	normActual, err := Normalize(actual, cfg, Options{
		Encoding: encoding, WithSelectors: true, ShouldForceStrings: shouldForceStrings,
	})
	if err != nil {
		return value.Value{}, value.Value{}, err
	}

	return normExpected, normActual, nil
}

func runEquals(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	exp, act, err := normalizeBothSides(expected, actual, cfg, encoding, false)
	if err != nil {
		return false, err
	}

	m := matcher{cfg: cfg, leaf: func(e, a string) (bool, error) { return e == a, nil }}

	return m.satisfied(exp, act)
}

func runContains(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	exp, act, err := normalizeBothSides(expected, actual, cfg, encoding, false)
	if err != nil {
		return false, err
	}

	m := matcher{cfg: cfg, leaf: func(e, a string) (bool, error) { return strings.Contains(a, e), nil }}

	return m.satisfied(exp, act)
}

func runStartsWith(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	exp, act, err := normalizeBothSides(expected, actual, cfg, encoding, false)
	if err != nil {
		return false, err
	}

	m := matcher{cfg: cfg, leaf: func(e, a string) (bool, error) { return strings.HasPrefix(a, e), nil }}

	return m.satisfied(exp, act)
}

func runEndsWith(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	exp, act, err := normalizeBothSides(expected, actual, cfg, encoding, false)
	if err != nil {
		return false, err
	}

	m := matcher{cfg: cfg, leaf: func(e, a string) (bool, error) { return strings.HasSuffix(a, e), nil }}

	return m.satisfied(exp, act)
}

// runExists implements `exists: Bool`: if the expected leaf is truthy,
// actual must be defined and non-empty; otherwise actual must be
// undefined or empty (spec.md §4.5). Undefined actual has already been
// substituted with "" by the matcher before the leaf comparator runs, so
// the leaf itself cannot distinguish "undefined" from "present but
// empty" — that distinction is made by the matcher's array-case table
// (spec.md §4.4 row 2) for sequence-valued fields.
func runExists(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	exp, act, err := normalizeBothSides(expected, actual, cfg, encoding, false)
	if err != nil {
		return false, err
	}

	m := matcher{
		cfg: cfg,
		leaf: func(e, a string) (bool, error) {
			wantExists := e != "" && e != "false"
			if wantExists {
				return a != "", nil
			}

			return a == "", nil
		},
		isExistsOperator: true,
	}

	return m.satisfied(exp, act)
}

// runMatches implements regex matching. caseSensitive is forced true for
// value normalization so the value case fold never touches the regex
// text; except, when set, is still applied to both sides.
// keyCaseSensitive is snapshotted from the original cfg before forcing,
// since leaving it unset would otherwise let it re-derive from the forced
// CaseSensitive=true and stop folding keys (spec.md §4.5). Rejected in
// base64 mode.
func runMatches(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	if encoding == encodingBase64 {
		return false, NewValidationError("matches is not supported in base64 mode", value.NullValue())
	}

	originalKeyCaseSensitive := cfg.ResolvedKeyCaseSensitive()

	matchCfg := cfg.withCaseSensitive(true)
	matchCfg.KeyCaseSensitive = &originalKeyCaseSensitive

	exp, act, err := normalizeBothSides(expected, actual, matchCfg, encoding, false)
	if err != nil {
		return false, err
	}

	m := matcher{
		cfg: matchCfg,
		leaf: func(e, a string) (bool, error) {
			opts := x.IfThenElse(cfg.CaseSensitive, regexp2.None, regexp2.IgnoreCase)

			re, err := regexp2.Compile(e, opts)
			if err != nil {
				return false, NewValidationError("invalid matches regex: "+err.Error(), value.StringValue(e))
			}

			ok, err := re.MatchString(a)
			if err != nil {
				return false, nil
			}

			return ok, nil
		},
	}

	return m.satisfied(exp, act)
}

// runDeepEquals implements structural deep equality: both sides are
// force_strings-coerced before the shared matcher walks them, so the
// leaf comparator degenerates to exact string equality of already
// force-stringified scalars (spec.md §4.5, §9 design notes). As with the
// other operators, only the keys present in expected are compared, and an
// expected sequence matches when each of its elements matches some
// element of the actual sequence. If the
// actual side of a field is a JSON-in-string and the expected side is a
// record, the reparsed actual is additionally force_strings-coerced
// before matching continues.
func runDeepEquals(expected, actual value.Value, cfg Config, encoding string) (bool, error) {
	exp, act, err := normalizeBothSides(expected, actual, cfg, encoding, true)
	if err != nil {
		return false, err
	}

	m := matcher{
		cfg:  cfg,
		leaf: func(e, a string) (bool, error) { return e == a, nil },
		postReparse: func(v value.Value) value.Value {
			return forceStrings(v)
		},
	}

	return m.satisfied(exp, act)
}
