// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/njchilds90/go-jsonpath"

	"github.com/mountebank-go/predicate/internal/value"
)

// runJSONPath implements the JSONPath selector (spec.md §4.2): the input
// is parsed via try_json first (optionally through force_strings when
// shouldForceStrings is set), then the JSONPath selector is evaluated
// against the result. Key case folding uses keyCaseSensitive — never
// caseSensitive — so that e.g. `matches` keeps its regex case semantics
// on values while keys still fold.
func runJSONPath(sel JSONPathSelector, input string, cfg Config, shouldForceStrings bool) (value.Value, error) {
	selector := sel.Selector
	if !cfg.ResolvedKeyCaseSensitive() {
		selector = lowercase(selector)
	}

	parsed, _ := tryJSON(input, cfg)
	if shouldForceStrings {
		parsed = forceStrings(parsed)
	}

	root := value.ToAny(parsed)

	results, err := jsonpath.QueryValue(root, selector)
	if err != nil {
		return value.Value{}, NewValidationError(
			"invalid jsonpath selector: "+err.Error(), value.StringValue(sel.Selector))
	}

	return collapseJSONPathResults(results), nil
}

// collapseJSONPathResults applies the scalar-vs-sequence collapsing rule
// shared with XPath: one match collapses to a String, zero or many stay
// a Sequence of String (spec.md §4.2).
func collapseJSONPathResults(results []jsonpath.Result) value.Value {
	if len(results) == 1 {
		return value.StringValue(jsonScalarToString(results[0].Value))
	}

	items := make([]value.Value, 0, len(results))
	for _, r := range results {
		items = append(items, value.StringValue(jsonScalarToString(r.Value)))
	}

	return value.SequenceValue(items)
}

func jsonScalarToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}

		return "false"
	case json.Number:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}

		return string(b)
	}
}
