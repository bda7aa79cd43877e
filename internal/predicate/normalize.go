// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"sort"

	"github.com/mountebank-go/predicate/internal/value"
)

// Options carries the per-call normalization flags (spec.md §4.3).
type Options struct {
	Encoding           string // "utf8" | "base64"
	WithSelectors      bool   // true only for the actual side
	ShouldForceStrings bool   // true only for deepEquals
}

const encodingBase64 = "base64"

// Normalize applies the fixed-order transform pipeline of spec.md §4.3 to
// v: optional selector extraction (actual side only), except-strip,
// value-case fold, base64 decode — with array-sort applied to every
// resulting sequence, including ones selectors produce.
func Normalize(v value.Value, cfg Config, opts Options) (value.Value, error) {
	if opts.ShouldForceStrings {
		v = forceStrings(v)
	}

	keyXform := tryJSONKeyXform(cfg.ResolvedKeyCaseSensitive())

	valueLeafXform := func(s string) (value.Value, error) {
		cur := value.StringValue(s)

		if opts.WithSelectors && (cfg.XPath != nil || cfg.JSONPath != nil) {
			if opts.Encoding == encodingBase64 {
				return value.Value{}, NewValidationError("selectors are not supported in base64 mode", value.NullValue())
			}

			sel, err := runSelector(cfg, s)
			if err != nil {
				return value.Value{}, err
			}

			cur = sel
		}

		return mapStringLeaves(cur, func(str string) (string, error) {
			out, err := exceptStrip(str, cfg.Except, cfg.CaseSensitive)
			if err != nil {
				return "", err
			}

			if !cfg.CaseSensitive {
				out = lowercase(out)
			}

			if opts.Encoding == encodingBase64 {
				out, err = base64Decode(out)
				if err != nil {
					return "", err
				}
			}

			return out, nil
		})
	}

	return transformTree(v, keyXform, valueLeafXform, true)
}

// runSelector dispatches to the XPath or JSONPath selector configured on
// cfg. Exactly one of cfg.XPath/cfg.JSONPath is expected to be set; if
// both are, XPath takes precedence.
func runSelector(cfg Config, input string) (value.Value, error) {
	switch {
	case cfg.XPath != nil:
		return runXPath(*cfg.XPath, input, cfg.CaseSensitive)
	case cfg.JSONPath != nil:
		return runJSONPath(*cfg.JSONPath, input, cfg, false)
	default:
		return value.StringValue(input), nil
	}
}

// mapStringLeaves applies f to v if it is a String, or to every element
// of v if it is a Sequence of Strings (the shape a selector produces).
// Any other shape passes through unchanged.
func mapStringLeaves(v value.Value, f func(string) (string, error)) (value.Value, error) {
	switch v.Kind() {
	case value.String:
		out, err := f(v.StringVal())
		if err != nil {
			return value.Value{}, err
		}

		return value.StringValue(out), nil
	case value.Sequence:
		items := make([]value.Value, 0, len(v.Items()))

		for _, item := range v.Items() {
			out, err := mapStringLeaves(item, f)
			if err != nil {
				return value.Value{}, err
			}

			items = append(items, out)
		}

		return value.SequenceValue(items), nil
	default:
		return v, nil
	}
}

// transformTree recurses over v, applying keyXform to record keys and
// valueLeafXform to string leaves, then — when arraySort is set — sorting
// every sequence (original or selector-produced) by its elements'
// canonical JSON so array order never affects a predicate's outcome
// (spec.md §4.3, §4.4 rationale: sort after normalizing contents so the
// sort key is stable).
func transformTree(
	v value.Value,
	keyXform func(string) string,
	valueLeafXform func(string) (value.Value, error),
	arraySort bool,
) (value.Value, error) {
	switch v.Kind() {
	case value.Sequence:
		items := make([]value.Value, 0, len(v.Items()))

		for _, item := range v.Items() {
			out, err := transformTree(item, keyXform, valueLeafXform, arraySort)
			if err != nil {
				return value.Value{}, err
			}

			items = append(items, out)
		}

		result := value.SequenceValue(items)
		if arraySort {
			result = sortSequence(result)
		}

		return result, nil
	case value.RecordKind:
		rec := value.NewRecord()

		for _, k := range v.Record().Keys() {
			val, _ := v.Record().Get(k)

			out, err := transformTree(val, keyXform, valueLeafXform, arraySort)
			if err != nil {
				return value.Value{}, err
			}

			rec.Set(keyXform(k), out)
		}

		return value.RecordValue(rec), nil
	case value.String:
		result, err := valueLeafXform(v.StringVal())
		if err != nil {
			return value.Value{}, err
		}

		if arraySort && result.Kind() == value.Sequence {
			result = sortSequence(result)
		}

		return result, nil
	default:
		return v, nil
	}
}

func sortSequence(v value.Value) value.Value {
	items := append([]value.Value(nil), v.Items()...)
	sort.Slice(items, func(i, j int) bool {
		return value.CanonicalJSON(items[i]) < value.CanonicalJSON(items[j])
	})

	return value.SequenceValue(items)
}
