// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/mountebank-go/predicate/internal/value"
)

// lowercase is the Unicode-aware case fold applied when caseSensitive
// (or keyCaseSensitive, for record keys) is false.
func lowercase(s string) string {
	return strings.ToLower(s)
}

// exceptStrip removes every match of pattern from s, case-insensitively
// unless caseSensitive. An empty pattern is the identity (spec.md §4.1).
func exceptStrip(s, pattern string, caseSensitive bool) (string, error) {
	if pattern == "" {
		return s, nil
	}

	opts := regexp2.None
	if !caseSensitive {
		opts = regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return "", err
	}

	out, err := re.Replace(s, "", -1, -1)
	if err != nil {
		return "", err
	}

	return out, nil
}

// base64Decode decodes s as standard base64, reinterpreting the decoded
// bytes as UTF-8 text.
func base64Decode(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// forceStrings recursively coerces every scalar leaf to its string
// rendering (spec.md §4.1); used only by deepEquals.
func forceStrings(v value.Value) value.Value {
	switch v.Kind() {
	case value.Null:
		return value.StringValue("null")
	case value.Bool:
		return value.StringValue(strconv.FormatBool(v.Bool()))
	case value.Number:
		return value.StringValue(v.NumberLiteral())
	case value.String:
		return v
	case value.Sequence:
		items := make([]value.Value, 0, len(v.Items()))
		for _, item := range v.Items() {
			items = append(items, forceStrings(item))
		}

		return value.SequenceValue(items)
	case value.RecordKind:
		rec := value.NewRecord()
		for _, k := range v.Record().Keys() {
			val, _ := v.Record().Get(k)
			rec.Set(k, forceStrings(val))
		}

		return value.RecordValue(rec)
	default:
		return v
	}
}

// tryJSON attempts to parse s as JSON; on success it runs the result
// through key-lowercase + value-except + value-case transforms (but not
// the array-sort transform — see spec.md §4.1 rationale: sorting would
// invalidate indexed selectors such as $..title[1]). On parse failure it
// returns s unchanged as a plain String and ok=false.
func tryJSON(s string, cfg Config) (value.Value, bool) {
	parsed, err := value.ParseJSON([]byte(s))
	if err != nil {
		return value.StringValue(s), false
	}

	keyCaseSensitive := cfg.ResolvedKeyCaseSensitive()

	transformed, err := transformTree(parsed, tryJSONKeyXform(keyCaseSensitive), func(s string) (value.Value, error) {
		out, err := exceptStrip(s, cfg.Except, cfg.CaseSensitive)
		if err != nil {
			return value.Value{}, err
		}

		if !cfg.CaseSensitive {
			out = lowercase(out)
		}

		return value.StringValue(out), nil
	}, false)
	if err != nil {
		return value.StringValue(s), false
	}

	return transformed, true
}

func tryJSONKeyXform(keyCaseSensitive bool) func(string) string {
	if keyCaseSensitive {
		return func(k string) string { return k }
	}

	return lowercase
}
