// SPDX-License-Identifier: Apache-2.0

// Package value implements the tagged value variant the predicate
// evaluator is polymorphic over: scalars, ordered sequences, and
// insertion-order-preserving records, convertible to and from the
// generic JSON shape a decoded request or predicate arrives in.
package value

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind discriminates the cases of Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	RecordKind
)

// Value is a recursive tagged variant mirroring the predicate/request
// data model (spec.md §3). The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	num  string // literal JSON number text; avoids float round-tripping loss
	str  string
	seq  []Value
	rec  *Record
}

// Record is an insertion-order-preserving string-keyed map. Order is
// preserved for stable iteration (e.g. canonical JSON needs it sorted
// instead, but error messages and re-serialization benefit from it).
type Record struct {
	keys []string
	vals map[string]Value
}

func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.vals[key]

	return v, ok
}

func (r *Record) Set(key string, val Value) {
	if _, exists := r.vals[key]; !exists {
		r.keys = append(r.keys, key)
	}

	r.vals[key] = val
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

func (r *Record) Len() int {
	return len(r.keys)
}

func NullValue() Value { return Value{kind: Null} }

func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

func StringValue(s string) Value { return Value{kind: String, str: s} }

// NumberValue builds a Number from its literal JSON text.
func NumberValue(literal string) Value { return Value{kind: Number, num: literal} }

func SequenceValue(items []Value) Value { return Value{kind: Sequence, seq: items} }

func RecordValue(r *Record) Value { return Value{kind: RecordKind, rec: r} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) Bool() bool { return v.b }

func (v Value) NumberLiteral() string { return v.num }

func (v Value) StringVal() string { return v.str }

func (v Value) Items() []Value { return v.seq }

func (v Value) Record() *Record { return v.rec }

// IsScalar reports whether v is anything other than Sequence/RecordKind.
func (v Value) IsScalar() bool {
	return v.kind != Sequence && v.kind != RecordKind
}

// FromAny converts a value produced by encoding/json-style decoding
// (map[string]any, []any, string, float64/json.Number, bool, nil) into
// the tagged Value tree.
func FromAny(in any) Value {
	switch t := in.(type) {
	case nil:
		return NullValue()
	case bool:
		return BoolValue(t)
	case string:
		return StringValue(t)
	case json.Number:
		return NumberValue(string(t))
	case float64:
		return NumberValue(formatFloat(t))
	case int:
		return NumberValue(strconv.Itoa(t))
	case []any:
		items := make([]Value, 0, len(t))
		for _, e := range t {
			items = append(items, FromAny(e))
		}

		return SequenceValue(items)
	case map[string]any:
		rec := NewRecord()
		for k, val := range t {
			rec.Set(k, FromAny(val))
		}

		return RecordValue(rec)
	default:
		return StringValue(toString(t))
	}
}

func toString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return string(b)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToAny converts v back into the generic any shape consumable by
// encoding/json, JSONPath, and CEL.
func ToAny(v Value) any {
	switch v.kind {
	case Null:
		return nil
	case Bool:
		return v.b
	case Number:
		return json.Number(v.num)
	case String:
		return v.str
	case Sequence:
		out := make([]any, 0, len(v.seq))
		for _, e := range v.seq {
			out = append(out, ToAny(e))
		}

		return out
	case RecordKind:
		out := make(map[string]any, v.rec.Len())
		for _, k := range v.rec.Keys() {
			val, _ := v.rec.Get(k)
			out[k] = ToAny(val)
		}

		return out
	default:
		return nil
	}
}

// ParseJSON decodes a JSON document into a Value tree, using
// json.Number for numeric literals so no precision is lost before
// force_strings renders them back to text.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}

	return FromAny(raw), nil
}

// CanonicalJSON renders v as JSON with record keys sorted
// lexicographically at every depth, giving a deterministic total order
// over value trees (spec.md §4.5).
func CanonicalJSON(v Value) string {
	var sb strings.Builder
	writeCanonical(&sb, v)

	return sb.String()
}

func writeCanonical(sb *strings.Builder, v Value) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(v.num)
	case String:
		b, _ := json.Marshal(v.str)
		sb.Write(b)
	case Sequence:
		sb.WriteByte('[')

		for i, e := range v.seq {
			if i > 0 {
				sb.WriteByte(',')
			}

			writeCanonical(sb, e)
		}

		sb.WriteByte(']')
	case RecordKind:
		keys := append([]string(nil), v.rec.Keys()...)
		sort.Strings(keys)

		sb.WriteByte('{')

		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}

			kb, _ := json.Marshal(k)
			sb.Write(kb)
			sb.WriteByte(':')

			val, _ := v.rec.Get(k)
			writeCanonical(sb, val)
		}

		sb.WriteByte('}')
	}
}
