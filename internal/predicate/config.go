// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/mountebank-go/predicate/internal/value"
)

// XPathSelector is the `xpath` predicate config sibling key (spec.md §3).
type XPathSelector struct {
	Selector string            `mapstructure:"selector"`
	NS       map[string]string `mapstructure:"ns"`
}

// JSONPathSelector is the `jsonpath` predicate config sibling key.
type JSONPathSelector struct {
	Selector string `mapstructure:"selector"`
}

// Config is the predicate config carried by the sibling keys next to the
// operator key (spec.md §3): caseSensitive, keyCaseSensitive, except,
// xpath, jsonpath. Unknown sibling keys are reserved for future use and
// must not cause a decode error (spec.md §6).
type Config struct {
	CaseSensitive    bool              `mapstructure:"caseSensitive"`
	KeyCaseSensitive *bool             `mapstructure:"keyCaseSensitive"`
	Except           string            `mapstructure:"except"`
	XPath            *XPathSelector    `mapstructure:"xpath"`
	JSONPath         *JSONPathSelector `mapstructure:"jsonpath"`
}

// ResolvedKeyCaseSensitive returns KeyCaseSensitive if the predicate set
// it explicitly, otherwise it defaults to CaseSensitive (spec.md §3).
func (c Config) ResolvedKeyCaseSensitive() bool {
	if c.KeyCaseSensitive != nil {
		return *c.KeyCaseSensitive
	}

	return c.CaseSensitive
}

// withCaseSensitive returns a copy of c with CaseSensitive forced to the
// given value, used by `matches` to force case-sensitive value handling
// while preserving the user's keyCaseSensitive setting (spec.md §4.5).
func (c Config) withCaseSensitive(caseSensitive bool) Config {
	c.CaseSensitive = caseSensitive

	return c
}

// DecodeConfig extracts the predicate config from the sibling keys of a
// predicate record. Unused keys (the operator key itself, plus any
// reserved-for-future-use keys) are ignored rather than rejected.
func DecodeConfig(predicate *value.Record) (Config, error) {
	raw := make(map[string]any, predicate.Len())
	for _, k := range predicate.Keys() {
		v, _ := predicate.Get(k)
		raw[k] = value.ToAny(v)
	}

	var cfg Config

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return Config{}, err
	}

	if err := dec.Decode(raw); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
