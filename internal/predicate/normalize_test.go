// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountebank-go/predicate/internal/value"
)

func TestNormalizeCaseFoldsKeysAndValues(t *testing.T) {
	t.Parallel()

	out, err := Normalize(mustParse(t, `{"Path":"/Foo"}`), Config{}, Options{Encoding: "utf8"})
	require.NoError(t, err)

	v, found := out.Record().Get("path")
	require.True(t, found)
	assert.Equal(t, "/foo", v.StringVal())
}

func TestNormalizeRespectsCaseSensitive(t *testing.T) {
	t.Parallel()

	out, err := Normalize(mustParse(t, `{"Path":"/Foo"}`), Config{CaseSensitive: true}, Options{Encoding: "utf8"})
	require.NoError(t, err)

	_, found := out.Record().Get("Path")
	require.True(t, found)
}

func TestNormalizeSortsArraysOrderIndependently(t *testing.T) {
	t.Parallel()

	a, err := Normalize(mustParse(t, `["c","a","b"]`), Config{}, Options{Encoding: "utf8"})
	require.NoError(t, err)

	b, err := Normalize(mustParse(t, `["b","c","a"]`), Config{}, Options{Encoding: "utf8"})
	require.NoError(t, err)

	assert.Equal(t, value.CanonicalJSON(a), value.CanonicalJSON(b))
}

func TestNormalizeBase64Decodes(t *testing.T) {
	t.Parallel()

	out, err := Normalize(mustParse(t, `{"body":"aGVsbG8="}`), Config{}, Options{Encoding: encodingBase64})
	require.NoError(t, err)

	v, _ := out.Record().Get("body")
	assert.Equal(t, "hello", v.StringVal())
}

func TestNormalizeRejectsSelectorsInBase64Mode(t *testing.T) {
	t.Parallel()

	cfg := Config{JSONPath: &JSONPathSelector{Selector: "$.a"}}

	_, err := Normalize(mustParse(t, `{"body":"eyJhIjoxfQ=="}`), cfg, Options{
		Encoding: encodingBase64, WithSelectors: true,
	})
	require.ErrorIs(t, err, ErrValidation)
}
