// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEquals(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		expected string
		actual   string
		cfg      Config
		want     bool
	}{
		{
			uc:       "matches after case folding by default",
			expected: `{"field":"TEST"}`,
			actual:   `{"field":"test"}`,
			want:     true,
		},
		{
			uc:       "rejects case mismatch when caseSensitive",
			expected: `{"field":"TEST"}`,
			actual:   `{"field":"test"}`,
			cfg:      Config{CaseSensitive: true},
			want:     false,
		},
		{
			uc:       "rejects a differing value",
			expected: `{"field":"foo"}`,
			actual:   `{"field":"bar"}`,
			want:     false,
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			got, err := runEquals(mustParse(t, tc.expected), mustParse(t, tc.actual), tc.cfg, "utf8")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRunContains(t *testing.T) {
	t.Parallel()

	got, err := runContains(
		mustParse(t, `{"field":"ell"}`),
		mustParse(t, `{"field":"hello world"}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = runContains(
		mustParse(t, `{"field":"xyz"}`),
		mustParse(t, `{"field":"hello world"}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRunStartsWithEndsWith(t *testing.T) {
	t.Parallel()

	ok, err := runStartsWith(mustParse(t, `{"field":"hel"}`), mustParse(t, `{"field":"hello"}`), Config{}, "utf8")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = runEndsWith(mustParse(t, `{"field":"llo"}`), mustParse(t, `{"field":"hello"}`), Config{}, "utf8")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = runEndsWith(mustParse(t, `{"field":"llx"}`), mustParse(t, `{"field":"hello"}`), Config{}, "utf8")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunExists(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		expected string
		actual   string
		want     bool
	}{
		{
			uc:       "field present and truthy expectation satisfied",
			expected: `{"field":true}`,
			actual:   `{"field":"present"}`,
			want:     true,
		},
		{
			uc:       "field absent but truthy expectation requested",
			expected: `{"field":true}`,
			actual:   `{}`,
			want:     false,
		},
		{
			uc:       "field absent matches falsy expectation",
			expected: `{"field":false}`,
			actual:   `{}`,
			want:     true,
		},
		{
			uc:       "field present but falsy expectation requested",
			expected: `{"field":false}`,
			actual:   `{"field":"present"}`,
			want:     false,
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			got, err := runExists(mustParse(t, tc.expected), mustParse(t, tc.actual), Config{}, "utf8")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRunMatches(t *testing.T) {
	t.Parallel()

	ok, err := runMatches(
		mustParse(t, `{"field":"^[0-9]+$"}`),
		mustParse(t, `{"field":"12345"}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = runMatches(
		mustParse(t, `{"field":"^[0-9]+$"}`),
		mustParse(t, `{"field":"abc"}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = runMatches(
		mustParse(t, `{"field":"^[0-9]+$"}`),
		mustParse(t, `{"field":"MTIzNDU="}`),
		Config{}, encodingBase64,
	)
	require.Error(t, err)
}

func TestRunMatchesPreservesRegexCase(t *testing.T) {
	t.Parallel()

	// A character class like [A-Z] must survive normalization
	// untouched even when caseSensitive is false: lowercasing the
	// pattern text itself would turn it into [a-z] and change its
	// meaning. The match against actual still happens case-insensitively
	// because caseSensitive governs the comparison, not the pattern text.
	ok, err := runMatches(
		mustParse(t, `{"field":"[A-Z]+"}`),
		mustParse(t, `{"field":"hello"}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunMatchesPreservesKeyCaseFolding(t *testing.T) {
	t.Parallel()

	// keyCaseSensitive is left unset here, so it must fall back to the
	// user's original caseSensitive (false), not to the forced
	// caseSensitive=true used internally for the regex text itself.
	// Otherwise "Method" never folds to match "method" and this wrongly
	// returns false.
	ok, err := runMatches(
		mustParse(t, `{"Method":"^GET$"}`),
		mustParse(t, `{"method":"GET"}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunDeepEquals(t *testing.T) {
	t.Parallel()

	ok, err := runDeepEquals(
		mustParse(t, `{"field":{"a":1,"b":"two"}}`),
		mustParse(t, `{"field":{"a":1,"b":"two"}}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = runDeepEquals(
		mustParse(t, `{"field":{"a":1}}`),
		mustParse(t, `{"field":{"a":2}}`),
		Config{}, "utf8",
	)
	require.NoError(t, err)
	assert.False(t, ok)
}
