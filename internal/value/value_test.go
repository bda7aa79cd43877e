// SPDX-License-Identifier: Apache-2.0

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountebank-go/predicate/internal/value"
)

func TestParseJSONRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc   string
		json string
	}{
		{uc: "object with nested array", json: `{"a":1,"b":[true,false,null],"c":"x"}`},
		{uc: "bare scalar", json: `"hello"`},
		{uc: "empty object", json: `{}`},
	} {
		t.Run("case="+tc.uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			v, err := value.ParseJSON([]byte(tc.json))

			// THEN
			require.NoError(t, err)
			assert.JSONEq(t, tc.json, value.CanonicalJSON(v))
		})
	}
}

func TestCanonicalJSONSortsKeysAtEveryDepth(t *testing.T) {
	t.Parallel()

	// GIVEN
	v1, err := value.ParseJSON([]byte(`{"b":1,"a":{"z":1,"y":2}}`))
	require.NoError(t, err)

	v2, err := value.ParseJSON([]byte(`{"a":{"y":2,"z":1},"b":1}`))
	require.NoError(t, err)

	// WHEN / THEN
	assert.Equal(t, value.CanonicalJSON(v1), value.CanonicalJSON(v2))
}

func TestRecordPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	// GIVEN
	rec := value.NewRecord()
	rec.Set("z", value.StringValue("1"))
	rec.Set("a", value.StringValue("2"))

	// WHEN / THEN
	assert.Equal(t, []string{"z", "a"}, rec.Keys())
}

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	t.Parallel()

	// GIVEN
	in := map[string]any{"name": "Bob", "age": 30, "tags": []any{"a", "b"}}

	// WHEN
	v := value.FromAny(in)
	out := value.ToAny(v)

	// THEN
	outMap, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bob", outMap["name"])
	assert.Equal(t, []any{"a", "b"}, outMap["tags"])
}
