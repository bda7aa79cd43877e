// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mountebank-go/predicate/internal/value"
)

func mustParse(t *testing.T, s string) value.Value {
	t.Helper()

	v, err := value.ParseJSON([]byte(s))
	require.NoError(t, err)

	return v
}
