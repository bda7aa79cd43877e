// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdDefinesGlobalLoggingFlags(t *testing.T) {
	t.Parallel()

	levelFlag := RootCmd.PersistentFlags().Lookup(flagLogLevel)
	assert.NotNil(t, levelFlag)
	assert.Equal(t, "info", levelFlag.DefValue)
	assert.NotEmpty(t, levelFlag.Usage)

	formatFlag := RootCmd.PersistentFlags().Lookup(flagLogFormat)
	assert.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
	assert.NotEmpty(t, formatFlag.Usage)
}
