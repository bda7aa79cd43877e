// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLoggingAppliesFlags(t *testing.T) {
	// InheritedFlags merges RootCmd's persistent flags into evaluateCmd,
	// the same way cobra does it on every real invocation; this test
	// mutates that shared state, so it cannot run in parallel with its
	// sibling below.
	cmd := evaluateCmd
	cmd.InheritedFlags()

	require.NoError(t, cmd.Flags().Set(flagLogLevel, "warn"))
	require.NoError(t, cmd.Flags().Set(flagLogFormat, "json"))

	err := configureLogging(cmd)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestConfigureLoggingRejectsUnknownLevel(t *testing.T) {
	cmd := evaluateCmd
	cmd.InheritedFlags()

	require.NoError(t, cmd.Flags().Set(flagLogLevel, "not-a-level"))

	err := configureLogging(cmd)
	require.Error(t, err)
}
