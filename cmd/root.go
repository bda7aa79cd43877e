// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// nolint: gochecknoglobals
var (
	Version = "master"

	// RootCmd represents the base command when called without any subcommands.
	RootCmd = &cobra.Command{
		Use:     "predicate",
		Short:   "Evaluate request predicates against a request record",
		Version: Version,
	}
)

// nolint: gochecknoinits
func init() {
	RootCmd.PersistentFlags().String(flagLogLevel, "info",
		`The log level: "debug", "info", "warn" or "error".`)
	RootCmd.PersistentFlags().String(flagLogFormat, "text",
		`The log format: "text" or "json".`)
}

// Execute adds all child commands to the root command and runs it. This
// is called by main.main(); it only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		RootCmd.PrintErr(err)
		os.Exit(-1)
	}
}
