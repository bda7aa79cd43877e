// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mountebank-go/predicate/internal/predicate"
	"github.com/mountebank-go/predicate/internal/value"
	"github.com/mountebank-go/predicate/internal/x/stringx"
	"github.com/mountebank-go/predicate/logging"
)

const (
	flagPredicate = "predicate"
	flagRequest   = "request"
	flagEncoding  = "encoding"
)

// nolint: gochecknoglobals
var evaluateCmd = &cobra.Command{
	Use:     "evaluate",
	Short:   "Evaluates a predicate against a request record",
	Example: "predicate evaluate --predicate pred.json --request req.json",
	Run: func(cmd *cobra.Command, _ []string) {
		matched, err := runEvaluate(cmd)
		if err != nil {
			cmd.PrintErrf("%v\n", err)
			os.Exit(1)
		}

		if !matched {
			os.Exit(1)
		}
	},
}

// nolint: gochecknoinits
func init() {
	RootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String(flagPredicate, "", "Path to a JSON file containing the predicate")
	evaluateCmd.Flags().String(flagRequest, "", "Path to a JSON file containing the request")
	evaluateCmd.Flags().String(flagEncoding, "utf8", `Request body encoding: "utf8" or "base64"`)

	_ = evaluateCmd.MarkFlagRequired(flagPredicate)
	_ = evaluateCmd.MarkFlagRequired(flagRequest)
}

func runEvaluate(cmd *cobra.Command) (bool, error) {
	predicatePath, _ := cmd.Flags().GetString(flagPredicate)
	requestPath, _ := cmd.Flags().GetString(flagRequest)
	encoding, _ := cmd.Flags().GetString(flagEncoding)

	if err := configureLogging(cmd); err != nil {
		return false, err
	}

	predicateBytes, err := os.ReadFile(predicatePath)
	if err != nil {
		return false, err
	}

	requestBytes, err := os.ReadFile(requestPath)
	if err != nil {
		return false, err
	}

	log.Debug().Msg("predicate: " + stringx.ToString(predicateBytes))
	log.Debug().Msg("request: " + stringx.ToString(requestBytes))

	predicateVal, err := value.ParseJSON(predicateBytes)
	if err != nil {
		return false, err
	}

	requestVal, err := value.ParseJSON(requestBytes)
	if err != nil {
		return false, err
	}

	matched, err := predicate.Evaluate(predicateVal, requestVal, encoding, logging.PredicateLogger{}, nil)
	if err != nil {
		return false, err
	}

	cmd.Println(matched)

	return matched, nil
}

// configureLogging reads the --log-level/--log-format persistent flags
// (inherited from RootCmd) and wires them into the logging package before
// dispatch, the same way heimdall's root command configures logging ahead
// of running serve/validate.
func configureLogging(cmd *cobra.Command) error {
	levelStr, _ := cmd.Flags().GetString(flagLogLevel)
	formatStr, _ := cmd.Flags().GetString(flagLogFormat)

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return err
	}

	format := logging.TextFormat
	if formatStr == "json" {
		format = logging.JSONFormat
	}

	logging.Configure(format, level)

	return nil
}
