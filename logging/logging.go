// SPDX-License-Identifier: Apache-2.0

// Package logging configures the process-wide zerolog logger and adapts
// it to the predicate.Logger interface that `inject` predicates call
// into.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mountebank-go/predicate/internal/predicate"
)

// Format selects the global logger's output encoding.
type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

// Configure sets the global zerolog.Logger used by the CLI and by
// PredicateLogger, per format and level.
func Configure(format Format, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)

	if format == TextFormat {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		return
	}

	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Caller().
		Logger()
}

// PredicateLogger adapts the global zerolog.Logger to predicate.Logger.
type PredicateLogger struct{}

var _ predicate.Logger = PredicateLogger{}

func (PredicateLogger) Debug(msg string) { log.Debug().Msg(msg) }
func (PredicateLogger) Info(msg string)  { log.Info().Msg(msg) }
func (PredicateLogger) Warn(msg string)  { log.Warn().Msg(msg) }
func (PredicateLogger) Error(msg string) { log.Error().Msg(msg) }
