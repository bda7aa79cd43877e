// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/mountebank-go/predicate/internal/cellib"
	"github.com/mountebank-go/predicate/internal/value"
)

// errCELResultType mirrors the "inject must produce a boolean" contract.
var errCELResultType = fmt.Errorf("inject expression did not evaluate to a bool")

// runInject implements `inject(p)` (spec.md §4.6): the user-supplied CEL
// source is compiled fresh on every call (predicates are never cached
// between invocations) and evaluated against a deep copy of request as
// `scope`, with `imposterState` exposed verbatim and `debug`/`info`/
// `warn`/`error` bound to logger for the duration of this single call.
func runInject(source string, request value.Value, logger Logger, imposterState any) (bool, error) {
	if isDryRun(request) {
		return true, nil
	}

	env, err := cel.NewEnv(cellib.Requests(), loggingFuncs(logger), ext.NativeTypes())
	if err != nil {
		return false, NewInjectionError("failed to build CEL environment: "+err.Error(), source, nil, imposterState)
	}

	ast, iss := env.Compile(source)
	if iss.Err() != nil {
		return false, NewInjectionError("failed to compile inject source: "+iss.Err().Error(), source, nil, imposterState)
	}

	ast, iss = env.Check(ast)
	if iss != nil && iss.Err() != nil {
		return false, NewInjectionError("failed to type-check inject source: "+iss.Err().Error(), source, nil, imposterState)
	}

	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return false, NewInjectionError(
			fmt.Sprintf("%s: wanted bool, got %v", errCELResultType, ast.OutputType()), source, nil, imposterState)
	}

	prg, err := env.Program(ast, cel.EvalOptions(cel.OptOptimize))
	if err != nil {
		return false, NewInjectionError("failed to build CEL program: "+err.Error(), source, nil, imposterState)
	}

	scope := value.ToAny(request)

	out, _, err := prg.Eval(map[string]any{
		"scope":         scope,
		"logger":        logger,
		"imposterState": imposterState,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("inject failed: %s source=%s scope=%s imposterState=%s",
			err.Error(), source, prettyPrint(scope), prettyPrint(imposterState)))

		return false, NewInjectionError("inject raised: "+err.Error(), source, scope, imposterState)
	}

	return out.Value() == true, nil
}

// prettyPrint renders v as indented JSON for an operator-facing log line,
// falling back to fmt's verb when v isn't JSON-marshalable.
func prettyPrint(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}

	return string(b)
}

func isDryRun(request value.Value) bool {
	if request.Kind() != value.RecordKind {
		return false
	}

	v, ok := request.Record().Get("isDryRun")
	if !ok {
		return false
	}

	return truthy(v)
}

// loggingFuncs binds global `debug`/`info`/`warn`/`error` CEL functions to
// the evaluator's logger for a single inject call.
func loggingFuncs(logger Logger) cel.EnvOption {
	bind := func(name string, fn func(string)) cel.EnvOption {
		return cel.Function(name,
			cel.Overload(name+"_string", []*cel.Type{cel.StringType}, cel.BoolType,
				cel.UnaryBinding(func(arg ref.Val) ref.Val {
					// nolint: forcetypeassert
					fn(arg.Value().(string))

					return types.True
				}),
			),
		)
	}

	return cel.Lib(loggingLib{
		opts: []cel.EnvOption{
			bind("debug", logger.Debug),
			bind("info", logger.Info),
			bind("warn", logger.Warn),
			bind("error", logger.Error),
		},
	})
}

type loggingLib struct {
	opts []cel.EnvOption
}

func (loggingLib) LibraryName() string { return "mountebank-go.predicate.logging" }

func (l loggingLib) CompileOptions() []cel.EnvOption { return l.opts }

func (loggingLib) ProgramOptions() []cel.ProgramOption { return nil }
