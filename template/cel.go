package template

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"github.com/nlpkit/lexicon"
)

// CompileCEL compiles a CEL expression into a template Func.
//
// The expression is evaluated with a single string variable `surface` (the
// raw key) and must produce a string. The CEL strings extension is enabled,
// so rules like these work out of the box:
//
//	surface.lowerAscii()
//	surface.replace("0", "#")
//	surface.endsWith("ing") ? "<ing>" : surface
//
// Compilation errors and non-string result types are reported up front. At
// evaluation time a failing program degrades to identity (the key passes
// through unchanged), since template normalization must never fail a lookup.
func CompileCEL(expr string) (Func, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		cel.Variable("surface", cel.StringType),
	)
	if err != nil {
		return nil, lexicon.NewInternalError("template.CompileCEL", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, lexicon.NewConfigurationError("template.CompileCEL",
			fmt.Errorf("%w: %v", lexicon.ErrInvalidConfig, iss.Err())).
			WithContext(map[string]any{"expression": expr})
	}

	if !ast.OutputType().IsExactType(cel.StringType) {
		return nil, lexicon.NewConfigurationError("template.CompileCEL", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{
				"expression": expr,
				"reason":     fmt.Sprintf("expression must produce a string, got %s", ast.OutputType()),
			})
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, lexicon.NewConfigurationError("template.CompileCEL",
			fmt.Errorf("%w: %v", lexicon.ErrInvalidConfig, err))
	}

	return func(key string) string {
		out, _, err := prg.Eval(map[string]any{"surface": key})
		if err != nil {
			return key
		}
		s, ok := out.Value().(string)
		if !ok {
			return key
		}
		return s
	}, nil
}
