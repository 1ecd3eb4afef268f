package harness

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// DefaultExpect is the pass condition used when a case does not declare one.
const DefaultExpect = "score >= min && score <= max"

// newExpectEnv declares the variables visible to pass conditions.
func newExpectEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("score", cel.IntType),
		cel.Variable("min", cel.IntType),
		cel.Variable("max", cel.IntType),
	)
}

// Expectation is a compiled pass condition for a test case.
type Expectation struct {
	expr    string
	program cel.Program
}

// CompileExpectation parses and type-checks expr. The expression must evaluate
// to a bool.
func CompileExpectation(expr string) (*Expectation, error) {
	env, err := newExpectEnv()
	if err != nil {
		return nil, err
	}

	ast, iss := env.Parse(expr)
	if iss.Err() != nil {
		return nil, iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expect %q: must return bool, got %s", expr, checked.OutputType())
	}

	program, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	return &Expectation{expr: expr, program: program}, nil
}

// Eval reports whether score satisfies the condition for the range [lo, hi].
func (e *Expectation) Eval(score, lo, hi int) (bool, error) {
	out, _, err := e.program.Eval(map[string]any{
		"score": int64(score),
		"min":   int64(lo),
		"max":   int64(hi),
	})
	if err != nil {
		return false, fmt.Errorf("expect %q: %w", e.expr, err)
	}

	passed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expect %q: non-bool result %v", e.expr, out.Value())
	}
	return passed, nil
}

func (e *Expectation) String() string {
	return e.expr
}
