package cpn

import (
	"fmt"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression is an arc guard/transform. The source is an expr-lang program
// evaluated against an environment of input values; see Transition for the
// environment layout. Compilation is lazy and cached.
type Expression struct {
	Source string

	once    sync.Once
	program *vm.Program
	compErr error
}

func NewExpression(source string) *Expression {
	return &Expression{Source: source}
}

func (e *Expression) compile() {
	e.once.Do(func() {
		e.program, e.compErr = expr.Compile(e.Source)
	})
}

// Validate reports whether the expression compiles.
func (e *Expression) Validate() error {
	e.compile()
	return e.compErr
}

// Eval runs the expression against env and flattens the result into a
// sequence: slices yield their elements, maps yield their values in key
// order, scalars yield themselves. Evaluation never panics out; failures
// come back as errors.
func (e *Expression) Eval(env map[string]interface{}) (out []interface{}, err error) {
	e.compile()
	if e.compErr != nil {
		return nil, e.compErr
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("expression %q panicked: %v", e.Source, r)
		}
	}()
	ret, err := vm.Run(e.program, env)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", e.Source, err)
	}
	return flatten(ret), nil
}

func flatten(v interface{}) []interface{} {
	switch val := v.(type) {
	case []interface{}:
		return val
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]interface{}, len(keys))
		for i, k := range keys {
			out[i] = val[k]
		}
		return out
	default:
		return []interface{}{v}
	}
}
