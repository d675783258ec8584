package builtins

import (
	"fmt"

	"tdop/interpreter-go/pkg/runtime"
)

// Sum adds numeric arguments. The result is always a float, 0.0 for no
// arguments.
func Sum(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	total := 0.0
	for i, arg := range args {
		n, ok := arg.(runtime.NumberValue)
		if !ok {
			return nil, fmt.Errorf("%w: sum argument %d is %s, not number", runtime.ErrTypeMismatch, i+1, arg.Kind())
		}
		total += n.Val
	}
	return runtime.NumberValue{Val: total}, nil
}
