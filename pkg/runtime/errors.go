package runtime

import "errors"

// Error kinds raised while evaluating a program. Callers match them with
// errors.Is.
var (
	ErrUnboundVariable     = errors.New("unbound variable")
	ErrArityMismatch       = errors.New("arity mismatch")
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrCallDepthExceeded   = errors.New("call depth exceeded")
)
