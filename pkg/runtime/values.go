package runtime

import (
	"bufio"
	"io"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
}

// NumberValue is the only numeric type; integer literals are floats too.
type NumberValue struct {
	Val float64
}

func (NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// Native functions

// NativeCallContext carries the process streams a builtin may use.
type NativeCallContext struct {
	Stdout io.Writer
	Stdin  *bufio.Reader
}

type NativeFunc func(ctx *NativeCallContext, args []Value) (Value, error)

// Truthy applies the language's truthiness rules: null, false, 0 and the
// empty string are false, everything else is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	default:
		return true
	}
}

// Equal compares two values. Values of different kinds are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	}
	return false
}
