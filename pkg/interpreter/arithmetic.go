package interpreter

import (
	"fmt"
	"math"
	"strings"

	"tdop/interpreter-go/pkg/runtime"
)

// evaluateArithmetic applies + - * / **. Only + accepts strings, and only
// when both sides are strings.
func evaluateArithmetic(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.NumberValue:
		rv, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, operandError(op, left, right)
		}
		switch op {
		case "+":
			return runtime.NumberValue{Val: lv.Val + rv.Val}, nil
		case "-":
			return runtime.NumberValue{Val: lv.Val - rv.Val}, nil
		case "*":
			return runtime.NumberValue{Val: lv.Val * rv.Val}, nil
		case "/":
			if rv.Val == 0 {
				return nil, fmt.Errorf("%w: %s / 0", runtime.ErrDivisionByZero, runtime.FormatNumber(lv.Val))
			}
			return runtime.NumberValue{Val: lv.Val / rv.Val}, nil
		case "**":
			if lv.Val == 0 && rv.Val < 0 {
				return nil, fmt.Errorf("%w: 0 cannot be raised to a negative power", runtime.ErrDivisionByZero)
			}
			return runtime.NumberValue{Val: math.Pow(lv.Val, rv.Val)}, nil
		}
	case runtime.StringValue:
		if op != "+" {
			break
		}
		rv, ok := right.(runtime.StringValue)
		if !ok {
			return nil, operandError(op, left, right)
		}
		return runtime.StringValue{Val: lv.Val + rv.Val}, nil
	}
	if !isArithmeticOperator(op) {
		return nil, fmt.Errorf("%w: %s", runtime.ErrUnsupportedOperator, op)
	}
	return nil, operandError(op, left, right)
}

// evaluateComparison orders two numbers or two strings.
func evaluateComparison(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.NumberValue:
		rv, ok := right.(runtime.NumberValue)
		if !ok {
			break
		}
		switch op {
		case "<":
			return runtime.BoolValue{Val: lv.Val < rv.Val}, nil
		case "<=":
			return runtime.BoolValue{Val: lv.Val <= rv.Val}, nil
		case ">":
			return runtime.BoolValue{Val: lv.Val > rv.Val}, nil
		case ">=":
			return runtime.BoolValue{Val: lv.Val >= rv.Val}, nil
		}
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		if !ok {
			break
		}
		if result, ok := comparisonOp(op, strings.Compare(lv.Val, rv.Val)); ok {
			return runtime.BoolValue{Val: result}, nil
		}
	}
	if _, ok := comparisonOp(op, 0); !ok {
		return nil, fmt.Errorf("%w: %s", runtime.ErrUnsupportedOperator, op)
	}
	return nil, operandError(op, left, right)
}

func comparisonOp(op string, cmp int) (bool, bool) {
	switch op {
	case "<":
		return cmp < 0, true
	case "<=":
		return cmp <= 0, true
	case ">":
		return cmp > 0, true
	case ">=":
		return cmp >= 0, true
	default:
		return false, false
	}
}

func isArithmeticOperator(op string) bool {
	switch op {
	case "+", "-", "*", "/", "**":
		return true
	}
	return false
}

func operandError(op string, left, right runtime.Value) error {
	return fmt.Errorf("%w: unsupported operand types for %s: %s and %s", runtime.ErrTypeMismatch, op, left.Kind(), right.Kind())
}
