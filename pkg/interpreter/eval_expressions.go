package interpreter

import (
	"fmt"
	"strings"

	"fortio.org/log"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/builtins"
	"tdop/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.NullValue{}, nil
	case *ast.Identifier:
		val, ok := env.Lookup(n.Name)
		if !ok {
			return nil, errorAt(n, fmt.Errorf("%w: name '%s' is not defined", runtime.ErrUnboundVariable, n.Name))
		}
		return val, nil
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case *ast.UnaryOp:
		return i.evaluateUnaryOp(n, env)
	case *ast.BinaryOp:
		return i.evaluateBinaryOp(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.BuiltinCall:
		return i.evaluateBuiltinCall(n, env)
	default:
		return nil, errorAt(node, fmt.Errorf("unsupported expression type: %s", node.NodeType()))
	}
}

// evaluateAssignment writes to env itself, never to an enclosing scope. A
// compound operator reads the current value first, so the name must be bound.
func (i *Interpreter) evaluateAssignment(assign *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	var current runtime.Value
	op := assign.Operator.BinaryOperator()
	if op != "" {
		val, ok := env.Lookup(assign.Name)
		if !ok {
			return nil, errorAt(assign, fmt.Errorf("%w: name '%s' is not defined", runtime.ErrUnboundVariable, assign.Name))
		}
		current = val
	}
	value, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return nil, err
	}
	if op != "" {
		if value, err = evaluateArithmetic(op, current, value); err != nil {
			return nil, errorAt(assign, err)
		}
	}
	env.Define(assign.Name, value)
	return value, nil
}

func (i *Interpreter) evaluateUnaryOp(expr *ast.UnaryOp, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNegate:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, errorAt(expr, fmt.Errorf("%w: bad operand type for unary -: %s", runtime.ErrTypeMismatch, operand.Kind()))
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case ast.UnaryOperatorNot:
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, errorAt(expr, fmt.Errorf("%w: unary %s", runtime.ErrUnsupportedOperator, expr.Operator))
	}
}

// evaluateBinaryOp evaluates both operands before looking at the operator,
// so `and` and `or` never skip their right operand. They yield the operand
// that decided the result.
func (i *Interpreter) evaluateBinaryOp(expr *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	var result runtime.Value
	switch expr.Operator {
	case "and":
		if !runtime.Truthy(left) {
			return left, nil
		}
		return right, nil
	case "or":
		if runtime.Truthy(left) {
			return left, nil
		}
		return right, nil
	case "==":
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		result, err = evaluateComparison(expr.Operator, left, right)
	default:
		result, err = evaluateArithmetic(expr.Operator, left, right)
	}
	if err != nil {
		return nil, errorAt(expr, err)
	}
	return result, nil
}

func (i *Interpreter) evaluateArguments(args *ast.ArgumentList, env *runtime.Environment) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, args.Len())
	if args == nil {
		return values, nil
	}
	for _, arg := range args.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// evaluateFunctionCall binds the arguments, evaluated in the caller's scope,
// in a fresh environment whose parent is the global one. The callee sees its
// parameters, its own locals and the globals, never the caller's locals.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	def := call.Function
	if def == nil || def.Body == nil {
		return nil, errorAt(call, fmt.Errorf("function %s has no definition", call.Name))
	}
	args, err := i.evaluateArguments(call.Arguments, env)
	if err != nil {
		return nil, err
	}
	if len(args) != len(def.Params) {
		return nil, errorAt(call, fmt.Errorf("%w: %s expects %d argument(s), got %d", runtime.ErrArityMismatch, def.Name, len(def.Params), len(args)))
	}
	if i.depth >= i.maxDepth {
		return nil, errorAt(call, fmt.Errorf("%w: more than %d nested calls (in %s)", runtime.ErrCallDepthExceeded, i.maxDepth, def.Name))
	}

	local := runtime.NewEnvironment(i.global)
	for idx, name := range def.Params {
		local.Define(name, args[idx])
	}
	if log.LogVerbose() {
		log.LogVf("interpreter: call %s(%s) depth=%d", def.Name, formatArgs(args), i.depth+1)
	}

	i.depth++
	c, err := i.executeBlock(def.Body, local)
	i.depth--
	if err != nil {
		return nil, err
	}
	if c.Kind == Returning {
		log.LogVf("interpreter: %s returned %s", def.Name, runtime.Inspect(c.Value))
		return c.Value, nil
	}
	return runtime.NullValue{}, nil
}

func (i *Interpreter) evaluateBuiltinCall(call *ast.BuiltinCall, env *runtime.Environment) (runtime.Value, error) {
	if call.Impl == nil {
		return nil, errorAt(call, fmt.Errorf("builtin %s has no implementation", call.Name))
	}
	args, err := i.evaluateArguments(call.Arguments, env)
	if err != nil {
		return nil, err
	}
	if call.Arity != builtins.Variadic && len(args) != call.Arity {
		return nil, errorAt(call, fmt.Errorf("%w: %s expects %d argument(s), got %d", runtime.ErrArityMismatch, call.Name, call.Arity, len(args)))
	}
	result, err := call.Impl(i.native, args)
	if err != nil {
		return nil, errorAt(call, err)
	}
	if result == nil {
		return runtime.NullValue{}, nil
	}
	return result, nil
}

func formatArgs(args []runtime.Value) string {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = runtime.Inspect(arg)
	}
	return strings.Join(parts, ", ")
}
