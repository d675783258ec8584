package interpreter

import (
	"fmt"

	"fortio.org/log"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (Completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		val, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return Completion{}, err
		}
		return normal(val), nil
	case *ast.Return:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return Completion{}, err
		}
		return returning(val), nil
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.FunctionDefinition:
		// Registered by the parser; nothing happens at run time.
		return normal(runtime.NullValue{}), nil
	default:
		return Completion{}, errorAt(node, fmt.Errorf("unsupported statement type: %s", node.NodeType()))
	}
}

// executeBlock runs statements in env until one of them returns. Blocks do
// not open a new scope.
func (i *Interpreter) executeBlock(block *ast.Block, env *runtime.Environment) (Completion, error) {
	if block == nil {
		return normal(runtime.NullValue{}), nil
	}
	for _, stmt := range block.Statements {
		c, err := i.executeStatement(stmt, env)
		if err != nil {
			return Completion{}, err
		}
		if c.Kind == Returning {
			return c, nil
		}
	}
	return normal(runtime.NullValue{}), nil
}

func (i *Interpreter) executeIf(stmt *ast.If, env *runtime.Environment) (Completion, error) {
	for idx, cond := range stmt.Conditions {
		val, err := i.evaluateExpression(cond, env)
		if err != nil {
			return Completion{}, err
		}
		if runtime.Truthy(val) {
			return i.executeBlock(stmt.Branches[idx], env)
		}
	}
	if stmt.Else != nil {
		return i.executeBlock(stmt.Else, env)
	}
	return normal(runtime.NullValue{}), nil
}

func (i *Interpreter) executeWhile(loop *ast.While, env *runtime.Environment) (Completion, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return Completion{}, err
		}
		if !runtime.Truthy(cond) {
			return normal(runtime.NullValue{}), nil
		}
		c, err := i.executeBlock(loop.Body, env)
		if err != nil {
			return Completion{}, err
		}
		if c.Kind == Returning {
			log.LogVf("interpreter: return leaves while loop at %d:%d", loop.Pos().Line, loop.Pos().Column)
			return c, nil
		}
	}
}
