package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested function calls.
const DefaultMaxCallDepth = 10000

// Interpreter evaluates programs against one global environment. Successive
// Run calls share that environment.
type Interpreter struct {
	global   *runtime.Environment
	native   *runtime.NativeCallContext
	maxDepth int
	depth    int
}

type Option func(*Interpreter)

// WithStdout sets where builtins write.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.native.Stdout = w }
}

// WithStdin sets where input() reads from.
func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) {
		if br, ok := r.(*bufio.Reader); ok {
			i.native.Stdin = br
			return
		}
		i.native.Stdin = bufio.NewReader(r)
	}
}

// WithMaxCallDepth limits recursion; n <= 0 keeps the default.
func WithMaxCallDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxDepth = n
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:   runtime.NewEnvironment(nil),
		native:   &runtime.NativeCallContext{Stdout: os.Stdout},
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.native.Stdin == nil {
		i.native.Stdin = bufio.NewReader(os.Stdin)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Run executes the program's statements in order and returns the value of
// the last statement (null unless it was an expression statement).
func (i *Interpreter) Run(program *ast.Program) (runtime.Value, error) {
	var last runtime.Value = runtime.NullValue{}
	for _, stmt := range program.Statements {
		c, err := i.executeStatement(stmt, i.global)
		if err != nil {
			return nil, err
		}
		if c.Kind == Returning {
			return nil, &RuntimeError{Pos: stmt.Pos(), Err: fmt.Errorf("return outside function")}
		}
		last = c.Value
	}
	return last, nil
}

// CompletionKind tells whether a statement finished normally or is
// returning from the enclosing function.
type CompletionKind int

const (
	Normal CompletionKind = iota
	Returning
)

// Completion is the outcome of executing a statement or block. Blocks stop at
// the first Returning completion and hand it to their caller unchanged.
type Completion struct {
	Kind  CompletionKind
	Value runtime.Value
}

func normal(v runtime.Value) Completion    { return Completion{Kind: Normal, Value: v} }
func returning(v runtime.Value) Completion { return Completion{Kind: Returning, Value: v} }

// RuntimeError attaches a source position to an evaluation error. The
// wrapped error matches the runtime.Err* kinds with errors.Is.
type RuntimeError struct {
	Pos ast.Position
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// errorAt positions err at node unless an inner node already did.
func errorAt(node ast.Node, err error) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	return &RuntimeError{Pos: node.Pos(), Err: err}
}
