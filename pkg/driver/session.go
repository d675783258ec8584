package driver

import (
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/builtins"
	"tdop/interpreter-go/pkg/interpreter"
	"tdop/interpreter-go/pkg/lexer"
	"tdop/interpreter-go/pkg/parser"
	"tdop/interpreter-go/pkg/runtime"
)

// Session keeps the state that outlives a single source text: the global
// environment and the table of defined functions. The REPL feeds every
// complete entry through one Session.
type Session struct {
	builtins  *builtins.Registry
	functions *parser.FunctionTable
	interp    *interpreter.Interpreter
}

// Result describes one successful RunSource call.
type Result struct {
	Name    string
	Source  string
	Tokens  []lexer.Token
	Program *ast.Program
	Value   runtime.Value
}

// NewSession wires builtins.Default to an interpreter using the given
// streams.
func NewSession(stdin io.Reader, stdout io.Writer, maxCallDepth int) *Session {
	return &Session{
		builtins:  builtins.Default(),
		functions: parser.NewFunctionTable(),
		interp: interpreter.New(
			interpreter.WithStdin(stdin),
			interpreter.WithStdout(stdout),
			interpreter.WithMaxCallDepth(maxCallDepth),
		),
	}
}

// RunSource tokenizes, parses and executes src. Functions defined by src
// become visible to later calls only if the whole text parsed.
func (s *Session) RunSource(name, src string) (*Result, error) {
	res := &Result{Name: name, Source: src}
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return res, err
	}
	res.Tokens = tokens
	log.LogVf("%s: %d tokens", name, len(tokens))

	program, err := parser.New(tokens,
		parser.WithBuiltins(s.builtins),
		parser.WithFunctions(s.functions),
	).Parse()
	if err != nil {
		return res, err
	}
	res.Program = program

	value, err := s.interp.Run(program)
	if err != nil {
		return res, err
	}
	res.Value = value
	return res, nil
}

// RunFile runs the file at path as a single source text.
func (s *Session) RunFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.RunSource(path, string(data))
}

// Environment returns the global environment shared by all runs.
func (s *Session) Environment() *runtime.Environment {
	return s.interp.GlobalEnvironment()
}

// Functions returns the table of user functions defined so far.
func (s *Session) Functions() *parser.FunctionTable {
	return s.functions
}

// Echo reports whether the REPL should print the result: the entry must
// end in a bare expression (not an assignment) with a non-null value.
func (r *Result) Echo() bool {
	if r == nil || r.Program == nil || r.Value == nil || len(r.Program.Statements) == 0 {
		return false
	}
	last, ok := r.Program.Statements[len(r.Program.Statements)-1].(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	if _, assign := last.Expression.(*ast.Assignment); assign {
		return false
	}
	return r.Value.Kind() != runtime.KindNull
}
