package parser

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/builtins"
	"tdop/interpreter-go/pkg/runtime"
)

func mustParse(t *testing.T, src string, opts ...Option) *ast.Program {
	t.Helper()
	program, err := ParseSource(src, opts...)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", src, err)
	}
	return program
}

func TestExpressionPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2 + 3 * 4;", "(+ 2.0 (* 3.0 4.0))"},
		{"(2 + 3) * 4;", "(* (+ 2.0 3.0) 4.0)"},
		{"1 - 2 - 3;", "(- (- 1.0 2.0) 3.0)"},
		{"8 / 4 / 2;", "(/ (/ 8.0 4.0) 2.0)"},
		{"2 ** 3 ** 2;", "(** 2.0 (** 3.0 2.0))"},
		{"2 ** 3 * 4;", "(* (** 2.0 3.0) 4.0)"},
		{"-2 ** 2;", "(** (- 2.0) 2.0)"},
		{"2 * -3;", "(* 2.0 (- 3.0))"},
		{"- - x;", "(- (- x))"},
		{"not a == b;", "(== (not a) b)"},
		{"a < b == true;", "(== (< a b) true)"},
		{"1 + 2 < 3 and x;", "(and (< (+ 1.0 2.0) 3.0) x)"},
		{"a or b and c;", "(and (or a b) c)"},
		{"x = y = 1 + 2;", "(= x (= y (+ 1.0 2.0)))"},
		{"x += 2 * 3;", "(+= x (* 2.0 3.0))"},
		{"x = a or b;", "(= x (or a b))"},
		{`'a' + "b";`, `(+ "a" "b")`},
		{"null == false;", "(== null false)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got := ast.Format(mustParse(t, tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected tree (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseControlConstructs(t *testing.T) {
	src := `
if (false) puts(1);
elif (true) puts(2);
else puts(3);
end
while (i < 3)
  i += 1;
end
if (x) end
`
	want := `(if false (block (builtin puts 1.0)) (elif true (block (builtin puts 2.0))) (else (block (builtin puts 3.0))))
(while (< i 3.0) (block (+= i 1.0)))
(if x (block))`
	got := ast.Format(mustParse(t, src))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}

	program := mustParse(t, src)
	cond, ok := program.Statements[0].(*ast.If)
	require.True(t, ok)
	assert.Len(t, cond.Branches, len(cond.Conditions))
	assert.Equal(t, ast.Position{Line: 2, Column: 1}, cond.Pos())
}

func TestParseFunctionDefinitionAndCall(t *testing.T) {
	program := mustParse(t, "func add(a, b) return a + b; end puts(add(1, 2));")
	want := "(func add (a b) (block (return (+ a b))))\n(builtin puts (call add 1.0 2.0))"
	assert.Equal(t, want, ast.Format(program))

	def := program.Statements[0].(*ast.FunctionDefinition)
	call := program.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.BuiltinCall).Arguments.Arguments[0].(*ast.FunctionCall)
	assert.Same(t, def, call.Function)
}

func TestParseForwardReference(t *testing.T) {
	program := mustParse(t, "x = double(2); func double(n) return n * 2; end")
	call := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Assignment).Value.(*ast.FunctionCall)
	def := program.Statements[1].(*ast.FunctionDefinition)
	assert.Same(t, def, call.Function)
	require.NotNil(t, call.Function.Body)
	assert.Len(t, call.Function.Body.Statements, 1)
}

func TestParseForwardReferenceChecksArity(t *testing.T) {
	_, err := ParseSource("x = double(2, 3); func double(n) return n * 2; end")
	assert.ErrorIs(t, err, ErrArgumentCount)
}

func TestParseRecursiveFunction(t *testing.T) {
	program := mustParse(t, `
func fact(n)
  if (n <= 1) return 1; end
  return n * fact(n - 1);
end
`)
	def := program.Statements[0].(*ast.FunctionDefinition)
	ret := def.Body.Statements[1].(*ast.Return)
	call := ret.Value.(*ast.BinaryOp).Right.(*ast.FunctionCall)
	assert.Same(t, def, call.Function)
}

func TestParseRedefinitionRebindsLaterCalls(t *testing.T) {
	program := mustParse(t, `
func f(a) return a; end
f(1);
func f(a, b) return a + b; end
f(1, 2);
`)
	first := program.Statements[0].(*ast.FunctionDefinition)
	second := program.Statements[2].(*ast.FunctionDefinition)
	firstCall := program.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.FunctionCall)
	secondCall := program.Statements[3].(*ast.ExpressionStatement).Expression.(*ast.FunctionCall)
	assert.Same(t, first, firstCall.Function)
	assert.Same(t, second, secondCall.Function)
}

func TestParseReturnWithoutValue(t *testing.T) {
	cases := map[string]string{
		"func f() return end":            "(func f () (block (return null)))",
		"func f() return; end":           "(func f () (block (return null)))",
		"func f() return 1 end":          "(func f () (block (return 1.0)))",
		"func f() return x; x = 1; end":  "(func f () (block (return x) (= x 1.0)))",
		"func f() if (x) return end end": "(func f () (block (if x (block (return null)))))",
	}
	for src, want := range cases {
		assert.Equal(t, want, ast.Format(mustParse(t, src)), src)
	}
}

func TestParseEmptyStatements(t *testing.T) {
	program := mustParse(t, ";; x = 1;;")
	assert.Len(t, program.Statements, 1)
	assert.Empty(t, mustParse(t, "").Statements)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind error
	}{
		{"1 +;", ErrUnexpectedToken},
		{"x y;", ErrUnexpectedToken},
		{"x = (1 + 2", ErrMissingDelimiter},
		{"puts(1 2);", ErrUnexpectedToken},
		{"puts(1, 2", ErrMissingDelimiter},
		{"puts;", ErrUnexpectedToken},
		{"if (x) puts(1);", ErrMissingDelimiter},
		{"while (true) x = 1;", ErrMissingDelimiter},
		{"if x puts(1); end", ErrUnexpectedToken},
		{"func f(a) return a; end f(1, 2);", ErrArgumentCount},
		{"input();", ErrArgumentCount},
		{"input(1, 2);", ErrArgumentCount},
		{"g(1);", ErrUndefinedFunction},
		{"1 = 2;", ErrInvalidAssignment},
		{"a + b = 2;", ErrInvalidAssignment},
		{"return 1;", ErrReturnOutsideFunction},
		{"x = if;", ErrUnexpectedToken},
		{"else;", ErrUnexpectedToken},
		{"1..5;", ErrUnexpectedToken},
		{"func f(a, ) end", ErrUnexpectedToken},
		{"func f(a, a) end", ErrUnexpectedToken},
		{"func while() end", ErrUnexpectedToken},
		{"func puts(x) end", ErrUnexpectedToken},
		{"while (true) elif end", ErrUnexpectedToken},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			_, err := ParseSource(tc.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "expected %v, got %v", tc.kind, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseSource("x = 1;\ny = ;")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Token.Line)
	assert.Equal(t, 5, perr.Token.Column)
	assert.Equal(t, "parse error at 2:5: unexpected SEMICOLON ';' at start of expression", err.Error())
}

func TestIsIncomplete(t *testing.T) {
	incomplete := []string{"x = 1", "func f(a)", "if (x) puts(1);", "puts(1,", "x = (1"}
	for _, src := range incomplete {
		_, err := ParseSource(src)
		assert.True(t, IsIncomplete(err), src)
	}
	_, err := ParseSource("x = ;")
	assert.False(t, IsIncomplete(err))
	assert.False(t, IsIncomplete(nil))
}

func TestFunctionTablePersistsAcrossParses(t *testing.T) {
	table := NewFunctionTable()
	mustParse(t, "func square(x) return x * x; end", WithFunctions(table))
	assert.Equal(t, []string{"square"}, table.Names())

	program := mustParse(t, "puts(square(3));", WithFunctions(table))
	assert.Equal(t, "(builtin puts (call square 3.0))", ast.Format(program))
}

func TestFailedParseDoesNotDefineFunctions(t *testing.T) {
	table := NewFunctionTable()
	_, err := ParseSource("func g() return 1; end g(;", WithFunctions(table))
	require.Error(t, err)
	assert.Empty(t, table.Names())

	_, err = ParseSource("g();", WithFunctions(table))
	assert.ErrorIs(t, err, ErrUndefinedFunction)
}

func TestCustomBuiltinRegistry(t *testing.T) {
	twice := func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		return runtime.NumberValue{Val: 2 * args[0].(runtime.NumberValue).Val}, nil
	}
	reg := builtins.NewRegistry(builtins.Builtin{Name: "twice", Arity: 1, Impl: twice})

	program := mustParse(t, "twice(4);", WithBuiltins(reg))
	call := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BuiltinCall)
	assert.Equal(t, 1, call.Arity)
	assert.NotNil(t, call.Impl)

	_, err := ParseSource("puts(1);", WithBuiltins(reg))
	assert.ErrorIs(t, err, ErrUndefinedFunction)
}

func TestParsersRunIndependently(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf("x = f(%d); func f(n) return n + %d; end", i, i)
			_, errs[i] = ParseSource(src, WithFunctions(NewFunctionTable()))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, "parser %d", i)
	}
}

func TestBindingPowerLadder(t *testing.T) {
	ladder := []BindingPower{Default, Comma, Assignment, Logical, Relational, Additive, Multiplicative, Exponential, Unary, Call, Member, Primary}
	for i := 1; i < len(ladder); i++ {
		assert.Less(t, int(ladder[i-1]), int(ladder[i]))
	}
	assert.Equal(t, "exponential", Exponential.String())
}
