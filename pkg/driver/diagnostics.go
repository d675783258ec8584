package driver

import (
	"errors"
	"fmt"
	"strings"

	"tdop/interpreter-go/pkg/interpreter"
	"tdop/interpreter-go/pkg/lexer"
	"tdop/interpreter-go/pkg/parser"
	"tdop/interpreter-go/pkg/runtime"
)

// ErrorKind names the class of err as it appears in diagnostics and test
// fixtures. Unknown errors report "Error".
func ErrorKind(err error) string {
	var lexErr *lexer.LexError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &lexErr):
		return "LexError"
	case errors.Is(err, parser.ErrUndefinedFunction):
		return "UndefinedFunction"
	case errors.Is(err, parser.ErrArgumentCount):
		return "ArgumentCount"
	case errors.Is(err, runtime.ErrUnboundVariable):
		return "UnboundVariable"
	case errors.Is(err, runtime.ErrArityMismatch):
		return "ArityMismatch"
	case errors.Is(err, runtime.ErrUnsupportedOperator):
		return "UnsupportedOperator"
	case errors.Is(err, runtime.ErrDivisionByZero):
		return "DivisionByZero"
	case errors.Is(err, runtime.ErrTypeMismatch):
		return "TypeMismatch"
	case errors.Is(err, runtime.ErrCallDepthExceeded):
		return "CallDepthExceeded"
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return "ParseError"
	}
	var runErr *interpreter.RuntimeError
	if errors.As(err, &runErr) {
		return "RuntimeError"
	}
	return "Error"
}

// errorPosition extracts the 1-based line and column carried by err.
func errorPosition(err error) (line, col int, ok bool) {
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Line, lexErr.Column, true
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Token.Line, parseErr.Token.Column, true
	}
	var runErr *interpreter.RuntimeError
	if errors.As(err, &runErr) {
		return runErr.Pos.Line, runErr.Pos.Column, true
	}
	return 0, 0, false
}

// Describe renders err with its kind, the source name and, when the error
// is positioned inside src, the offending line with a caret under the
// column.
//
//	ParseError: script.tdop:2:5: parse error at 2:5: expected ';' ...
//	   2 | x = 1 +
//	     |     ^
func Describe(err error, name, src string) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	line, col, ok := errorPosition(err)
	if ok && name != "" {
		fmt.Fprintf(&b, "%s: %s:%d:%d: %v", ErrorKind(err), name, line, col, err)
	} else {
		fmt.Fprintf(&b, "%s: %v", ErrorKind(err), err)
	}
	if !ok {
		return b.String()
	}
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return b.String()
	}
	text := strings.TrimRight(lines[line-1], "\r")
	pad := caretPadding(text, col)
	fmt.Fprintf(&b, "\n%4d | %s\n     | %s^", line, text, pad)
	return b.String()
}

// caretPadding returns the whitespace that puts a caret under column col,
// keeping tabs so the caret lines up with the source line.
func caretPadding(text string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < col; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}
