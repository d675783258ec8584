package builtins

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"tdop/interpreter-go/pkg/runtime"
)

var (
	numberInput = regexp.MustCompile(`^\d+(?:\.\d*)?$`)
	wordInput   = regexp.MustCompile(`^\w+`)
)

// Puts writes its arguments separated by single spaces and ends the line.
func Puts(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = runtime.Format(arg)
	}
	if _, err := fmt.Fprintln(ctx.Stdout, strings.Join(parts, " ")); err != nil {
		return nil, fmt.Errorf("puts: %w", err)
	}
	return runtime.NullValue{}, nil
}

// Input prints its prompt and reads one line. A line that is entirely a
// decimal number becomes a Number, a line starting with a word character is
// returned as a String, anything else (including end of input) is null.
func Input(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: input expects 1 argument, got %d", runtime.ErrArityMismatch, len(args))
	}
	if _, err := fmt.Fprint(ctx.Stdout, runtime.Format(args[0])); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	if ctx.Stdin == nil {
		return runtime.NullValue{}, nil
	}
	line, err := ctx.Stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input: %w", err)
	}
	if err != nil && line == "" {
		return runtime.NullValue{}, nil
	}
	line = strings.TrimRight(line, "\r\n")
	switch {
	case numberInput.MatchString(line):
		// The pattern guarantees valid syntax; out of range values become inf.
		f, _ := strconv.ParseFloat(line, 64)
		return runtime.NumberValue{Val: f}, nil
	case wordInput.MatchString(line):
		return runtime.StringValue{Val: line}, nil
	default:
		return runtime.NullValue{}, nil
	}
}
