package parser

import (
	"errors"
	"fmt"

	"tdop/interpreter-go/pkg/lexer"
)

// Parse error kinds, matched with errors.Is.
var (
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrMissingDelimiter      = errors.New("missing delimiter")
	ErrArgumentCount         = errors.New("argument count mismatch")
	ErrUndefinedFunction     = errors.New("undefined function")
	ErrInvalidAssignment     = errors.New("invalid assignment target")
	ErrReturnOutsideFunction = errors.New("return outside function")
)

// ParseError reports the token the parser stopped at.
type ParseError struct {
	Kind    error
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// IsIncomplete reports whether err was raised because the input ended
// early, meaning more lines could still make it parse.
func IsIncomplete(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.Token.Kind == lexer.EOF
}

func (p *Parser) errorf(kind error, tok lexer.Token, format string, args ...any) error {
	return &ParseError{Kind: kind, Token: tok, Message: fmt.Sprintf(format, args...)}
}

func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.Identifier:
		if isKeyword(tok.Text) {
			return fmt.Sprintf("keyword '%s'", tok.Text)
		}
		return fmt.Sprintf("identifier '%s'", tok.Text)
	default:
		return fmt.Sprintf("%s '%s'", tok.Kind, tok.Text)
	}
}
