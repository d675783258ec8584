package parser

import (
	"fortio.org/log"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/builtins"
	"tdop/interpreter-go/pkg/lexer"
)

// Parser turns one token stream into a Program. Function definitions it
// parses are staged locally and only written to the shared FunctionTable
// when the whole stream parses.
type Parser struct {
	tokens    []lexer.Token
	pos       int
	grammar   *grammar
	builtins  *builtins.Registry
	functions *FunctionTable

	staged  map[string]*ast.FunctionDefinition
	pending map[string]bool
	depth   int
}

type Option func(*Parser)

// WithBuiltins sets the registry used to resolve builtin calls.
func WithBuiltins(reg *builtins.Registry) Option {
	return func(p *Parser) { p.builtins = reg }
}

// WithFunctions shares a function table between parses, so functions defined
// by earlier input stay callable.
func WithFunctions(table *FunctionTable) Option {
	return func(p *Parser) { p.functions = table }
}

func New(tokens []lexer.Token, opts ...Option) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != lexer.EOF {
		eof := lexer.Token{Kind: lexer.EOF, Line: 1, Column: 1}
		if n > 0 {
			last := tokens[n-1]
			eof.Line, eof.Column = last.Line, last.Column+len(last.Text)
		}
		tokens = append(tokens[:n:n], eof)
	}
	p := &Parser{
		tokens:  tokens,
		grammar: defaultGrammar,
		staged:  make(map[string]*ast.FunctionDefinition),
		pending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.builtins == nil {
		p.builtins = builtins.Default()
	}
	if p.functions == nil {
		p.functions = NewFunctionTable()
	}
	return p
}

// ParseSource tokenizes and parses src.
func ParseSource(src string, opts ...Option) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens, opts...).Parse()
}

// Parse consumes statements until EOF.
func (p *Parser) Parse() (*ast.Program, error) {
	p.declareFunctions()
	var statements []ast.Statement
	for !p.at(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	for name := range p.pending {
		return nil, p.errorf(ErrUndefinedFunction, p.current(), "function %s is declared but never defined", name)
	}
	for _, def := range p.staged {
		p.functions.Define(def)
	}
	log.LogVf("parser: %d statements, %d functions defined", len(statements), len(p.staged))
	return ast.NewProgram(statements), nil
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(kind lexer.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) atKeyword(words ...string) bool {
	tok := p.current()
	for _, w := range words {
		if tok.Is(w) {
			return true
		}
	}
	return false
}

// advance returns the current token and moves past it. EOF is never
// consumed.
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, p.errorf(ErrUnexpectedToken, tok, "expected %s, got %s", what, describe(tok))
	}
	return p.advance(), nil
}

// expectClosing is expect for delimiters that close something opened at
// opener; running out of input there is a missing delimiter.
func (p *Parser) expectClosing(kind lexer.Kind, what string, opener lexer.Token) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind == kind {
		return p.advance(), nil
	}
	if tok.Kind == lexer.EOF {
		return tok, p.errorf(ErrMissingDelimiter, tok, "expected %s to close %s at %d:%d", what, describe(opener), opener.Line, opener.Column)
	}
	return tok, p.errorf(ErrUnexpectedToken, tok, "expected %s, got %s", what, describe(tok))
}

func (p *Parser) lookupFunction(name string) (*ast.FunctionDefinition, bool) {
	if def, ok := p.staged[name]; ok {
		return def, true
	}
	return p.functions.Lookup(name)
}

func position(tok lexer.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}
