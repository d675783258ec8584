package parser

import (
	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/lexer"
)

type (
	prefixHandler    func(p *Parser) (ast.Expression, error)
	infixHandler     func(p *Parser, left ast.Expression, bp BindingPower) (ast.Expression, error)
	statementHandler func(p *Parser) (ast.Statement, error)
)

// grammar holds the dispatch tables. It is built once and never mutated, so
// every Parser shares the same instance.
type grammar struct {
	power      map[lexer.Kind]BindingPower
	prefix     map[lexer.Kind]prefixHandler
	infix      map[lexer.Kind]infixHandler
	statements map[string]statementHandler
}

var defaultGrammar = newGrammar()

var keywords = map[string]bool{
	"func":   true,
	"return": true,
	"if":     true,
	"elif":   true,
	"else":   true,
	"while":  true,
	"end":    true,
}

func isKeyword(name string) bool { return keywords[name] }

func newGrammar() *grammar {
	g := &grammar{
		power:      make(map[lexer.Kind]BindingPower),
		prefix:     make(map[lexer.Kind]prefixHandler),
		infix:      make(map[lexer.Kind]infixHandler),
		statements: make(map[string]statementHandler),
	}

	// Atoms and prefix operators
	g.nud(lexer.Number, (*Parser).parseNumber)
	g.nud(lexer.String, (*Parser).parseString)
	g.nud(lexer.Boolean, (*Parser).parseBoolean)
	g.nud(lexer.Null, (*Parser).parseNull)
	g.nud(lexer.Identifier, (*Parser).parseIdentifier)
	g.nud(lexer.LParen, (*Parser).parseGrouping)
	g.nud(lexer.DoubleDot, (*Parser).parseRange)
	g.nud(lexer.Dash, (*Parser).parseUnary)
	g.nud(lexer.Not, (*Parser).parseUnary)

	// Assignment
	for _, kind := range []lexer.Kind{lexer.Assign, lexer.PlusAssign, lexer.DashAssign, lexer.StarAssign, lexer.SlashAssign} {
		g.led(kind, Assignment, (*Parser).parseAssignment)
	}

	// Logical
	g.led(lexer.And, Logical, (*Parser).parseBinary)
	g.led(lexer.Or, Logical, (*Parser).parseBinary)

	// Relational
	for _, kind := range []lexer.Kind{lexer.Equal, lexer.NotEqual, lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual} {
		g.led(kind, Relational, (*Parser).parseBinary)
	}

	// Arithmetic
	g.led(lexer.Plus, Additive, (*Parser).parseBinary)
	g.led(lexer.Dash, Additive, (*Parser).parseBinary)
	g.led(lexer.Star, Multiplicative, (*Parser).parseBinary)
	g.led(lexer.Slash, Multiplicative, (*Parser).parseBinary)
	g.led(lexer.DoubleStar, Exponential, (*Parser).parseRightAssociative)

	// Statements
	g.stmt("func", (*Parser).parseFunctionDefinition)
	g.stmt("return", (*Parser).parseReturn)
	g.stmt("if", (*Parser).parseIf)
	g.stmt("while", (*Parser).parseWhile)

	return g
}

func (g *grammar) nud(kind lexer.Kind, fn prefixHandler) {
	g.prefix[kind] = fn
}

func (g *grammar) led(kind lexer.Kind, bp BindingPower, fn infixHandler) {
	g.power[kind] = bp
	g.infix[kind] = fn
}

func (g *grammar) stmt(keyword string, fn statementHandler) {
	g.statements[keyword] = fn
}
