package parser

import (
	"errors"

	"fortio.org/log"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/lexer"
)

// parseStatement dispatches on statement keywords and otherwise parses an
// expression that must be terminated by ';'. A lone ';' is an empty
// statement and yields nil.
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.current()
	if tok.Kind == lexer.Semicolon {
		p.advance()
		return nil, nil
	}
	if tok.Kind == lexer.Identifier {
		if handler, ok := p.grammar.statements[tok.Text]; ok {
			return handler(p)
		}
	}
	expr, err := p.parseExpression(Default)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "';' after expression"); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

// parseBlock parses statements up to, but not including, one of the
// terminator keywords. Reaching EOF first means opener was never closed.
func (p *Parser) parseBlock(opener lexer.Token, terminators ...string) (*ast.Block, error) {
	block := ast.NewBlock(position(p.current()), nil)
	for !p.atKeyword(terminators...) {
		if p.at(lexer.EOF) {
			return nil, p.errorf(ErrMissingDelimiter, p.current(), "expected 'end' to close '%s' at %d:%d", opener.Text, opener.Line, opener.Column)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	return block, nil
}

// parseCondition parses the parenthesised condition of if, elif and while.
func (p *Parser) parseCondition(keyword lexer.Token) (ast.Expression, error) {
	open, err := p.expect(lexer.LParen, "'(' after '"+keyword.Text+"'")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(Default)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectClosing(lexer.RParen, "')'", open); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.advance()
	var conditions []ast.Expression
	var branches []*ast.Block
	keyword := start
	for {
		cond, err := p.parseCondition(keyword)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock(start, "elif", "else", "end")
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
		branches = append(branches, body)
		if !p.atKeyword("elif") {
			break
		}
		keyword = p.advance()
	}

	var elseBlock *ast.Block
	if p.atKeyword("else") {
		p.advance()
		block, err := p.parseBlock(start, "end")
		if err != nil {
			return nil, err
		}
		elseBlock = block
	}
	p.advance() // end
	return ast.NewIf(position(start), conditions, branches, elseBlock), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.advance()
	cond, err := p.parseCondition(start)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(start, "end")
	if err != nil {
		return nil, err
	}
	p.advance() // end
	return ast.NewWhile(position(start), cond, body), nil
}

// parseReturn parses `return [expr] [;]`. When the operand does not parse,
// the parser rewinds to just after `return` and the statement returns null.
func (p *Parser) parseReturn() (ast.Statement, error) {
	start := p.advance()
	if p.depth == 0 {
		return nil, p.errorf(ErrReturnOutsideFunction, start, "'return' outside of a function")
	}
	mark := p.pos
	value, err := p.parseExpression(Default)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			return nil, err
		}
		log.LogVf("parser: return at %d:%d has no value (%v)", start.Line, start.Column, err)
		p.pos = mark
		value = ast.NewNullLiteral(position(start))
	}
	if p.at(lexer.Semicolon) {
		p.advance()
	}
	return ast.NewReturn(position(start), value), nil
}
