package parser

import (
	"strconv"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/builtins"
	"tdop/interpreter-go/pkg/lexer"
)

// parseExpression is the Pratt loop: the prefix handler of the current token
// produces the left operand, then infix operators extend it for as long as
// they bind tighter than bp.
func (p *Parser) parseExpression(bp BindingPower) (ast.Expression, error) {
	tok := p.current()
	nud, ok := p.grammar.prefix[tok.Kind]
	if !ok {
		if tok.Kind == lexer.EOF {
			return nil, p.errorf(ErrUnexpectedToken, tok, "expected an expression, got end of input")
		}
		return nil, p.errorf(ErrUnexpectedToken, tok, "unexpected %s at start of expression", describe(tok))
	}
	left, err := nud(p)
	if err != nil {
		return nil, err
	}
	for {
		tok = p.current()
		power, ok := p.grammar.power[tok.Kind]
		if !ok || power <= bp {
			return left, nil
		}
		led, ok := p.grammar.infix[tok.Kind]
		if !ok {
			return nil, p.errorf(ErrUnexpectedToken, tok, "unexpected %s after expression", describe(tok))
		}
		if left, err = led(p, left, bp); err != nil {
			return nil, err
		}
	}
}

// Prefix handlers

func (p *Parser) parseNumber() (ast.Expression, error) {
	tok := p.advance()
	// The lexer only produces valid decimals; overflow yields inf.
	value, _ := strconv.ParseFloat(tok.Text, 64)
	return ast.NewNumberLiteral(position(tok), value), nil
}

func (p *Parser) parseString() (ast.Expression, error) {
	tok := p.advance()
	return ast.NewStringLiteral(position(tok), tok.Text[1:len(tok.Text)-1]), nil
}

func (p *Parser) parseBoolean() (ast.Expression, error) {
	tok := p.advance()
	return ast.NewBooleanLiteral(position(tok), tok.Text == "true"), nil
}

func (p *Parser) parseNull() (ast.Expression, error) {
	tok := p.advance()
	return ast.NewNullLiteral(position(tok)), nil
}

func (p *Parser) parseGrouping() (ast.Expression, error) {
	open := p.advance()
	expr, err := p.parseExpression(Default)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectClosing(lexer.RParen, "')'", open); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseRange() (ast.Expression, error) {
	tok := p.current()
	return nil, p.errorf(ErrUnexpectedToken, tok, "range literal %s is not supported", tok.Text)
}

// parseUnary binds its operand at Unary power, so `-2 ** 2` is (-2) ** 2.
func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.advance()
	operand, err := p.parseExpression(Unary)
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryOp(position(tok), ast.UnaryOperator(tok.Text), operand), nil
}

// parseIdentifier resolves a name in order: keyword, builtin, user function,
// variable.
func (p *Parser) parseIdentifier() (ast.Expression, error) {
	tok := p.advance()
	if isKeyword(tok.Text) {
		return nil, p.errorf(ErrUnexpectedToken, tok, "unexpected keyword '%s' in expression", tok.Text)
	}
	if b, ok := p.builtins.Lookup(tok.Text); ok {
		return p.parseBuiltinCall(tok, b)
	}
	if def, ok := p.lookupFunction(tok.Text); ok {
		return p.parseFunctionCall(tok, def)
	}
	if p.at(lexer.LParen) {
		return nil, p.errorf(ErrUndefinedFunction, tok, "function %s is not defined", tok.Text)
	}
	return ast.NewIdentifier(position(tok), tok.Text), nil
}

func (p *Parser) parseBuiltinCall(name lexer.Token, b builtins.Builtin) (ast.Expression, error) {
	args, err := p.parseArguments(name)
	if err != nil {
		return nil, err
	}
	if b.Arity != builtins.Variadic && args.Len() != b.Arity {
		return nil, p.errorf(ErrArgumentCount, name, "builtin %s expects %d argument(s), got %d", b.Name, b.Arity, args.Len())
	}
	return ast.NewBuiltinCall(position(name), b.Name, b.Impl, b.Arity, args), nil
}

func (p *Parser) parseFunctionCall(name lexer.Token, def *ast.FunctionDefinition) (ast.Expression, error) {
	args, err := p.parseArguments(name)
	if err != nil {
		return nil, err
	}
	if args.Len() != len(def.Params) {
		return nil, p.errorf(ErrArgumentCount, name, "function %s expects %d argument(s), got %d", def.Name, len(def.Params), args.Len())
	}
	return ast.NewFunctionCall(position(name), def.Name, args, def), nil
}

// parseArguments parses `(a, b, ...)` after the callee name.
func (p *Parser) parseArguments(callee lexer.Token) (*ast.ArgumentList, error) {
	open, err := p.expect(lexer.LParen, "'(' after "+callee.Text)
	if err != nil {
		return nil, err
	}
	list := ast.NewArgumentList(position(open), nil)
	if p.at(lexer.RParen) {
		p.advance()
		return list, nil
	}
	for {
		arg, err := p.parseExpression(Comma)
		if err != nil {
			return nil, err
		}
		list.Arguments = append(list.Arguments, arg)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		if _, err := p.expectClosing(lexer.RParen, "',' or ')'", open); err != nil {
			return nil, err
		}
		return list, nil
	}
}

// Infix handlers

// parseBinary parses the right operand at the operator's own power, which
// makes the operator left-associative.
func (p *Parser) parseBinary(left ast.Expression, _ BindingPower) (ast.Expression, error) {
	op := p.advance()
	right, err := p.parseExpression(p.grammar.power[op.Kind])
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOp(position(op), op.Text, left, right), nil
}

// parseRightAssociative lets an operator of the same power continue the
// right operand: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) parseRightAssociative(left ast.Expression, _ BindingPower) (ast.Expression, error) {
	op := p.advance()
	right, err := p.parseExpression(p.grammar.power[op.Kind] - 1)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOp(position(op), op.Text, left, right), nil
}

func (p *Parser) parseAssignment(left ast.Expression, _ BindingPower) (ast.Expression, error) {
	op := p.advance()
	target, ok := left.(*ast.Identifier)
	if !ok {
		return nil, p.errorf(ErrInvalidAssignment, op, "cannot assign to %s", ast.Format(left))
	}
	value, err := p.parseExpression(Assignment - 1)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(target.Pos(), target.Name, ast.AssignmentOperator(op.Text), value), nil
}
