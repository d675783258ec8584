package parser

import (
	"fortio.org/log"

	"tdop/interpreter-go/pkg/ast"
	"tdop/interpreter-go/pkg/lexer"
)

// declareFunctions scans the whole token stream for `func NAME(params)`
// headers before parsing starts, so calls may appear before the definition
// they refer to. Names that already resolve are left alone; a later
// redefinition replaces them once it is parsed. Malformed headers are
// skipped here and reported by the real parse.
func (p *Parser) declareFunctions() {
	for i := 0; i+2 < len(p.tokens); i++ {
		if !p.tokens[i].Is("func") {
			continue
		}
		nameTok := p.tokens[i+1]
		if nameTok.Kind != lexer.Identifier || isKeyword(nameTok.Text) || p.tokens[i+2].Kind != lexer.LParen {
			continue
		}
		params, ok := scanParameters(p.tokens[i+3:])
		if !ok {
			continue
		}
		if _, builtin := p.builtins.Lookup(nameTok.Text); builtin {
			continue
		}
		if _, known := p.lookupFunction(nameTok.Text); known {
			continue
		}
		p.staged[nameTok.Text] = ast.NewFunctionDefinition(position(p.tokens[i]), nameTok.Text, params, nil)
		p.pending[nameTok.Text] = true
		log.LogVf("parser: declared %s/%d ahead of its definition", nameTok.Text, len(params))
	}
}

func scanParameters(tokens []lexer.Token) ([]string, bool) {
	params := []string{}
	expectName := true
	for _, tok := range tokens {
		switch {
		case tok.Kind == lexer.RParen:
			if expectName && len(params) > 0 {
				return nil, false
			}
			return params, true
		case expectName && tok.Kind == lexer.Identifier && !isKeyword(tok.Text):
			params = append(params, tok.Text)
			expectName = false
		case !expectName && tok.Kind == lexer.Comma:
			expectName = true
		default:
			return nil, false
		}
	}
	return nil, false
}

// parseFunctionDefinition parses `func NAME(params) body end`. The definition
// is visible to its own body, so recursive calls resolve.
func (p *Parser) parseFunctionDefinition() (ast.Statement, error) {
	start := p.advance()
	nameTok, err := p.expect(lexer.Identifier, "function name")
	if err != nil {
		return nil, err
	}
	if isKeyword(nameTok.Text) {
		return nil, p.errorf(ErrUnexpectedToken, nameTok, "keyword '%s' cannot name a function", nameTok.Text)
	}
	if _, ok := p.builtins.Lookup(nameTok.Text); ok {
		return nil, p.errorf(ErrUnexpectedToken, nameTok, "cannot redefine builtin %s", nameTok.Text)
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	def, ok := p.staged[nameTok.Text]
	if !ok || !p.pending[nameTok.Text] {
		def = ast.NewFunctionDefinition(position(start), nameTok.Text, params, nil)
		p.staged[nameTok.Text] = def
	}
	def.Params = params
	delete(p.pending, nameTok.Text)

	p.depth++
	body, err := p.parseBlock(start, "end")
	p.depth--
	if err != nil {
		return nil, err
	}
	p.advance() // end
	def.Body = body
	log.LogVf("parser: defined function %s(%d)", def.Name, len(def.Params))
	return def, nil
}

func (p *Parser) parseParameters() ([]string, error) {
	open, err := p.expect(lexer.LParen, "'(' before parameters")
	if err != nil {
		return nil, err
	}
	params := []string{}
	seen := make(map[string]bool)
	if p.at(lexer.RParen) {
		p.advance()
		return params, nil
	}
	for {
		tok, err := p.expect(lexer.Identifier, "parameter name")
		if err != nil {
			return nil, err
		}
		if isKeyword(tok.Text) {
			return nil, p.errorf(ErrUnexpectedToken, tok, "keyword '%s' cannot name a parameter", tok.Text)
		}
		if seen[tok.Text] {
			return nil, p.errorf(ErrUnexpectedToken, tok, "duplicate parameter %s", tok.Text)
		}
		seen[tok.Text] = true
		params = append(params, tok.Text)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		if _, err := p.expectClosing(lexer.RParen, "')'", open); err != nil {
			return nil, err
		}
		return params, nil
	}
}
