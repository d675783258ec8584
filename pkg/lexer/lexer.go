package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

type rule struct {
	kind    Kind
	pattern *regexp.Regexp
	skip    bool
	newline bool
}

func match(kind Kind, expr string) rule {
	return rule{kind: kind, pattern: regexp.MustCompile(`^(?:` + expr + `)`)}
}

// Rules are tried in order and the first one that matches wins, so longer
// operators precede their prefixes and reserved words precede identifiers.
var rules = []rule{
	match(Equal, `==`),
	match(NotEqual, `!=`),
	match(LessEqual, `<=`),
	match(GreaterEqual, `>=`),
	match(Less, `<`),
	match(Greater, `>`),
	match(And, `and\b`),
	match(Or, `or\b`),
	match(Not, `not\b`),
	match(DoubleDot, `\d+\.\.\d+`),
	match(Number, `\d+(?:\.\d*)?`),
	match(Boolean, `(?:true|false)\b`),
	match(String, `"[^"\n]*"|'[^'\n]*'`),
	match(Comma, `,`),
	match(Null, `null\b`),
	match(Identifier, `[A-Za-z_][A-Za-z0-9_]*`),
	match(PlusAssign, `\+=`),
	match(DashAssign, `-=`),
	match(StarAssign, `\*=`),
	match(SlashAssign, `/=`),
	match(Assign, `=`),
	match(DoubleStar, `\*\*`),
	match(Plus, `\+`),
	match(Dash, `-`),
	match(Star, `\*`),
	match(Slash, `/`),
	match(LParen, `\(`),
	match(RParen, `\)`),
	match(Semicolon, `;`),
	{pattern: regexp.MustCompile(`^\n`), skip: true, newline: true},
	{pattern: regexp.MustCompile(`^[^\S\n]+`), skip: true},
}

// LexError reports a position where no lexical rule matches.
type LexError struct {
	Line   int
	Column int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: unrecognized character %q", e.Line, e.Column, e.Char)
}

// Tokenize splits src into tokens. The result always ends with a single EOF
// token; whitespace and newlines only move the position.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	pos, line, col := 0, 1, 1
	for pos < len(src) {
		rest := src[pos:]
		matched := false
		for _, r := range rules {
			loc := r.pattern.FindStringIndex(rest)
			if loc == nil || loc[1] == 0 {
				continue
			}
			text := rest[:loc[1]]
			if !r.skip {
				tokens = append(tokens, Token{Kind: r.kind, Text: text, Line: line, Column: col})
			}
			if r.newline {
				line++
				col = 1
			} else {
				col += utf8.RuneCountInString(text)
			}
			pos += loc[1]
			matched = true
			break
		}
		if !matched {
			ch, _ := utf8.DecodeRuneInString(rest)
			return nil, &LexError{Line: line, Column: col, Char: ch}
		}
	}
	tokens = append(tokens, Token{Kind: EOF, Line: line, Column: col})
	return tokens, nil
}
