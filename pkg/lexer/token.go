package lexer

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Literals
	Number
	String
	Boolean
	Null
	Identifier

	// Operators
	Plus
	Dash
	Star
	Slash
	DoubleStar
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	And
	Or
	Not
	Assign
	PlusAssign
	DashAssign
	StarAssign
	SlashAssign
	DoubleDot

	// Punctuation
	LParen
	RParen
	Comma
	Semicolon
)

var kindNames = [...]string{
	EOF:          "EOF",
	Number:       "NUMBER",
	String:       "STRING",
	Boolean:      "BOOLEAN",
	Null:         "NULL",
	Identifier:   "IDENTIFIER",
	Plus:         "PLUS",
	Dash:         "DASH",
	Star:         "STAR",
	Slash:        "SLASH",
	DoubleStar:   "DOUBLE_STAR",
	Equal:        "EQUAL",
	NotEqual:     "NOT_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	And:          "AND",
	Or:           "OR",
	Not:          "NOT",
	Assign:       "ASSIGN",
	PlusAssign:   "PLUS_ASSIGN",
	DashAssign:   "DASH_ASSIGN",
	StarAssign:   "STAR_ASSIGN",
	SlashAssign:  "SLASH_ASSIGN",
	DoubleDot:    "DOUBLE_DOT",
	LParen:       "LPAREN",
	RParen:       "RPAREN",
	Comma:        "COMMA",
	Semicolon:    "SEMICOLON",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexeme together with the position of its first character.
// Line and Column are 1-based.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF@%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

// Is reports whether the token is an identifier spelled word. Keywords are
// lexed as identifiers and told apart by the parser.
func (t Token) Is(word string) bool {
	return t.Kind == Identifier && t.Text == word
}
