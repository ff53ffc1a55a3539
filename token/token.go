// Package token defines the lexical token shapes the scanner produces and
// the parser consumes.
package token

import "fmt"

// Kind is a closed tag identifying what a Token represents.
type Kind int

const (
	// Single-character tokens.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	Eof
)

var names = map[Kind]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";", Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "Identifier", String: "String", Number: "Number",
	And: "and", Class: "class", Else: "else", False: "false", For: "for",
	Fun: "fun", If: "if", Nil: "nil", Or: "or", Print: "print", Return: "return",
	Super: "super", This: "this", True: "true", Var: "var", While: "while",
	Eof: "EOF",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps a scanned identifier lexeme to its keyword Kind. Lexemes
// absent from this set are plain Identifier tokens.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False, "for": For,
	"fun": Fun, "if": If, "nil": Nil, "or": Or, "print": Print, "return": Return,
	"super": Super, "this": This, "true": True, "var": Var, "while": While,
}

// Token is a single lexical unit. Tokens are value-like and may be
// duplicated freely; Literal is populated only for Number (float64) and
// String (the unescaped text without surrounding quotes).
type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %v", t.Kind, t.Lexeme, t.Literal)
}
