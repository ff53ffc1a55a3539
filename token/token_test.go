package token_test

import (
	"testing"

	"github.com/347online/lox/token"
	"github.com/stretchr/testify/assert"
)

func TestKindStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "and", token.And.String())
	assert.Equal(t, "EOF", token.Eof.String())
	assert.Equal(t, "Kind(999)", token.Kind(999).String())
}

func TestKeywordsMapCoversAllReservedWords(t *testing.T) {
	for word, kind := range map[string]token.Kind{
		"and": token.And, "class": token.Class, "else": token.Else, "false": token.False,
		"for": token.For, "fun": token.Fun, "if": token.If, "nil": token.Nil, "or": token.Or,
		"print": token.Print, "return": token.Return, "super": token.Super, "this": token.This,
		"true": token.True, "var": token.Var, "while": token.While,
	} {
		got, ok := token.Keywords[word]
		assert.True(t, ok, "missing keyword %q", word)
		assert.Equal(t, kind, got)
	}
}

func TestTokenStringIncludesLexemeAndLiteral(t *testing.T) {
	tok := token.Token{Kind: token.Number, Lexeme: "42", Line: 1, Literal: 42.0}
	assert.Contains(t, tok.String(), `"42"`)
	assert.Contains(t, tok.String(), "42")
}
