// Copyright © 2018 The ELPS authors

// Package token splits term source text into tokens.  Unlike the parser the
// token stream keeps comments and line breaks so that tools which rewrite
// source text can reproduce them.
package token

import (
	"fmt"

	"github.com/luthersystems/epilepsy/lang"
)

// Source is an abstract stream of tokens which allows one token lookahead.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not been
	// called.
	Token() *Token
	// Peek returns the next token in the stream.  At the end of the stream
	// Peek returns a token of type EOF.
	Peek() *Token
	// Scan advances the token stream if possible.  If there are no tokens
	// remaining Scan returns false.
	Scan() bool
}

type Token struct {
	Type   Type
	Text   string
	Source *lang.Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case WORD, COMMENT:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
	return tok.Type.String()
}

type Type uint

const (
	INVALID Type = iota
	EOF

	WORD    // an atom, an operator name or the quote marker v
	COMMENT // a semicolon and the rest of its line
	NEWLINE

	// Delimiters
	PAREN_L
	PAREN_R
	COMMA

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		EOF:     "EOF",
		WORD:    "word",
		COMMENT: ";",
		NEWLINE: "newline",
		PAREN_L: "(",
		PAREN_R: ")",
		COMMA:   ",",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}
