// Copyright © 2018 The ELPS authors

package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/luthersystems/epilepsy/lang"
)

// Lexer is a Source of the tokens in a byte slice.  Spaces and tabs are
// dropped.  Each line break is a NEWLINE token.
type Lexer struct {
	file string
	text []byte
	pos  int
	line int
	col  int

	tok  *Token
	peek *Token
}

var _ Source = (*Lexer)(nil)

// NewLexer returns a Lexer over text.  Token locations name file.
func NewLexer(file string, text []byte) *Lexer {
	return &Lexer{file: file, text: text, line: 1, col: 1}
}

// Token implements Source.
func (lex *Lexer) Token() *Token {
	return lex.tok
}

// Peek implements Source.
func (lex *Lexer) Peek() *Token {
	if lex.peek == nil {
		lex.peek = lex.next()
	}
	return lex.peek
}

// Scan implements Source.
func (lex *Lexer) Scan() bool {
	if lex.peek != nil {
		lex.tok, lex.peek = lex.peek, nil
	} else {
		lex.tok = lex.next()
	}
	return lex.tok.Type != EOF
}

// All returns the remaining tokens, excluding EOF.
func (lex *Lexer) All() []*Token {
	var toks []*Token
	for lex.Scan() {
		toks = append(toks, lex.tok)
	}
	return toks
}

func (lex *Lexer) loc() *lang.Location {
	return &lang.Location{File: lex.file, Line: lex.line, Col: lex.col}
}

func (lex *Lexer) rune() (rune, int) {
	return utf8.DecodeRune(lex.text[lex.pos:])
}

func (lex *Lexer) advance(n int) {
	lex.pos += n
	lex.col++
}

func (lex *Lexer) next() *Token {
	for lex.pos < len(lex.text) {
		c, n := lex.rune()
		if c == '\n' || !unicode.IsSpace(c) {
			break
		}
		lex.advance(n)
	}
	loc := lex.loc()
	if lex.pos >= len(lex.text) {
		return &Token{Type: EOF, Source: loc}
	}
	start := lex.pos
	c, n := lex.rune()
	switch c {
	case '\n':
		lex.pos += n
		lex.line++
		lex.col = 1
		return &Token{Type: NEWLINE, Text: "\n", Source: loc}
	case '(':
		lex.advance(n)
		return &Token{Type: PAREN_L, Text: "(", Source: loc}
	case ')':
		lex.advance(n)
		return &Token{Type: PAREN_R, Text: ")", Source: loc}
	case ',':
		lex.advance(n)
		return &Token{Type: COMMA, Text: ",", Source: loc}
	case ';':
		for lex.pos < len(lex.text) {
			c, n := lex.rune()
			if c == '\n' {
				break
			}
			lex.advance(n)
		}
		return &Token{Type: COMMENT, Text: string(lex.text[start:lex.pos]), Source: loc}
	}
	for lex.pos < len(lex.text) {
		c, n := lex.rune()
		if unicode.IsSpace(c) || c == '(' || c == ')' || c == ',' || c == ';' {
			break
		}
		lex.advance(n)
	}
	return &Token{Type: WORD, Text: string(lex.text[start:lex.pos]), Source: loc}
}
