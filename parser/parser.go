// Copyright © 2024 The ELPS authors

// Package parser reads terms from text.
//
//	expr    := <quote> | <call> | <atom>
//	quote   := 'v' '(' <expr>* ')'
//	call    := <ident> '(' (<expr> (',' <expr>)*)? ')'
//	ident   := /[A-Za-z_][A-Za-z0-9_]*/
//	atom    := /[^\s(),;]+/
//	comment := ';' /[^\n]*/
//
// A quote of exactly one atom is that atom, so v(x) and x read the same.
// Expressions inside a quote are inert data and are never evaluated.  Because
// v( always begins a quote no operator named v can be called from text, and
// v(a, b) is a syntax error.
package parser

import (
	"fmt"
	"io"
	"sort"

	"github.com/luthersystems/epilepsy/lang"
	parsec "github.com/prataprc/goparsec"
)

// SyntaxError is returned for text which is not a sequence of terms.
type SyntaxError struct {
	Source *lang.Location
	Msg    string

	// Incomplete is true when the text ended inside an open parenthesis.
	// More input may complete it.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

// NewReader returns a lang.Reader for the term syntax.
func NewReader() lang.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]*lang.Term, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(name, b)
}

// Parse parses all terms in text.  The terms read before a syntax error are
// returned along with the error.
func Parse(name string, text []byte) ([]*lang.Term, error) {
	src := newSource(name, text)
	expr, comments := src.grammar()

	var terms []*lang.Term
	s := parsec.NewScanner(text)
	root, s := expr(s)
	for root != nil {
		t, err := src.term(root)
		if err != nil {
			return terms, err
		}
		terms = append(terms, t)
		root, s = expr(s)
	}
	_, s = comments(s)
	_, s = s.SkipWS()
	if !s.Endof() {
		return terms, src.unexpected(s)
	}
	return terms, nil
}

const (
	nameOpen    = "OPENP"
	nameClose   = "CLOSEP"
	nameComma   = "COMMA"
	nameQuote   = "QUOTE"
	nameIdent   = "IDENT"
	nameAtom    = "ATOM"
	nameComment = "COMMENT"
)

// source maps byte offsets of the text being parsed to locations.
type source struct {
	name  string
	text  []byte
	lines []int // offset of the first byte of each line
}

func newSource(name string, text []byte) *source {
	lines := []int{0}
	for i, c := range text {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &source{name: name, text: text, lines: lines}
}

func (src *source) location(pos int) *lang.Location {
	line := sort.Search(len(src.lines), func(i int) bool { return src.lines[i] > pos }) - 1
	if line < 0 {
		line = 0
	}
	return &lang.Location{
		File: src.name,
		Line: line + 1,
		Col:  pos - src.lines[line] + 1,
	}
}

func (src *source) grammar() (expr parsec.Parser, comments parsec.Parser) {
	comments = parsec.Kleene(nil, parsec.Token(`;[^\n]*`, nameComment))
	punct := func(tok string, name string) parsec.Parser {
		return parsec.And(nil, comments, parsec.Atom(tok, name))
	}
	openP := punct("(", nameOpen)
	closeP := punct(")", nameClose)
	comma := punct(",", nameComma)

	quote := parsec.And(src.quoteNode,
		punct("v", nameQuote),
		openP,
		parsec.Kleene(nil, &expr),
		closeP,
	)
	call := parsec.And(src.callNode,
		comments,
		parsec.Token(`[A-Za-z_][A-Za-z0-9_]*`, nameIdent),
		openP,
		parsec.Kleene(nil, &expr, comma),
		closeP,
	)
	atom := parsec.And(src.atomNode,
		comments,
		parsec.Token(`[^\s(),;]+`, nameAtom),
	)
	expr = parsec.OrdChoice(nil, quote, call, atom)
	return expr, comments
}

func (src *source) atomNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	flat, err := flatten(nodes)
	if err != nil {
		return err
	}
	tok := flat[0].(*parsec.Terminal)
	return lang.Atom(tok.Value).WithSource(src.location(tok.Position))
}

func (src *source) callNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	flat, err := flatten(nodes)
	if err != nil {
		return err
	}
	name := flat[0].(*parsec.Terminal)
	loc := src.location(name.Position)
	if name.Value == "v" {
		return &SyntaxError{Source: loc, Msg: "quote items are separated by spaces"}
	}
	t, err := lang.Call(name.Value, termNodes(flat)...)
	if err != nil {
		return &SyntaxError{Source: loc, Msg: err.Error()}
	}
	return t.WithSource(loc)
}

func (src *source) quoteNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	flat, err := flatten(nodes)
	if err != nil {
		return err
	}
	open := flat[0].(*parsec.Terminal)
	t := lang.Quote(termNodes(flat)...)
	if t.IsAtom() {
		return t
	}
	return t.WithSource(src.location(open.Position))
}

// term converts a root node returned by the grammar.
func (src *source) term(root parsec.ParsecNode) (*lang.Term, error) {
	flat, err := flatten([]parsec.ParsecNode{root})
	if err != nil {
		return nil, err
	}
	ts := termNodes(flat)
	if len(ts) != 1 {
		return nil, &SyntaxError{Source: src.location(0), Msg: "malformed expression"}
	}
	return ts[0], nil
}

func (src *source) unexpected(s parsec.Scanner) error {
	pos := s.GetCursor()
	if depth(src.text) > 0 {
		return &SyntaxError{
			Source:     src.location(pos),
			Msg:        "unexpected end of input",
			Incomplete: true,
		}
	}
	b, _ := s.Match(`[^\n]{1,16}`)
	if len(b) > 15 {
		b = append(b[:15:15], []byte("...")...)
	}
	return &SyntaxError{
		Source: src.location(pos),
		Msg:    fmt.Sprintf("unexpected source text possibly starting: %s", b),
	}
}

// depth returns the number of unclosed parentheses in text, ignoring
// comments.
func depth(text []byte) int {
	n := 0
	comment := false
	for _, c := range text {
		switch {
		case comment:
			comment = c != '\n'
		case c == ';':
			comment = true
		case c == '(':
			n++
		case c == ')':
			n--
		}
	}
	return n
}

// Incomplete returns true if text ends inside an open parenthesis.
func Incomplete(text []byte) bool {
	return depth(text) > 0
}

// flatten removes comments and nesting from nodes.  The first error found is
// returned.
func flatten(nodes []parsec.ParsecNode) ([]parsec.ParsecNode, error) {
	var flat []parsec.ParsecNode
	for _, n := range nodes {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == nameComment {
				continue
			}
			flat = append(flat, node)
		case error:
			return nil, node
		case []parsec.ParsecNode:
			sub, err := flatten(node)
			if err != nil {
				return nil, err
			}
			flat = append(flat, sub...)
		case *lang.Term:
			flat = append(flat, node)
		}
	}
	return flat, nil
}

func termNodes(flat []parsec.ParsecNode) []*lang.Term {
	var ts []*lang.Term
	for _, n := range flat {
		if t, ok := n.(*lang.Term); ok {
			ts = append(ts, t)
		}
	}
	return ts
}
