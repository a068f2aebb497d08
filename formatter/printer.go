// Copyright © 2024 The ELPS authors

package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/luthersystems/epilepsy/parser/token"
)

// frame is an open parenthesis.
type frame struct {
	lineIndent int  // indentation of the line containing the parenthesis
	indent     int  // indentation of continued lines
	empty      bool // no token follows the parenthesis on its line
}

type printer struct {
	cfg *Config
	buf strings.Builder

	line       strings.Builder // current line, without indentation
	lineIndent int
	prev       token.Type // last token on the current line, INVALID when empty
	blank      int        // blank lines seen since the last line written
	written    bool       // a non-blank line has been written

	stack []*frame
}

func newPrinter(cfg *Config) *printer {
	return &printer{cfg: cfg}
}

func (p *printer) writeTokens(toks []*token.Token) {
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Type {
		case token.NEWLINE:
			p.newline()
		case token.WORD:
			p.emit(tok)
			// A name and its open parenthesis form one call even when
			// separated by line breaks.
			j := i + 1
			for j < len(toks) && toks[j].Type == token.NEWLINE {
				j++
			}
			if j < len(toks) && toks[j].Type == token.PAREN_L {
				p.open(toks[j], true)
				i = j
			}
		case token.PAREN_L:
			p.open(tok, false)
		case token.PAREN_R:
			p.close(tok)
		default:
			p.emit(tok)
		}
	}
	p.newline()
}

// emit appends tok to the current line.
func (p *printer) emit(tok *token.Token) {
	if p.prev == token.INVALID {
		p.startLine()
	} else if p.space(tok.Type) {
		p.line.WriteByte(' ')
	}
	if tok.Type == token.COMMENT {
		p.line.WriteString(strings.TrimRight(tok.Text, " \t\r"))
	} else {
		p.line.WriteString(tok.Text)
	}
	p.prev = tok.Type
	if n := len(p.stack); n > 0 {
		p.stack[n-1].empty = false
	}
}

func (p *printer) open(tok *token.Token, joined bool) {
	if joined {
		p.line.WriteString(tok.Text)
		p.prev = tok.Type
	} else {
		p.emit(tok)
	}
	f := &frame{
		lineIndent: p.lineIndent,
		indent:     p.lineIndent + utf8.RuneCountInString(p.line.String()),
		empty:      true,
	}
	p.stack = append(p.stack, f)
}

func (p *printer) close(tok *token.Token) {
	var f *frame
	if n := len(p.stack); n > 0 {
		f = p.stack[n-1]
		p.stack = p.stack[:n-1]
	}
	atStart := p.prev == token.INVALID
	p.emit(tok)
	// A parenthesis beginning a line lines up with the line that opened it.
	if atStart && f != nil {
		p.lineIndent = f.lineIndent
	}
}

// startLine sets the indentation of a new line.
func (p *printer) startLine() {
	p.writeBlankLines()
	p.lineIndent = 0
	if n := len(p.stack); n > 0 {
		p.lineIndent = p.stack[n-1].indent
	}
}

func (p *printer) writeBlankLines() {
	if p.written {
		n := p.blank
		if n > p.cfg.MaxBlankLines {
			n = p.cfg.MaxBlankLines
		}
		for i := 0; i < n; i++ {
			p.buf.WriteByte('\n')
		}
	}
	p.blank = 0
}

// space returns true if a space separates the previous token and a token of
// type typ.
func (p *printer) space(typ token.Type) bool {
	switch {
	case p.prev == token.PAREN_L:
		return false
	case typ == token.PAREN_R, typ == token.COMMA:
		return false
	}
	return true
}

func (p *printer) newline() {
	if p.prev == token.INVALID {
		p.blank++
		return
	}
	// Lines continuing a parenthesis left open with nothing after it are
	// indented one level past the enclosing line.
	for i := len(p.stack) - 1; i >= 0 && p.stack[i].empty; i-- {
		base := p.lineIndent
		if i > 0 && p.stack[i-1].lineIndent == p.stack[i].lineIndent {
			base = p.stack[i-1].indent
		}
		p.stack[i].indent = base + p.cfg.IndentSize
		p.stack[i].empty = false
	}
	p.buf.WriteString(strings.Repeat(" ", p.lineIndent))
	p.buf.WriteString(p.line.String())
	p.buf.WriteByte('\n')
	p.line.Reset()
	p.prev = token.INVALID
	p.written = true
}
