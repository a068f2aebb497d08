// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	Color ColorMode

	// SourceReader returns the text of a named source.  If nil, sources are
	// read from the file system.
	SourceReader func(name string) ([]byte, error)
}

// MapSource returns a SourceReader for in-memory sources such as
// expressions given on the command line.  Names not in sources are read
// from the file system.
func MapSource(sources map[string][]byte) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if b, ok := sources[name]; ok {
			return b, nil
		}
		return os.ReadFile(name) //nolint:gosec // displays user supplied sources
	}
}

// Render writes d to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}
	ew.printf("%s%s%s: %s%s%s\n", p.severity(d.Severity), d.Severity, p.reset, p.bold, d.Message, p.reset)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes diags to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// RenderError converts err with FromError and writes it to w.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	return r.Render(w, FromError(err))
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc += ":" + strconv.Itoa(span.Line)
		if span.Col > 0 {
			loc += ":" + strconv.Itoa(span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}
	num := strconv.Itoa(span.Line)
	gutter := strings.Repeat(" ", len(num))
	ew.printf(" %s%s |%s\n", p.boldBlue, gutter, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, num, p.reset, expandTabs(source))

	col := span.Col
	if col < 1 {
		col = 1
	}
	endCol := span.EndCol
	if endCol < 1 {
		endCol = tokenEnd(source, col)
	}
	if endCol < col {
		endCol = col
	}
	indent := ""
	if col-1 <= len(source) {
		indent = strings.Repeat(" ", utf8.RuneCountInString(expandTabs(source[:col-1])))
	}
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, gutter, p.reset, indent, p.boldRed, strings.Repeat("^", endCol-col+1), p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.printf("\n %s%s |%s\n", p.boldBlue, gutter, p.reset)
}

func (r *Renderer) sourceLine(name string, line int) (string, bool) {
	if line < 1 || name == "" {
		return "", false
	}
	read := r.SourceReader
	if read == nil {
		read = MapSource(nil)
	}
	b, err := read(name)
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(b), "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// tokenEnd returns the column of the last byte of the token starting at
// col.
func tokenEnd(source string, col int) int {
	if col > len(source) {
		return col
	}
	end := col - 1
	for end < len(source) && !strings.ContainsRune(" \t(),;", rune(source[end])) {
		end++
	}
	if end == col-1 {
		return col
	}
	return end
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
