// Copyright © 2024 The ELPS authors

// Package formatter rewrites term source text in a canonical layout.  Line
// breaks chosen by the author are kept.  Spacing within lines and the
// indentation of continued lines are normalized, and comments are
// preserved.
package formatter

import (
	"fmt"
	"strings"

	"github.com/luthersystems/epilepsy/parser"
	"github.com/luthersystems/epilepsy/parser/token"
)

// Config holds formatting configuration.
type Config struct {
	IndentSize    int // spaces per indent level (default: 2)
	MaxBlankLines int // max consecutive blank lines (default: 1)
}

// DefaultConfig returns the default formatting configuration.
func DefaultConfig() *Config {
	return &Config{
		IndentSize:    2,
		MaxBlankLines: 1,
	}
}

// Format formats term source text. If cfg is nil, DefaultConfig() is used.
func Format(source []byte, cfg *Config) ([]byte, error) {
	return FormatFile(source, "<stdin>", cfg)
}

// FormatFile formats term source text, using filename for error messages.
// Text which does not parse is returned as a *parser.SyntaxError.
func FormatFile(source []byte, filename string, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	before, err := parser.Parse(filename, source)
	if err != nil {
		return nil, err
	}

	pr := newPrinter(cfg)
	pr.writeTokens(token.NewLexer(filename, source).All())
	result := pr.buf.String()

	// Ensure exactly one trailing newline (if there's any content)
	if len(result) > 0 {
		result = strings.TrimRight(result, "\n") + "\n"
	}

	after, err := parser.Parse(filename, []byte(result))
	if err != nil || len(after) != len(before) {
		return nil, fmt.Errorf("%s: formatting changed the terms read", filename)
	}
	for i := range before {
		if !before[i].Equal(after[i]) {
			return nil, fmt.Errorf("%s: formatting changed the term at %v", filename, before[i].Source)
		}
	}
	return []byte(result), nil
}
